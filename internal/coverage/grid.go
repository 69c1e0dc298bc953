package coverage

import "github.com/schedcu/shiftplan/internal/entity"

// Grid is the actual staffing curve computed from the current Plan: a
// real vector of the same length as Target.Values, where entry i counts
// minutes (weighted by slot length) that assigned shifts contribute to
// slot i, summed across agents.
type Grid struct {
	SlotMinutes int
	Values      []float64
}

// NewGrid allocates a zeroed grid matching t's shape.
func NewGrid(t Target) Grid {
	return Grid{SlotMinutes: t.SlotMinutes, Values: make([]float64, t.NumSlots())}
}

// Contribution returns the per-slot contribution of one agent's
// day-indexed assignment (length = days + rule offset) to a grid of
// numSlots slots of slotMinutes minutes each. Slots beyond numSlots are
// discarded: the overflow is not double-counted when the horizon is
// planned with the rule's offset.
func Contribution(assignment []entity.Shift, slotMinutes, numSlots int) []float64 {
	out := make([]float64, numSlots)
	for day, shift := range assignment {
		if !shift.IsWork() {
			continue
		}
		dayBase := day * 1440
		for _, iv := range shift.Intervals {
			absStart := dayBase + iv.Start
			absEnd := dayBase + iv.End
			if absEnd <= absStart {
				continue
			}
			startSlot := absStart / slotMinutes
			endSlot := (absEnd - 1) / slotMinutes
			for i := startSlot; i <= endSlot; i++ {
				if i < 0 || i >= numSlots {
					continue
				}
				slotStart := i * slotMinutes
				slotEnd := slotStart + slotMinutes
				lo := absStart
				if slotStart > lo {
					lo = slotStart
				}
				hi := absEnd
				if slotEnd < hi {
					hi = slotEnd
				}
				overlap := hi - lo
				if overlap > 0 {
					out[i] += float64(overlap) / float64(slotMinutes)
				}
			}
		}
	}
	return out
}

// Add accumulates delta into g in place.
func (g *Grid) Add(delta []float64) {
	for i, v := range delta {
		g.Values[i] += v
	}
}

// Subtract removes delta from g in place.
func (g *Grid) Subtract(delta []float64) {
	for i, v := range delta {
		g.Values[i] -= v
	}
}

// BuildFromAssignments recomputes the grid from scratch given every
// agent's current assignment. Used to validate incremental updates
// against full recomputation (spec.md §4.4, §8 invariant 4).
func BuildFromAssignments(t Target, assignments map[string][]entity.Shift) Grid {
	g := NewGrid(t)
	numSlots := t.NumSlots()
	for _, a := range assignments {
		g.Add(Contribution(a, t.SlotMinutes, numSlots))
	}
	return g
}
