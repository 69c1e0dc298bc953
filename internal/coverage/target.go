// Package coverage translates sampled multi-day assignments into a
// time-quantised coverage curve comparable with a target demand curve.
// These are pure functions, with no side effects, no database access
// and no external I/O — the same "pure algorithm" framing the teacher's
// coverage package uses for its own staffing resolution.
package coverage

import "github.com/schedcu/shiftplan/internal/entity"

// Target is the desired staffing curve: slot length in minutes, horizon
// in days, and one non-negative value per slot. len(Values) must equal
// Days * (1440 / SlotMinutes).
type Target struct {
	SlotMinutes int
	Days        int
	Values      []float64
}

// NumSlots returns Days * 1440 / SlotMinutes.
func (t Target) NumSlots() int {
	return t.Days * 1440 / t.SlotMinutes
}

// Validate checks the invariants setStaffingTarget requires: positive
// slot length, matching value count, and all-non-negative values.
func (t Target) Validate() error {
	if t.SlotMinutes <= 0 {
		return entity.NewError(entity.KindConfigError, "slot length must be positive, got %d", t.SlotMinutes)
	}
	if t.Days <= 0 {
		return entity.NewError(entity.KindConfigError, "days must be positive, got %d", t.Days)
	}
	want := t.NumSlots()
	if len(t.Values) != want {
		return entity.NewError(entity.KindConfigError, "target length mismatch: want %d slots, got %d", want, len(t.Values))
	}
	for i, v := range t.Values {
		if v < 0 {
			return entity.NewError(entity.KindConfigError, "target value at slot %d is negative: %v", i, v)
		}
	}
	return nil
}
