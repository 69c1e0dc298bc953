// Package entity holds the core domain types of the shift-planning engine:
// shifts, shift rules and the error kinds the engine surfaces.
package entity

import "time"

// Interval is a half-open minute range [Start, End) within an extended
// day. End may exceed 1440 when the shift spills into the next day.
type Interval struct {
	Start int
	End   int
}

// Shift is an atomic daily work-or-rest assignment. Rest shifts carry an
// empty Intervals slice. Intervals are sorted and non-overlapping.
type Shift struct {
	Code      string
	Work      bool
	Intervals []Interval
	Attrs     map[string]string
}

// Rest builds a rest shift with the given code.
func Rest(code string) Shift {
	return Shift{Code: code, Work: false}
}

// NewShift builds a work shift from a code and a list of sorted,
// non-overlapping intervals. It is the caller's responsibility to
// provide intervals already in that form (the shift-spec parser, an
// external collaborator per the spec, is the usual producer).
func NewShift(code string, intervals []Interval) Shift {
	return Shift{Code: code, Work: len(intervals) > 0, Intervals: intervals}
}

// WithAttrs returns a copy of s carrying the given opaque attribute bag.
// Attrs has no engine semantics: no energy or sampler code reads it.
func (s Shift) WithAttrs(attrs map[string]string) Shift {
	s.Attrs = attrs
	return s
}

// IsWork reports whether the shift represents work (as opposed to rest).
func (s Shift) IsWork() bool { return s.Work }

// EndOfDayMinute returns the largest interval end, or 0 for a rest
// shift. Used to compute a rule's offset_days.
func (s Shift) EndOfDayMinute() int {
	max := 0
	for _, iv := range s.Intervals {
		if iv.End > max {
			max = iv.End
		}
	}
	return max
}

// StartTime returns the first interval's start as a duration since
// midnight. Panics if the shift is a rest shift or has no intervals.
func (s Shift) StartTime() time.Duration {
	if !s.Work || len(s.Intervals) == 0 {
		panic("entity: StartTime called on a rest shift")
	}
	return time.Duration(s.Intervals[0].Start) * time.Minute
}

// EndTime returns the last interval's end as a duration since midnight.
// The duration may exceed 24h for a cross-midnight shift. Panics if the
// shift is a rest shift or has no intervals.
func (s Shift) EndTime() time.Duration {
	if !s.Work || len(s.Intervals) == 0 {
		panic("entity: EndTime called on a rest shift")
	}
	return time.Duration(s.EndOfDayMinute()) * time.Minute
}
