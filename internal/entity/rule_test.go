package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayShift() Shift { return NewShift("D", []Interval{{Start: 480, End: 960}}) }
func offShift() Shift { return Rest("OFF") }

func TestLitShifts(t *testing.T) {
	r := Lit(dayShift())
	shifts := r.Shifts()
	require.Len(t, shifts, 1)
	assert.Equal(t, "D", shifts["D"].Code)
}

func TestChoiceShiftsUnion(t *testing.T) {
	r := Choice(Lit(dayShift()), Lit(offShift()))
	shifts := r.Shifts()
	assert.Len(t, shifts, 2)
	assert.Contains(t, shifts, "D")
	assert.Contains(t, shifts, "OFF")
}

func TestConcatShiftsUnion(t *testing.T) {
	r := Concat(Lit(dayShift()), Lit(offShift()))
	shifts := r.Shifts()
	assert.Len(t, shifts, 2)
}

func TestStarShiftsDelegatesToInner(t *testing.T) {
	r := Star(Lit(dayShift()))
	shifts := r.Shifts()
	assert.Len(t, shifts, 1)
}

func TestRepeatConcatenatesNTimes(t *testing.T) {
	r := Repeat(Lit(dayShift()), 3)
	assert.Equal(t, KindConcat, r.Kind)
	// Repeat(r, 1) is just r itself, not wrapped in Concat.
	single := Repeat(Lit(dayShift()), 1)
	assert.Equal(t, KindLiteral, single.Kind)
}

func TestRepeatPanicsOnNonPositiveN(t *testing.T) {
	assert.Panics(t, func() { Repeat(Lit(dayShift()), 0) })
}

func TestOffsetDaysZeroForSameDayShifts(t *testing.T) {
	r := Lit(dayShift())
	assert.Equal(t, 0, r.OffsetDays())
}

func TestOffsetDaysForCrossMidnightShift(t *testing.T) {
	night := NewShift("N", []Interval{{Start: 1320, End: 1320 + 600}})
	r := Lit(night)
	assert.Equal(t, 1, r.OffsetDays())
}
