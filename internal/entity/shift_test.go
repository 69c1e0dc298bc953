package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRest(t *testing.T) {
	s := Rest("OFF")
	assert.Equal(t, "OFF", s.Code)
	assert.False(t, s.IsWork())
	assert.Equal(t, 0, s.EndOfDayMinute())
}

func TestNewShiftIsWork(t *testing.T) {
	s := NewShift("D", []Interval{{Start: 480, End: 960}})
	assert.True(t, s.IsWork())
	assert.Equal(t, 960, s.EndOfDayMinute())
}

func TestNewShiftEmptyIntervalsIsRest(t *testing.T) {
	s := NewShift("E", nil)
	assert.False(t, s.IsWork())
}

func TestCrossMidnightEndOfDayMinute(t *testing.T) {
	s := NewShift("N", []Interval{{Start: 1320, End: 1320 + 600}})
	assert.Equal(t, 1920, s.EndOfDayMinute())
}

func TestStartEndTime(t *testing.T) {
	s := NewShift("D", []Interval{{Start: 480, End: 960}})
	assert.Equal(t, 480.0, s.StartTime().Minutes())
	assert.Equal(t, 960.0, s.EndTime().Minutes())
}

func TestWithAttrsDoesNotMutateOriginal(t *testing.T) {
	s := NewShift("D", []Interval{{Start: 0, End: 60}})
	withAttrs := s.WithAttrs(map[string]string{"role": "charge"})
	assert.Nil(t, s.Attrs)
	assert.Equal(t, "charge", withAttrs.Attrs["role"])
}
