package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/shiftplan/internal/entity"
)

func TestContributionRestShiftContributesNothing(t *testing.T) {
	assignment := []entity.Shift{entity.Rest("OFF")}
	out := Contribution(assignment, 60, 24)
	for _, v := range out {
		assert.Zero(t, v)
	}
}

func TestContributionSlotAligned(t *testing.T) {
	shift := entity.NewShift("D", []entity.Interval{{Start: 60, End: 180}})
	out := Contribution([]entity.Shift{shift}, 60, 24)

	assert.Equal(t, 0.0, out[0])
	assert.Equal(t, 1.0, out[1])
	assert.Equal(t, 1.0, out[2])
	assert.Equal(t, 0.0, out[3])
}

func TestContributionFractionalSlotProration(t *testing.T) {
	shift := entity.NewShift("D", []entity.Interval{{Start: 15, End: 45}})
	out := Contribution([]entity.Shift{shift}, 60, 24)

	// Slot 0 spans [0,60); the shift covers half of it.
	assert.InDelta(t, 0.5, out[0], 1e-9)
}

func TestContributionCrossMidnightSpillsIntoNextDay(t *testing.T) {
	shift := entity.NewShift("N", []entity.Interval{{Start: 1380, End: 1380 + 120}})
	out := Contribution([]entity.Shift{shift}, 60, 48)

	assert.Equal(t, 1.0, out[23])
	assert.Equal(t, 1.0, out[24])
}

func TestContributionDropsOverflowBeyondNumSlots(t *testing.T) {
	shift := entity.NewShift("N", []entity.Interval{{Start: 1380, End: 1380 + 120}})
	out := Contribution([]entity.Shift{shift}, 60, 24) // horizon ends at day boundary
	assert.Equal(t, 1.0, out[23])
}

func TestGridAddSubtractRoundTrip(t *testing.T) {
	target := Target{SlotMinutes: 60, Days: 1, Values: make([]float64, 24)}
	g := NewGrid(target)

	delta := make([]float64, 24)
	delta[5] = 3
	g.Add(delta)
	assert.Equal(t, 3.0, g.Values[5])

	g.Subtract(delta)
	assert.Zero(t, g.Values[5])
}

func TestBuildFromAssignmentsMatchesIncrementalAddition(t *testing.T) {
	target := Target{SlotMinutes: 60, Days: 1, Values: make([]float64, 24)}
	a := entity.NewShift("D", []entity.Interval{{Start: 0, End: 60}})
	b := entity.NewShift("E", []entity.Interval{{Start: 60, End: 120}})

	assignments := map[string][]entity.Shift{
		"alice": {a},
		"bob":   {b},
	}
	full := BuildFromAssignments(target, assignments)

	g := NewGrid(target)
	g.Add(Contribution([]entity.Shift{a}, target.SlotMinutes, target.NumSlots()))
	g.Add(Contribution([]entity.Shift{b}, target.SlotMinutes, target.NumSlots()))

	require.Equal(t, len(full.Values), len(g.Values))
	for i := range full.Values {
		assert.Equal(t, full.Values[i], g.Values[i])
	}
}
