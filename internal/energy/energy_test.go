package energy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schedcu/shiftplan/internal/entity"
)

func TestCoverageZeroWhenPlannedMatchesTarget(t *testing.T) {
	target := []float64{1, 2, 3}
	planned := []float64{1, 2, 3}
	assert.Zero(t, Coverage(planned, target))
}

func TestCoverageSumOfSquares(t *testing.T) {
	target := []float64{0, 0}
	planned := []float64{1, 2}
	assert.Equal(t, 5.0, Coverage(planned, target))
}

func TestComfortNilFuncIsZero(t *testing.T) {
	assignments := map[string][]entity.Shift{"alice": {entity.Rest("OFF")}}
	assert.Zero(t, Comfort(assignments, nil))
}

func TestComfortSumsAcrossAgents(t *testing.T) {
	assignments := map[string][]entity.Shift{
		"alice": {entity.Rest("OFF"), entity.Rest("OFF")},
		"bob":   {entity.NewShift("D", nil), entity.Rest("OFF")},
	}
	got := Comfort(assignments, func(a []entity.Shift) float64 { return float64(len(a)) })
	assert.Equal(t, 4.0, got)
}

func TestTotalCombinesCoverageAndWeightedComfort(t *testing.T) {
	assert.Equal(t, 1.0+0.2*5.0, Total(1.0, 5.0, 0.2))
}

func TestDefaultComfortCountsCodeTransitions(t *testing.T) {
	assignment := []entity.Shift{
		entity.NewShift("D", nil),
		entity.NewShift("D", nil),
		entity.Rest("OFF"),
		entity.NewShift("N", nil),
	}
	assert.Equal(t, 2.0, DefaultComfort(assignment))
}

func TestDefaultComfortZeroForConstantAssignment(t *testing.T) {
	assignment := []entity.Shift{entity.Rest("OFF"), entity.Rest("OFF"), entity.Rest("OFF")}
	assert.Zero(t, DefaultComfort(assignment))
}

func TestDeltaMatchesFullRecomputation(t *testing.T) {
	target := []float64{2, 2, 2, 2}
	planned := []float64{1, 3, 0, 2}
	oldContribution := []float64{1, 0, 0, 0}
	newContribution := []float64{0, 0, 2, 1}

	got := Delta(planned, target, oldContribution, newContribution)

	afterPlanned := make([]float64, len(planned))
	for i := range planned {
		afterPlanned[i] = planned[i] - oldContribution[i] + newContribution[i]
	}
	want := Coverage(afterPlanned, target) - Coverage(planned, target)

	assert.InDelta(t, want, got, 1e-9)
}

func TestDeltaMatchesFullRecomputationRandomised(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	n := 20
	target := make([]float64, n)
	planned := make([]float64, n)
	oldContribution := make([]float64, n)
	newContribution := make([]float64, n)
	for i := 0; i < n; i++ {
		target[i] = r.Float64() * 5
		planned[i] = r.Float64() * 5
		oldContribution[i] = r.Float64() * 2
		newContribution[i] = r.Float64() * 2
	}

	got := Delta(planned, target, oldContribution, newContribution)

	afterPlanned := make([]float64, n)
	for i := 0; i < n; i++ {
		afterPlanned[i] = planned[i] - oldContribution[i] + newContribution[i]
	}
	want := Coverage(afterPlanned, target) - Coverage(planned, target)

	assert.InDelta(t, want, got, 1e-9)
}
