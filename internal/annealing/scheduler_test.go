package annealing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/shiftplan/internal/coverage"
	"github.com/schedcu/shiftplan/internal/entity"
	"github.com/schedcu/shiftplan/internal/randsrc"
)

func dayShift() entity.Shift  { return entity.NewShift("D", []entity.Interval{{Start: 480, End: 960}}) }
func offShift() entity.Shift  { return entity.Rest("OFF") }

func flexibleRule() entity.ShiftRule {
	return entity.Star(entity.Choice(entity.Lit(dayShift()), entity.Lit(offShift())))
}

func smallTarget(days int) coverage.Target {
	n := days * 1440 / 60
	values := make([]float64, n)
	for i := range values {
		values[i] = 0.5
	}
	return coverage.Target{SlotMinutes: 60, Days: days, Values: values}
}

func TestNewSchedulerStartsInStateBuilt(t *testing.T) {
	rules := map[string]entity.ShiftRule{"alice": flexibleRule(), "bob": flexibleRule()}
	s := New(smallTarget(3), rules, DefaultConfig(2, 3), randsrc.New(1), nil)
	assert.Equal(t, StateBuilt, s.State())
}

func TestInitialiseTransitionsToInitialised(t *testing.T) {
	rules := map[string]entity.ShiftRule{"alice": flexibleRule(), "bob": flexibleRule()}
	s := New(smallTarget(3), rules, DefaultConfig(2, 3), randsrc.New(1), nil)
	require.NoError(t, s.Initialise())
	assert.Equal(t, StateInitialised, s.State())
	assert.NotNil(t, s.Plan())
}

func TestInitialiseTwiceFromSameStateErrors(t *testing.T) {
	rules := map[string]entity.ShiftRule{"alice": flexibleRule()}
	s := New(smallTarget(2), rules, DefaultConfig(1, 2), randsrc.New(1), nil)
	require.NoError(t, s.Initialise())
	err := s.Initialise()
	require.Error(t, err)
	kind, ok := entity.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, entity.KindInternal, kind)
}

func TestRunBestEnergyMatchesMinimumRecordedEnergy(t *testing.T) {
	rules := map[string]entity.ShiftRule{"alice": flexibleRule(), "bob": flexibleRule(), "carol": flexibleRule()}
	cfg := DefaultConfig(3, 3)
	cfg.MaxIterations = 200
	cfg.StagnantEpochLimit = 3

	s := New(smallTarget(3), rules, cfg, randsrc.New(7), nil)
	require.NoError(t, s.Initialise())
	require.NoError(t, s.Run())

	assert.Equal(t, StateDone, s.State())
	assert.False(t, s.Report().Cancelled)

	// Metropolis acceptance lets the live energy rise above the best
	// seen so far at any point (that's the point of annealing), so the
	// invariant worth checking isn't "recorded accepts never worsen" —
	// it's that BestEnergy() truly tracks the minimum across every
	// recorded init/accept energy, not some other quantity.
	minRecorded := math.Inf(1)
	for _, rec := range s.Report().Records {
		if rec.Kind == RecordInit || rec.Kind == RecordAccept {
			if rec.Energy < minRecorded {
				minRecorded = rec.Energy
			}
		}
	}
	assert.InDelta(t, minRecorded, s.BestEnergy(), 1e-6)
}

func TestFinishRestoresLivePlanToBestPlan(t *testing.T) {
	rules := map[string]entity.ShiftRule{"alice": flexibleRule(), "bob": flexibleRule()}
	cfg := DefaultConfig(2, 3)
	cfg.MaxIterations = 200
	cfg.StagnantEpochLimit = 2

	s := New(smallTarget(3), rules, cfg, randsrc.New(13), nil)
	require.NoError(t, s.Initialise())
	require.NoError(t, s.Run())

	// Once Done, the live plan the accessors read must describe the
	// same assignment as BestPlan/BestEnergy, even though Metropolis
	// acceptance may have left a worse-energy move committed right
	// before the run stopped.
	assert.Equal(t, s.BestPlan(), s.Plan().Assignments())
	assert.InDelta(t, s.BestEnergy(), s.energyTotal, 1e-6)
}

func TestRunAbortStopsCooperatively(t *testing.T) {
	rules := map[string]entity.ShiftRule{"alice": flexibleRule()}
	cfg := DefaultConfig(1, 2)
	cfg.MaxIterations = 1_000_000
	cfg.StagnantEpochLimit = 1_000_000

	s := New(smallTarget(2), rules, cfg, randsrc.New(3), nil)
	require.NoError(t, s.Initialise())
	s.Abort()
	require.NoError(t, s.Run())

	assert.Equal(t, StateDone, s.State())
	assert.True(t, s.Report().Cancelled)
	// A cooperative abort must still return the best-seen plan, per
	// the state machine's Done contract.
	assert.Equal(t, s.BestPlan(), s.Plan().Assignments())
}

func TestBestPlanHasOneEntryPerAgent(t *testing.T) {
	rules := map[string]entity.ShiftRule{"alice": flexibleRule(), "bob": flexibleRule()}
	s := New(smallTarget(2), rules, DefaultConfig(2, 2), randsrc.New(5), nil)
	require.NoError(t, s.Initialise())
	require.NoError(t, s.Run())

	best := s.BestPlan()
	assert.Len(t, best, 2)
	assert.Contains(t, best, "alice")
	assert.Contains(t, best, "bob")
}
