package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/shiftplan/internal/coverage"
	"github.com/schedcu/shiftplan/internal/entity"
)

func testTarget() coverage.Target {
	return coverage.Target{SlotMinutes: 60, Days: 1, Values: make([]float64, 24)}
}

func dayShift() entity.Shift { return entity.NewShift("D", []entity.Interval{{Start: 0, End: 60}}) }
func restShift() entity.Shift { return entity.Rest("OFF") }

func TestSwapAgentAddsContributionToGrid(t *testing.T) {
	p := New(testTarget(), 1)
	p.SwapAgent("alice", []entity.Shift{dayShift()})

	assert.Equal(t, 1.0, p.GetPlannedStaffing()[0])
	assert.Equal(t, []string{"D"}, p.GetAgentPlan("alice"))
}

func TestSwapAgentReplacesPriorAssignment(t *testing.T) {
	p := New(testTarget(), 1)
	p.SwapAgent("alice", []entity.Shift{dayShift()})
	p.SwapAgent("alice", []entity.Shift{restShift()})

	assert.Equal(t, 0.0, p.GetPlannedStaffing()[0])
	assert.Equal(t, []string{"OFF"}, p.GetAgentPlan("alice"))
}

func TestRevertUndoesSwapForExistingAgent(t *testing.T) {
	p := New(testTarget(), 1)
	p.SwapAgent("alice", []entity.Shift{dayShift()})

	h := p.SwapAgent("alice", []entity.Shift{restShift()})
	p.Revert(h)

	assert.Equal(t, 1.0, p.GetPlannedStaffing()[0])
	assert.Equal(t, []string{"D"}, p.GetAgentPlan("alice"))
}

func TestRevertRemovesAgentThatDidNotExistBefore(t *testing.T) {
	p := New(testTarget(), 1)
	h := p.SwapAgent("alice", []entity.Shift{dayShift()})
	p.Revert(h)

	assert.Empty(t, p.GetAgentPlan("alice"))
	assert.Equal(t, 0.0, p.GetPlannedStaffing()[0])
}

func TestRebuildMatchesIncrementalGrid(t *testing.T) {
	p := New(testTarget(), 1)
	p.SwapAgent("alice", []entity.Shift{dayShift()})
	p.SwapAgent("bob", []entity.Shift{entity.NewShift("E", []entity.Interval{{Start: 60, End: 120}})})

	rebuilt := p.Rebuild()
	incremental := p.GetPlannedStaffing()

	require.Equal(t, len(rebuilt.Values), len(incremental))
	for i := range incremental {
		assert.Equal(t, rebuilt.Values[i], incremental[i])
	}
}

func TestAssignmentsSnapshotIsIndependentCopy(t *testing.T) {
	p := New(testTarget(), 1)
	p.SwapAgent("alice", []entity.Shift{dayShift()})

	snap := p.Assignments()
	snap["alice"][0] = restShift()

	assert.Equal(t, "D", p.AssignmentOf("alice")[0].Code)
}

func TestHorizonReturnsConstructorValue(t *testing.T) {
	p := New(testTarget(), 3)
	assert.Equal(t, 3, p.Horizon())
}

func TestRestoreAssignmentsReplacesStateAndRebuildsGrid(t *testing.T) {
	p := New(testTarget(), 1)
	p.SwapAgent("alice", []entity.Shift{dayShift()})
	snapshot := p.Assignments()

	p.SwapAgent("alice", []entity.Shift{restShift()})
	p.SwapAgent("bob", []entity.Shift{dayShift()})
	require.Equal(t, []string{"D"}, p.GetAgentPlan("bob"))

	p.RestoreAssignments(snapshot)

	assert.Equal(t, []string{"D"}, p.GetAgentPlan("alice"))
	assert.Empty(t, p.GetAgentPlan("bob"))
	assert.Equal(t, 1.0, p.GetPlannedStaffing()[0])
}

func TestRestoreAssignmentsIsIndependentOfCallerMutation(t *testing.T) {
	p := New(testTarget(), 1)
	p.SwapAgent("alice", []entity.Shift{dayShift()})
	snapshot := p.Assignments()

	p.RestoreAssignments(snapshot)
	snapshot["alice"][0] = restShift()

	assert.Equal(t, "D", p.AssignmentOf("alice")[0].Code)
}
