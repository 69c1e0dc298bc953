// Package plan holds the Plan container: the day-indexed assignment
// table for every registered agent, plus the coverage grid it implies.
// The Plan is mutated only by the annealing scheduler; it is created
// empty-filled from an initial sampling and handed out by copy at the
// end of a run.
package plan

import (
	"sync"

	"github.com/schedcu/shiftplan/internal/coverage"
	"github.com/schedcu/shiftplan/internal/entity"
)

// Plan is a mapping from agent code to an ordered sequence of Shift
// literals, length = days + offset_days. Invariant: at all observation
// points, planned[i] = sum over agents of contribution_i(currentAssignment(agent)).
type Plan struct {
	mu sync.RWMutex

	target      coverage.Target
	horizon     int // days + offset_days
	assignments map[string][]entity.Shift
	grid        coverage.Grid
}

// New creates an empty Plan for the given target and horizon. Agents
// are added via SwapAgent (used for both the initial sampling and every
// accepted proposal).
func New(target coverage.Target, horizon int) *Plan {
	return &Plan{
		target:      target,
		horizon:     horizon,
		assignments: make(map[string][]entity.Shift),
		grid:        coverage.NewGrid(target),
	}
}

// Handle is a reversible token returned by SwapAgent, letting a caller
// undo that swap via Revert without recomputing the whole grid from
// scratch. The annealing scheduler does not use it: it evaluates a
// proposal's energy delta before swapping and swaps only on acceptance.
type Handle struct {
	code       string
	prevExists bool
	prev       []entity.Shift
	prevContrib []float64
}

// SwapAgent atomically replaces agent code's assignment with newAssignment,
// updating the coverage grid incrementally, and returns a Handle that
// Revert can use to undo the swap.
func (p *Plan) SwapAgent(code string, newAssignment []entity.Shift) Handle {
	p.mu.Lock()
	defer p.mu.Unlock()

	prev, existed := p.assignments[code]
	var prevContrib []float64
	if existed {
		prevContrib = coverage.Contribution(prev, p.target.SlotMinutes, p.target.NumSlots())
		p.grid.Subtract(prevContrib)
	}

	newContrib := coverage.Contribution(newAssignment, p.target.SlotMinutes, p.target.NumSlots())
	p.grid.Add(newContrib)
	p.assignments[code] = newAssignment

	return Handle{code: code, prevExists: existed, prev: prev, prevContrib: prevContrib}
}

// Revert undoes the swap identified by h, restoring the prior
// assignment (or removing the agent entirely if it had none).
func (p *Plan) Revert(h Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cur := p.assignments[h.code]
	curContrib := coverage.Contribution(cur, p.target.SlotMinutes, p.target.NumSlots())
	p.grid.Subtract(curContrib)

	if h.prevExists {
		p.grid.Add(h.prevContrib)
		p.assignments[h.code] = h.prev
	} else {
		delete(p.assignments, h.code)
	}
}

// GetAgentPlan returns the day-indexed shift codes assigned to agent.
func (p *Plan) GetAgentPlan(code string) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	assignment := p.assignments[code]
	out := make([]string, len(assignment))
	for i, s := range assignment {
		out[i] = s.Code
	}
	return out
}

// AssignmentOf returns a copy of the raw Shift sequence for code, used
// internally by the energy/comfort computation.
func (p *Plan) AssignmentOf(code string) []entity.Shift {
	p.mu.RLock()
	defer p.mu.RUnlock()
	a := p.assignments[code]
	out := make([]entity.Shift, len(a))
	copy(out, a)
	return out
}

// Assignments returns a snapshot of every agent's current assignment.
func (p *Plan) Assignments() map[string][]entity.Shift {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string][]entity.Shift, len(p.assignments))
	for k, v := range p.assignments {
		cp := make([]entity.Shift, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// GetTargetStaffing returns the target staffing curve.
func (p *Plan) GetTargetStaffing() []float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]float64, len(p.target.Values))
	copy(out, p.target.Values)
	return out
}

// GetPlannedStaffing returns the current planned staffing curve.
func (p *Plan) GetPlannedStaffing() []float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]float64, len(p.grid.Values))
	copy(out, p.grid.Values)
	return out
}

// Grid returns a read-only snapshot of the current coverage grid values.
func (p *Plan) Grid() []float64 {
	return p.GetPlannedStaffing()
}

// Horizon returns the plan's day count (days + offset_days).
func (p *Plan) Horizon() int { return p.horizon }

// Rebuild recomputes the grid from scratch from the current assignments,
// used to validate incremental updates (spec.md §8 invariant 4).
func (p *Plan) Rebuild() coverage.Grid {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return coverage.BuildFromAssignments(p.target, p.assignments)
}

// RestoreAssignments replaces every agent's assignment with the given
// snapshot and rebuilds the coverage grid from scratch, used to roll
// the live plan back to a previously recorded best (e.g. on finish).
func (p *Plan) RestoreAssignments(assignments map[string][]entity.Shift) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cp := make(map[string][]entity.Shift, len(assignments))
	for k, v := range assignments {
		a := make([]entity.Shift, len(v))
		copy(a, v)
		cp[k] = a
	}
	p.assignments = cp
	p.grid = coverage.BuildFromAssignments(p.target, p.assignments)
}
