package entity

import (
	"time"

	"github.com/google/uuid"
)

// RunID identifies one persisted planner run.
type RunID = uuid.UUID

// Run is a persisted snapshot of a completed (or cancelled) planner
// run: the final per-agent plans, the two staffing curves, and the
// report table, kept so a caller can retrieve past optimisation
// results without re-running the scheduler.
type Run struct {
	ID               RunID
	CreatedAt        time.Time
	Seed             uint64
	Cooling          float64
	ComfortWeight    float64
	BestEnergy       float64
	Cancelled        bool
	AgentPlans       map[string][]string
	TargetStaffing   []float64
	PlannedStaffing  []float64
	ReportTable      string
}

// NewRunID generates a fresh RunID.
func NewRunID() RunID {
	return uuid.New()
}
