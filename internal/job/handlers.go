package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/schedcu/shiftplan/internal/entity"
	"github.com/schedcu/shiftplan/internal/planner"
	"github.com/schedcu/shiftplan/internal/repository"
)

// PlannerFactory builds a fresh, fully-registered Planner for one job
// run (agent rules and target already installed) — the caller supplies
// this since the job layer has no opinion on where agent/target config
// comes from.
type PlannerFactory func() (*planner.Planner, error)

// Handlers executes queued optimisation jobs.
type Handlers struct {
	newPlanner PlannerFactory
	runs       repository.RunRepository
	logger     *zap.SugaredLogger
}

// NewHandlers creates job handlers wired to a planner factory and a run
// repository.
func NewHandlers(newPlanner PlannerFactory, runs repository.RunRepository, logger *zap.SugaredLogger) *Handlers {
	return &Handlers{newPlanner: newPlanner, runs: runs, logger: logger}
}

// RegisterHandlers registers every job handler with the Asynq mux.
func (h *Handlers) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeOptimize, h.HandleOptimize)
}

// HandleOptimize runs one planner optimisation and persists the result.
func (h *Handlers) HandleOptimize(ctx context.Context, t *asynq.Task) error {
	var payload OptimizePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	p, err := h.newPlanner()
	if err != nil {
		return fmt.Errorf("failed to build planner: %w", err)
	}

	err = p.Run(planner.RunOptions{Cooling: payload.Cooling, ComfortWeight: payload.ComfortWeight, Seed: payload.Seed})
	if err != nil {
		if k, ok := entity.KindOf(err); ok && k == entity.KindUnsatisfiableRule {
			return fmt.Errorf("unsatisfiable rule: %w", asynq.SkipRetry)
		}
		return err
	}

	run, err := snapshot(p, payload)
	if err != nil {
		return err
	}

	if err := h.runs.Create(ctx, run); err != nil {
		return fmt.Errorf("failed to persist run: %w", err)
	}

	if h.logger != nil {
		h.logger.Infow("optimize job completed", "run_id", run.ID, "best_energy", run.BestEnergy)
	}
	return nil
}

func snapshot(p *planner.Planner, payload OptimizePayload) (*entity.Run, error) {
	target, err := p.GetTargetStaffing()
	if err != nil {
		return nil, err
	}
	planned, err := p.GetPlannedStaffing()
	if err != nil {
		return nil, err
	}
	report, err := p.GetReport()
	if err != nil {
		return nil, err
	}
	bestEnergy, err := p.GetBestEnergy()
	if err != nil {
		return nil, err
	}

	agentPlans := make(map[string][]string)
	for _, code := range p.AgentCodes() {
		plan, err := p.GetAgentPlan(code)
		if err != nil {
			return nil, err
		}
		agentPlans[code] = plan
	}

	run := &entity.Run{
		ID:              payload.RunID,
		CreatedAt:       time.Now().UTC(),
		Seed:            payload.Seed,
		Cooling:         payload.Cooling,
		ComfortWeight:   payload.ComfortWeight,
		BestEnergy:      bestEnergy,
		Cancelled:       report.Cancelled,
		TargetStaffing:  target,
		PlannedStaffing: planned,
		ReportTable:     report.Table(),
		AgentPlans:      agentPlans,
	}
	return run, nil
}
