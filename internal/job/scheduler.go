// Package job enqueues planner runs onto Asynq so a caller isn't
// blocked on a CPU-bound optimisation, and schedules a recurring
// re-optimisation trigger with robfig/cron. Grounded on the teacher's
// internal/job/scheduler.go (asynq.Client, Type* constants, JSON
// payload structs).
package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/schedcu/shiftplan/internal/entity"
)

// JobScheduler enqueues optimisation jobs to Asynq.
type JobScheduler struct {
	client *asynq.Client
}

// NewJobScheduler connects to the given Redis address.
func NewJobScheduler(redisAddr string) (*JobScheduler, error) {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})

	if err := client.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &JobScheduler{client: client}, nil
}

// Close releases the underlying Asynq client.
func (s *JobScheduler) Close() error { return s.client.Close() }

// TypeOptimize is the job type for a single planner run.
const TypeOptimize = "shiftplan:optimize"

// OptimizePayload is the payload for a TypeOptimize job.
type OptimizePayload struct {
	RunID         entity.RunID `json:"run_id"`
	Cooling       float64      `json:"cooling"`
	ComfortWeight float64      `json:"comfort_weight"`
	Seed          uint64       `json:"seed"`
}

// EnqueueOptimize enqueues a planner run, returning the RunID a caller
// can poll for completion.
func (s *JobScheduler) EnqueueOptimize(ctx context.Context, cooling, comfortWeight float64, seed uint64) (entity.RunID, error) {
	runID := entity.NewRunID()
	payload := OptimizePayload{RunID: runID, Cooling: cooling, ComfortWeight: comfortWeight, Seed: seed}

	task, err := newTask(TypeOptimize, payload)
	if err != nil {
		return runID, err
	}

	if _, err := s.client.EnqueueContext(ctx, task); err != nil {
		return runID, fmt.Errorf("failed to enqueue optimize job: %w", err)
	}
	return runID, nil
}
