// Package memory provides an in-memory RunRepository, used by tests
// that need a run store without a database.
package memory

import (
	"context"
	"sync"

	"github.com/schedcu/shiftplan/internal/entity"
	"github.com/schedcu/shiftplan/internal/repository"
)

// RunRepository is a mutex-guarded in-memory map of runs, mirroring the
// teacher's internal/repository/memory/schedule.go shape.
type RunRepository struct {
	mu   sync.RWMutex
	runs map[entity.RunID]*entity.Run
}

// NewRunRepository creates an empty in-memory run repository.
func NewRunRepository() *RunRepository {
	return &RunRepository{runs: make(map[entity.RunID]*entity.Run)}
}

func (r *RunRepository) Create(ctx context.Context, run *entity.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = run
	return nil
}

func (r *RunRepository) GetByID(ctx context.Context, id entity.RunID) (*entity.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, &repository.NotFoundError{ResourceType: "Run", ResourceID: id.String()}
	}
	return run, nil
}

func (r *RunRepository) List(ctx context.Context) ([]*entity.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Run, 0, len(r.runs))
	for _, run := range r.runs {
		out = append(out, run)
	}
	return out, nil
}
