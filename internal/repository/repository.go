// Package repository defines the storage interfaces for persisted
// planner runs, mirroring the teacher's interface-per-aggregate split
// between an in-memory implementation (tests) and a PostgreSQL
// implementation (cmd/worker, which persists each completed job).
package repository

import (
	"context"

	"github.com/schedcu/shiftplan/internal/entity"
)

// RunRepository stores and retrieves persisted planner runs.
type RunRepository interface {
	Create(ctx context.Context, run *entity.Run) error
	GetByID(ctx context.Context, id entity.RunID) (*entity.Run, error)
	List(ctx context.Context) ([]*entity.Run, error)
}

// NotFoundError is returned when a lookup finds no matching record.
type NotFoundError struct {
	ResourceType string
	ResourceID   string
}

func (e *NotFoundError) Error() string {
	return e.ResourceType + " not found: " + e.ResourceID
}
