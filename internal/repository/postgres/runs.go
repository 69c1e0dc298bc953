package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/schedcu/shiftplan/internal/entity"
	"github.com/schedcu/shiftplan/internal/repository"
)

// RunRepository implements repository.RunRepository for PostgreSQL.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository.
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) Create(ctx context.Context, run *entity.Run) error {
	agentPlans, err := json.Marshal(run.AgentPlans)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, created_at, seed, cooling, comfort_weight, best_energy,
			cancelled, agent_plans, target_staffing, planned_staffing, report_table
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		run.ID,
		run.CreatedAt,
		run.Seed,
		run.Cooling,
		run.ComfortWeight,
		run.BestEnergy,
		run.Cancelled,
		agentPlans,
		pq.Array(run.TargetStaffing),
		pq.Array(run.PlannedStaffing),
		run.ReportTable,
	)
	return err
}

func (r *RunRepository) GetByID(ctx context.Context, id entity.RunID) (*entity.Run, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, created_at, seed, cooling, comfort_weight, best_energy,
			cancelled, agent_plans, target_staffing, planned_staffing, report_table
		FROM runs WHERE id = $1
	`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "Run", ResourceID: id.String()}
	}
	return run, err
}

func (r *RunRepository) List(ctx context.Context) ([]*entity.Run, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at, seed, cooling, comfort_weight, best_energy,
			cancelled, agent_plans, target_staffing, planned_staffing, report_table
		FROM runs ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func scanRun(scanner interface{ Scan(...interface{}) error }) (*entity.Run, error) {
	var run entity.Run
	var id uuid.UUID
	var agentPlans []byte

	err := scanner.Scan(
		&id,
		&run.CreatedAt,
		&run.Seed,
		&run.Cooling,
		&run.ComfortWeight,
		&run.BestEnergy,
		&run.Cancelled,
		&agentPlans,
		pq.Array(&run.TargetStaffing),
		pq.Array(&run.PlannedStaffing),
		&run.ReportTable,
	)
	if err != nil {
		return nil, err
	}

	run.ID = id
	if err := json.Unmarshal(agentPlans, &run.AgentPlans); err != nil {
		return nil, err
	}
	return &run, nil
}
