package repository

import (
	"context"

	"github.com/halu23489/genba/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgCycleTimeRepository は CycleTimeRepository の PostgreSQL 実装
type PgCycleTimeRepository struct {
	pool *pgxpool.Pool
}

// NewPgCycleTimeRepository は PgCycleTimeRepository を生成する
func NewPgCycleTimeRepository(pool *pgxpool.Pool) *PgCycleTimeRepository {
	return &PgCycleTimeRepository{pool: pool}
}

// List はプロジェクトの計測記録を記録順で返す
func (r *PgCycleTimeRepository) List(ctx context.Context, projectID string) ([]*model.CycleTimeRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, project_id, step, duration, seconds, recorded_at
		 FROM cycle_time_records WHERE project_id = $1 ORDER BY recorded_at, id`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.CycleTimeRecord
	for rows.Next() {
		var c model.CycleTimeRecord
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Step, &c.Duration, &c.Seconds, &c.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Add は計測記録を追加する
func (r *PgCycleTimeRepository) Add(ctx context.Context, rec *model.CycleTimeRecord) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO cycle_time_records (project_id, step, duration, seconds)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, recorded_at`,
		rec.ProjectID, rec.Step, rec.Duration, rec.Seconds,
	).Scan(&rec.ID, &rec.RecordedAt)
}

// Clear はプロジェクトの計測記録をすべて削除する
func (r *PgCycleTimeRepository) Clear(ctx context.Context, projectID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cycle_time_records WHERE project_id = $1`, projectID)
	return err
}
