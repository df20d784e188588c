package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/halu23489/genba/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// execer は pool と tx の共通部分
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PgProjectRepository は ProjectRepository の PostgreSQL 実装
type PgProjectRepository struct {
	pool *pgxpool.Pool
}

// NewPgProjectRepository は PgProjectRepository を生成する
func NewPgProjectRepository(pool *pgxpool.Pool) *PgProjectRepository {
	return &PgProjectRepository{pool: pool}
}

// Get は ID でプロジェクトを取得する
func (r *PgProjectRepository) Get(ctx context.Context, id string) (*model.Project, error) {
	var p model.Project
	var mode, phase string
	err := r.pool.QueryRow(ctx,
		`SELECT id, site_name, task_name, tool_list, planned_quantity, planned_unit,
		        cycle_steps, cycle_checks, budget_labor, budget_machine, budget_materials,
		        design_link, progress_mode, schema_version, phase, progress_pct,
		        cumulative_qty, actual_cost, created_at, updated_at
		 FROM projects WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.SiteName, &p.TaskName, &p.ToolList, &p.PlannedQuantity, &p.PlannedUnit,
		&p.CycleSteps, &p.CycleChecks, &p.Budget.Labor, &p.Budget.Machine, &p.Budget.Materials,
		&p.DesignLink, &mode, &p.SchemaVersion, &phase, &p.ProgressPct,
		&p.CumulativeQty, &p.ActualCost, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.ProgressMode = model.ProgressMode(mode)
	p.Phase = model.Phase(phase)
	p.Normalize()
	return &p, nil
}

// Save はプロジェクトを作成または更新する
func (r *PgProjectRepository) Save(ctx context.Context, project *model.Project) error {
	return upsertProject(ctx, r.pool, project)
}

// SaveRollup はプロジェクト行をロックして日報件数を確認してから保存する
func (r *PgProjectRepository) SaveRollup(ctx context.Context, project *model.Project, recordCount int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT 1 FROM projects WHERE id = $1 FOR UPDATE`, project.ID); err != nil {
		return err
	}
	var count int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM daily_records WHERE project_id = $1`, project.ID,
	).Scan(&count); err != nil {
		return err
	}
	if count != recordCount {
		return ErrConflict
	}
	if err := upsertProject(ctx, tx, project); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ListRecords は日報を seq 順で返す
func (r *PgProjectRepository) ListRecords(ctx context.Context, projectID string) ([]model.DailyRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, project_id, seq, record_date, personnel, machinery, work_time, work_content,
		        progress_unit, progress_value, progress_total, cycles, weather, remarks,
		        cost_personnel, cost_machinery, cost_total, created_at
		 FROM daily_records WHERE project_id = $1 ORDER BY seq`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.DailyRecord{}
	for rows.Next() {
		var rec model.DailyRecord
		var cycles []byte
		if err := rows.Scan(&rec.ID, &rec.ProjectID, &rec.Seq, &rec.Date, &rec.Personnel, &rec.Machinery,
			&rec.WorkTime, &rec.WorkContent, &rec.ProgressUnit, &rec.ProgressValue, &rec.ProgressTotal,
			&cycles, &rec.Weather, &rec.Remarks, &rec.CostPersonnel, &rec.CostMachinery, &rec.CostTotal,
			&rec.CreatedAt); err != nil {
			return nil, err
		}
		if len(cycles) > 0 {
			if err := json.Unmarshal(cycles, &rec.Cycles); err != nil {
				return nil, fmt.Errorf("decode cycles: %w", err)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// AppendRecord は日報の INSERT とプロジェクトの UPDATE を 1 トランザクションで行う
func (r *PgProjectRepository) AppendRecord(ctx context.Context, project *model.Project, rec *model.DailyRecord) error {
	cycles, err := json.Marshal(rec.Cycles)
	if err != nil {
		return fmt.Errorf("encode cycles: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := upsertProject(ctx, tx, project); err != nil {
		return err
	}

	var count int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM daily_records WHERE project_id = $1`, project.ID,
	).Scan(&count); err != nil {
		return err
	}
	if rec.Seq != count+1 {
		return ErrConflict
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO daily_records (project_id, seq, record_date, personnel, machinery, work_time,
		        work_content, progress_unit, progress_value, progress_total, cycles, weather, remarks,
		        cost_personnel, cost_machinery, cost_total)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING id, created_at`,
		project.ID, rec.Seq, rec.Date, rec.Personnel, nonNil(rec.Machinery), rec.WorkTime,
		nonNil(rec.WorkContent), rec.ProgressUnit, rec.ProgressValue, rec.ProgressTotal, cycles,
		rec.Weather, rec.Remarks, rec.CostPersonnel, rec.CostMachinery, rec.CostTotal,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrConflict
		}
		return err
	}
	return tx.Commit(ctx)
}

// Ping は接続確認
func (r *PgProjectRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func upsertProject(ctx context.Context, db execer, p *model.Project) error {
	_, err := db.Exec(ctx,
		`INSERT INTO projects (id, site_name, task_name, tool_list, planned_quantity, planned_unit,
		        cycle_steps, cycle_checks, budget_labor, budget_machine, budget_materials,
		        design_link, progress_mode, schema_version, phase, progress_pct,
		        cumulative_qty, actual_cost, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, NOW())
		 ON CONFLICT (id) DO UPDATE SET
		        site_name=EXCLUDED.site_name, task_name=EXCLUDED.task_name, tool_list=EXCLUDED.tool_list,
		        planned_quantity=EXCLUDED.planned_quantity, planned_unit=EXCLUDED.planned_unit,
		        cycle_steps=EXCLUDED.cycle_steps, cycle_checks=EXCLUDED.cycle_checks,
		        budget_labor=EXCLUDED.budget_labor, budget_machine=EXCLUDED.budget_machine,
		        budget_materials=EXCLUDED.budget_materials, design_link=EXCLUDED.design_link,
		        progress_mode=EXCLUDED.progress_mode, schema_version=EXCLUDED.schema_version,
		        phase=EXCLUDED.phase, progress_pct=EXCLUDED.progress_pct,
		        cumulative_qty=EXCLUDED.cumulative_qty, actual_cost=EXCLUDED.actual_cost,
		        updated_at=NOW()`,
		p.ID, p.SiteName, p.TaskName, p.ToolList, p.PlannedQuantity, p.PlannedUnit,
		nonNil(p.CycleSteps), nonNil(p.CycleChecks), p.Budget.Labor, p.Budget.Machine, p.Budget.Materials,
		p.DesignLink, string(p.ProgressMode), p.SchemaVersion, string(p.Phase), p.ProgressPct,
		p.CumulativeQty, p.ActualCost, p.CreatedAt,
	)
	return err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
