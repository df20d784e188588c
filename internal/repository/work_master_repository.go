package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/halu23489/genba/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const workMasterKeyPrefix = "genba:workmaster:" // genba:workmaster:{id} -> WorkMaster JSON

// MemoryWorkMasterRepository は WorkMasterRepository のプロセス内実装
type MemoryWorkMasterRepository struct {
	mu      sync.Mutex
	masters map[string]model.WorkMaster
}

// NewMemoryWorkMasterRepository は MemoryWorkMasterRepository を生成する
func NewMemoryWorkMasterRepository() *MemoryWorkMasterRepository {
	return &MemoryWorkMasterRepository{masters: make(map[string]model.WorkMaster)}
}

func (r *MemoryWorkMasterRepository) Get(_ context.Context, projectID string) (*model.WorkMaster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wm, ok := r.masters[projectID]
	if !ok {
		return nil, ErrNotFound
	}
	wm.Detail.Materials = append([]model.Material{}, wm.Detail.Materials...)
	return &wm, nil
}

func (r *MemoryWorkMasterRepository) Save(_ context.Context, wm *model.WorkMaster) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *wm
	c.Detail.Materials = append([]model.Material{}, wm.Detail.Materials...)
	r.masters[wm.ProjectID] = c
	return nil
}

// RedisWorkMasterRepository は WorkMasterRepository の Redis 実装
type RedisWorkMasterRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisWorkMasterRepository は RedisWorkMasterRepository を生成する。ttl <= 0 なら期限なし
func NewRedisWorkMasterRepository(client redis.UniversalClient, ttl time.Duration) *RedisWorkMasterRepository {
	return &RedisWorkMasterRepository{client: client, ttl: ttl}
}

func (r *RedisWorkMasterRepository) Get(ctx context.Context, projectID string) (*model.WorkMaster, error) {
	data, err := r.client.Get(ctx, workMasterKeyPrefix+projectID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get work master: %w", err)
	}
	var wm model.WorkMaster
	if err := json.Unmarshal(data, &wm); err != nil {
		return nil, fmt.Errorf("failed to unmarshal work master: %w", err)
	}
	wm.Normalize()
	return &wm, nil
}

func (r *RedisWorkMasterRepository) Save(ctx context.Context, wm *model.WorkMaster) error {
	data, err := json.Marshal(wm)
	if err != nil {
		return fmt.Errorf("failed to marshal work master: %w", err)
	}
	exp := r.ttl
	if exp <= 0 {
		exp = redis.KeepTTL
	}
	if err := r.client.Set(ctx, workMasterKeyPrefix+wm.ProjectID, data, exp).Err(); err != nil {
		return fmt.Errorf("failed to save work master: %w", err)
	}
	return nil
}

// PgWorkMasterRepository は WorkMasterRepository の PostgreSQL 実装
type PgWorkMasterRepository struct {
	pool *pgxpool.Pool
}

// NewPgWorkMasterRepository は PgWorkMasterRepository を生成する
func NewPgWorkMasterRepository(pool *pgxpool.Pool) *PgWorkMasterRepository {
	return &PgWorkMasterRepository{pool: pool}
}

func (r *PgWorkMasterRepository) Get(ctx context.Context, projectID string) (*model.WorkMaster, error) {
	wm := model.WorkMaster{ProjectID: projectID}
	var materials []byte
	err := r.pool.QueryRow(ctx,
		`SELECT site_name, task_name, period, contractor, machines,
		        materials, heavy_machine, person_count, work_unit, work_cycle, cycle_options, updated_at
		 FROM work_masters WHERE project_id = $1`,
		projectID,
	).Scan(&wm.Basic.SiteName, &wm.Basic.TaskName, &wm.Basic.Period, &wm.Basic.Contractor, &wm.Basic.Machines,
		&materials, &wm.Detail.HeavyMachine, &wm.Detail.PersonCount, &wm.Detail.WorkUnit, &wm.Detail.WorkCycle,
		&wm.Detail.CycleOptions, &wm.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(materials) > 0 {
		if err := json.Unmarshal(materials, &wm.Detail.Materials); err != nil {
			return nil, fmt.Errorf("decode materials: %w", err)
		}
	}
	wm.Normalize()
	return &wm, nil
}

func (r *PgWorkMasterRepository) Save(ctx context.Context, wm *model.WorkMaster) error {
	materials, err := json.Marshal(wm.Detail.Materials)
	if err != nil {
		return fmt.Errorf("encode materials: %w", err)
	}
	if wm.Detail.Materials == nil {
		materials = []byte("[]")
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO work_masters (project_id, site_name, task_name, period, contractor, machines,
		        materials, heavy_machine, person_count, work_unit, work_cycle, cycle_options, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		 ON CONFLICT (project_id) DO UPDATE SET
		        site_name=EXCLUDED.site_name, task_name=EXCLUDED.task_name, period=EXCLUDED.period,
		        contractor=EXCLUDED.contractor, machines=EXCLUDED.machines, materials=EXCLUDED.materials,
		        heavy_machine=EXCLUDED.heavy_machine, person_count=EXCLUDED.person_count,
		        work_unit=EXCLUDED.work_unit, work_cycle=EXCLUDED.work_cycle,
		        cycle_options=EXCLUDED.cycle_options, updated_at=NOW()`,
		wm.ProjectID, wm.Basic.SiteName, wm.Basic.TaskName, wm.Basic.Period, wm.Basic.Contractor, wm.Basic.Machines,
		materials, wm.Detail.HeavyMachine, wm.Detail.PersonCount, wm.Detail.WorkUnit, wm.Detail.WorkCycle,
		wm.Detail.CycleOptions,
	)
	return err
}
