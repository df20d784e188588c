package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/halu23489/genba/internal/model"
)

// MemoryProjectRepository は ProjectRepository のプロセス内実装。
// 再起動でデータは消える（開発・テスト用）。
type MemoryProjectRepository struct {
	mu       sync.Mutex
	projects map[string]model.Project
	records  map[string][]model.DailyRecord
}

// NewMemoryProjectRepository は MemoryProjectRepository を生成する
func NewMemoryProjectRepository() *MemoryProjectRepository {
	return &MemoryProjectRepository{
		projects: make(map[string]model.Project),
		records:  make(map[string][]model.DailyRecord),
	}
}

func (r *MemoryProjectRepository) Ping(context.Context) error { return nil }

func (r *MemoryProjectRepository) Get(_ context.Context, id string) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	p = cloneProject(p)
	return &p, nil
}

func (r *MemoryProjectRepository) Save(_ context.Context, project *model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[project.ID] = cloneProject(*project)
	return nil
}

func (r *MemoryProjectRepository) SaveRollup(_ context.Context, project *model.Project, recordCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.records[project.ID]) != recordCount {
		return ErrConflict
	}
	r.projects[project.ID] = cloneProject(*project)
	return nil
}

func (r *MemoryProjectRepository) ListRecords(_ context.Context, projectID string) ([]model.DailyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	src := r.records[projectID]
	out := make([]model.DailyRecord, len(src))
	for i, rec := range src {
		out[i] = cloneRecord(rec)
	}
	return out, nil
}

func (r *MemoryProjectRepository) AppendRecord(_ context.Context, project *model.Project, rec *model.DailyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.Seq != len(r.records[project.ID])+1 {
		return ErrConflict
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	r.records[project.ID] = append(r.records[project.ID], cloneRecord(*rec))
	r.projects[project.ID] = cloneProject(*project)
	return nil
}

// MemoryCycleTimeRepository は CycleTimeRepository のプロセス内実装
type MemoryCycleTimeRepository struct {
	mu      sync.Mutex
	records map[string][]model.CycleTimeRecord
}

// NewMemoryCycleTimeRepository は MemoryCycleTimeRepository を生成する
func NewMemoryCycleTimeRepository() *MemoryCycleTimeRepository {
	return &MemoryCycleTimeRepository{records: make(map[string][]model.CycleTimeRecord)}
}

func (r *MemoryCycleTimeRepository) List(_ context.Context, projectID string) ([]*model.CycleTimeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.CycleTimeRecord, 0, len(r.records[projectID]))
	for _, rec := range r.records[projectID] {
		out = append(out, &rec)
	}
	return out, nil
}

func (r *MemoryCycleTimeRepository) Add(_ context.Context, rec *model.CycleTimeRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now()
	}
	r.records[rec.ProjectID] = append(r.records[rec.ProjectID], *rec)
	return nil
}

func (r *MemoryCycleTimeRepository) Clear(_ context.Context, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, projectID)
	return nil
}

func cloneProject(p model.Project) model.Project {
	p.CycleSteps = slices.Clone(p.CycleSteps)
	p.CycleChecks = slices.Clone(p.CycleChecks)
	return p
}

func cloneRecord(rec model.DailyRecord) model.DailyRecord {
	rec.Machinery = slices.Clone(rec.Machinery)
	rec.WorkContent = slices.Clone(rec.WorkContent)
	rec.Cycles = slices.Clone(rec.Cycles)
	return rec
}
