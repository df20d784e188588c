package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/halu23489/genba/internal/model"
	"github.com/halu23489/genba/internal/progress"
	"github.com/halu23489/genba/internal/repository"
)

// CycleTimeService はストップウォッチによるサイクルタイム計測のビジネスロジック
type CycleTimeService interface {
	List(ctx context.Context, projectID string) ([]*model.CycleTimeRecord, error)
	Add(ctx context.Context, projectID, step, duration string) (*model.CycleTimeRecord, error)
	Clear(ctx context.Context, projectID string) error
}

// CycleTimeServiceImpl は CycleTimeService の実装
type CycleTimeServiceImpl struct {
	projects repository.ProjectRepository
	repo     repository.CycleTimeRepository
}

// NewCycleTimeService は CycleTimeServiceImpl を生成する
func NewCycleTimeService(projects repository.ProjectRepository, repo repository.CycleTimeRepository) CycleTimeService {
	return &CycleTimeServiceImpl{projects: projects, repo: repo}
}

// List は計測記録を新しい順に返す
func (s *CycleTimeServiceImpl) List(ctx context.Context, projectID string) ([]*model.CycleTimeRecord, error) {
	list, err := s.repo.List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	slices.Reverse(list)
	return list, nil
}

// Add は計測記録を追加する。サイクル工程が未設定なら ErrCycleStepsRequired
func (s *CycleTimeServiceImpl) Add(ctx context.Context, projectID, step, duration string) (*model.CycleTimeRecord, error) {
	step = strings.TrimSpace(step)
	if step == "" {
		return nil, fmt.Errorf("%w: step_name is required", ErrInvalidInput)
	}
	p, err := ensureProject(ctx, s.projects, projectID)
	if err != nil {
		return nil, err
	}
	if len(p.CycleSteps) == 0 {
		return nil, ErrCycleStepsRequired
	}

	rec := &model.CycleTimeRecord{
		ProjectID:  projectID,
		Step:       step,
		Duration:   strings.TrimSpace(duration),
		Seconds:    DurationSeconds(duration),
		RecordedAt: time.Now(),
	}
	if err := s.repo.Add(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Clear は計測記録をすべて削除する
func (s *CycleTimeServiceImpl) Clear(ctx context.Context, projectID string) error {
	return s.repo.Clear(ctx, projectID)
}

// DurationSeconds はストップウォッチ表示の文字列を秒に変換する。
// "42.5", "01:23.4", "1:02:03", "1m23s" を受け付け、解釈できなければ 0。
func DurationSeconds(s string) float64 {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil && d >= 0 {
		return d.Seconds()
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0
	}
	total := 0.0
	for _, part := range parts {
		v := progress.FloatOr(part, -1)
		if v < 0 {
			return 0
		}
		total = total*60 + v
	}
	return total
}
