package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/halu23489/genba/internal/model"
	"github.com/halu23489/genba/internal/progress"
	"github.com/halu23489/genba/internal/repository"
)

// DailyRecordService は日報の登録・一覧のビジネスロジック
type DailyRecordService interface {
	// List はプロジェクトと日報一覧（新しい順）を返す
	List(ctx context.Context, projectID string) (*model.Project, []model.DailyRecord, error)
	// Submit は日報の費用を計算して追加し、集計済みプロジェクトと追加した日報を返す
	Submit(ctx context.Context, projectID string, rec model.DailyRecord) (*model.Project, *model.DailyRecord, error)
}

// DailyRecordServiceImpl は DailyRecordService の実装
type DailyRecordServiceImpl struct {
	repo  repository.ProjectRepository
	rates progress.RateTable
}

// NewDailyRecordService は DailyRecordServiceImpl を生成する
func NewDailyRecordService(repo repository.ProjectRepository, rates progress.RateTable) DailyRecordService {
	return &DailyRecordServiceImpl{repo: repo, rates: rates}
}

// List は日報を新しい順に返す
func (s *DailyRecordServiceImpl) List(ctx context.Context, projectID string) (*model.Project, []model.DailyRecord, error) {
	p, err := ensureProject(ctx, s.repo, projectID)
	if err != nil {
		return nil, nil, err
	}
	records, err := s.repo.ListRecords(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	slices.Reverse(records)
	return p, records, nil
}

// Submit は日報を追加する。現場設定が未保存なら ErrProjectNotConfigured。
// 保存に失敗した場合は既存の状態を変更しない。
func (s *DailyRecordServiceImpl) Submit(ctx context.Context, projectID string, rec model.DailyRecord) (*model.Project, *model.DailyRecord, error) {
	if err := validateRecord(rec); err != nil {
		return nil, nil, err
	}
	p, err := ensureProject(ctx, s.repo, projectID)
	if err != nil {
		return nil, nil, err
	}
	if !p.Configured() {
		return nil, nil, ErrProjectNotConfigured
	}
	records, err := s.repo.ListRecords(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}

	rolled, all := progress.Append(*p, records, rec, s.rates)
	added := all[len(all)-1]
	rolled.UpdatedAt = time.Now()

	if err := s.repo.AppendRecord(ctx, &rolled, &added); err != nil {
		return nil, nil, err
	}
	slog.Info("daily record appended",
		"project_id", projectID,
		"seq", added.Seq,
		"cost_total", added.CostTotal,
		"progress_pct", rolled.ProgressPct,
		"phase", rolled.Phase,
	)
	return &rolled, &added, nil
}

func validateRecord(rec model.DailyRecord) error {
	if rec.Personnel > progress.MaxPersonnel {
		return fmt.Errorf("%w: personnel must be <= %d", ErrInvalidInput, progress.MaxPersonnel)
	}
	if rec.WorkTime > progress.MaxWorkHours {
		return fmt.Errorf("%w: work_time must be <= %d", ErrInvalidInput, progress.MaxWorkHours)
	}
	return nil
}
