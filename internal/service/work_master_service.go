package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/halu23489/genba/internal/model"
	"github.com/halu23489/genba/internal/progress"
	"github.com/halu23489/genba/internal/repository"
)

// WorkMasterService は歩掛マスターの入力・参照のビジネスロジック
type WorkMasterService interface {
	// Get は保存済みの歩掛マスターを返す。未保存なら空の値
	Get(ctx context.Context, projectID string) (*model.WorkMaster, error)
	// SaveBasic は基本情報だけを上書きする
	SaveBasic(ctx context.Context, projectID string, basic model.WorkMasterBasic) (*model.WorkMaster, error)
	// SaveDetail は詳細内容だけを上書きする
	SaveDetail(ctx context.Context, projectID string, detail model.WorkMasterDetail) (*model.WorkMaster, error)
}

// WorkMasterServiceImpl は WorkMasterService の実装
type WorkMasterServiceImpl struct {
	projects repository.ProjectRepository
	repo     repository.WorkMasterRepository
}

// NewWorkMasterService は WorkMasterServiceImpl を生成する
func NewWorkMasterService(projects repository.ProjectRepository, repo repository.WorkMasterRepository) WorkMasterService {
	return &WorkMasterServiceImpl{projects: projects, repo: repo}
}

func (s *WorkMasterServiceImpl) Get(ctx context.Context, projectID string) (*model.WorkMaster, error) {
	wm, err := s.repo.Get(ctx, projectID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.NewWorkMaster(projectID), nil
	}
	return wm, err
}

func (s *WorkMasterServiceImpl) SaveBasic(ctx context.Context, projectID string, basic model.WorkMasterBasic) (*model.WorkMaster, error) {
	return s.update(ctx, projectID, func(wm *model.WorkMaster) {
		wm.Basic = basic
	})
}

func (s *WorkMasterServiceImpl) SaveDetail(ctx context.Context, projectID string, detail model.WorkMasterDetail) (*model.WorkMaster, error) {
	if detail.PersonCount < 0 || detail.PersonCount > progress.MaxPersonnel {
		return nil, fmt.Errorf("%w: person_count must be between 0 and %d", ErrInvalidInput, progress.MaxPersonnel)
	}
	for _, m := range detail.Materials {
		if m.Quantity < 0 {
			return nil, fmt.Errorf("%w: material_qty must be >= 0", ErrInvalidInput)
		}
	}
	if detail.Materials == nil {
		detail.Materials = []model.Material{}
	}
	return s.update(ctx, projectID, func(wm *model.WorkMaster) {
		wm.Detail = detail
	})
}

// update は歩掛マスターを読み込み、apply を適用して保存する。
// PostgreSQL では projects への外部キーがあるため、先にプロジェクトを用意する。
func (s *WorkMasterServiceImpl) update(ctx context.Context, projectID string, apply func(*model.WorkMaster)) (*model.WorkMaster, error) {
	if _, err := ensureProject(ctx, s.projects, projectID); err != nil {
		return nil, err
	}
	wm, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	apply(wm)
	wm.UpdatedAt = time.Now()
	if err := s.repo.Save(ctx, wm); err != nil {
		return nil, err
	}
	slog.Info("work master saved", "project_id", projectID)
	return wm, nil
}
