package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/halu23489/genba/internal/model"
	"github.com/halu23489/genba/internal/progress"
	"github.com/halu23489/genba/internal/repository"
)

// ProjectServiceImpl は ProjectService の実装
type ProjectServiceImpl struct {
	repo repository.ProjectRepository
}

// NewProjectService は ProjectServiceImpl を生成する
func NewProjectService(repo repository.ProjectRepository) ProjectService {
	return &ProjectServiceImpl{repo: repo}
}

// Get はプロジェクトを取得する。存在しなければデフォルト値で作成して保存する
func (s *ProjectServiceImpl) Get(ctx context.Context, id string) (*model.Project, error) {
	return ensureProject(ctx, s.repo, id)
}

// UpdateSettings は設定を反映し、既存日報で再集計して保存する
func (s *ProjectServiceImpl) UpdateSettings(ctx context.Context, id string, settings model.ProjectSettings) (*model.Project, error) {
	if strings.TrimSpace(settings.SiteName) == "" {
		return nil, fmt.Errorf("%w: site_name is required", ErrInvalidInput)
	}
	if settings.PlannedQuantity < 0 {
		return nil, fmt.Errorf("%w: planned_quantity must be >= 0", ErrInvalidInput)
	}
	if settings.ProgressMode != "" && !settings.ProgressMode.Valid() {
		return nil, fmt.Errorf("%w: progress_mode must be 'incremental' or 'cumulative'", ErrInvalidInput)
	}

	p, err := ensureProject(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.ListRecords(ctx, id)
	if err != nil {
		return nil, err
	}

	settings.Apply(p)
	rolled := progress.Rollup(*p, records)
	rolled.UpdatedAt = time.Now()
	if err := s.repo.SaveRollup(ctx, &rolled, len(records)); err != nil {
		return nil, err
	}
	return &rolled, nil
}

// SetDesignLink は図面リンクを保存する
func (s *ProjectServiceImpl) SetDesignLink(ctx context.Context, id, link string) (*model.Project, error) {
	p, err := ensureProject(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	p.DesignLink = link
	p.UpdatedAt = time.Now()
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func ensureProject(ctx context.Context, repo repository.ProjectRepository, id string) (*model.Project, error) {
	p, err := repo.Get(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	p = model.NewProject(id)
	if err := repo.Save(ctx, p); err != nil {
		return nil, err
	}
	slog.Info("project created", "project_id", id)
	return p, nil
}
