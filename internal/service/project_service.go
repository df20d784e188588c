package service

import (
	"context"

	"github.com/halu23489/genba/internal/model"
)

// ProjectService はプロジェクト設定に関するビジネスロジックのインターフェース
type ProjectService interface {
	// Get はプロジェクトを返す。未作成ならデフォルト値で作成する
	Get(ctx context.Context, id string) (*model.Project, error)
	// UpdateSettings は設定を保存し、既存の日報で集計し直す
	UpdateSettings(ctx context.Context, id string, settings model.ProjectSettings) (*model.Project, error)
	// SetDesignLink は設計図面へのリンクを保存する
	SetDesignLink(ctx context.Context, id, link string) (*model.Project, error)
}
