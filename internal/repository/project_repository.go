package repository

import (
	"context"

	"github.com/halu23489/genba/internal/model"
)

// ProjectRepository はプロジェクトと日報の永続化インターフェース
type ProjectRepository interface {
	// Get は ID でプロジェクトを取得する。存在しなければ ErrNotFound
	Get(ctx context.Context, id string) (*model.Project, error)
	// Save はプロジェクトを作成または上書きする
	Save(ctx context.Context, project *model.Project) error
	// SaveRollup は保存済み日報が recordCount 件のときだけプロジェクトを上書きする。
	// 件数が異なれば ErrConflict を返し、何も書き込まない
	SaveRollup(ctx context.Context, project *model.Project, recordCount int) error
	// ListRecords は日報を Seq 昇順で返す
	ListRecords(ctx context.Context, projectID string) ([]model.DailyRecord, error)
	// AppendRecord は日報の追加と集計済みプロジェクトの保存を一括で行う。
	// rec.Seq が既存件数+1 でなければ ErrConflict を返し、何も書き込まない
	AppendRecord(ctx context.Context, project *model.Project, rec *model.DailyRecord) error
}
