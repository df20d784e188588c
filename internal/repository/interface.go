package repository

import (
	"context"

	"github.com/halu23489/genba/internal/model"
)

// DB は ストアの生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// CycleTimeRepository はストップウォッチ計測記録の永続化インターフェース
type CycleTimeRepository interface {
	// List は記録順（古い順）で返す
	List(ctx context.Context, projectID string) ([]*model.CycleTimeRecord, error)
	Add(ctx context.Context, rec *model.CycleTimeRecord) error
	Clear(ctx context.Context, projectID string) error
}

// WorkMasterRepository は歩掛マスターの永続化インターフェース
type WorkMasterRepository interface {
	// Get は存在しなければ ErrNotFound
	Get(ctx context.Context, projectID string) (*model.WorkMaster, error)
	Save(ctx context.Context, wm *model.WorkMaster) error
}
