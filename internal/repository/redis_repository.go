package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/halu23489/genba/internal/model"
	"github.com/redis/go-redis/v9"
)

const (
	projectKeyPrefix   = "genba:project:"    // genba:project:{id} -> Project JSON
	recordsKeyPrefix   = "genba:records:"    // genba:records:{id} -> list of DailyRecord JSON
	cycleTimeKeyPrefix = "genba:cycletimes:" // genba:cycletimes:{id} -> list of CycleTimeRecord JSON

	// DefaultRedisTTL はセッション相当の保持期間。書き込みのたびに延長する
	DefaultRedisTTL = 30 * 24 * time.Hour
)

// RedisProjectRepository は ProjectRepository の Redis 実装。
// プロジェクトは JSON 文字列、日報は JSON のリストで保持する。
type RedisProjectRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisProjectRepository は RedisProjectRepository を生成する。ttl <= 0 なら期限なし
func NewRedisProjectRepository(client redis.UniversalClient, ttl time.Duration) *RedisProjectRepository {
	return &RedisProjectRepository{client: client, ttl: ttl}
}

func (r *RedisProjectRepository) Get(ctx context.Context, id string) (*model.Project, error) {
	data, err := r.client.Get(ctx, projectKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project: %w", err)
	}
	p.Normalize()
	return &p, nil
}

func (r *RedisProjectRepository) Save(ctx context.Context, project *model.Project) error {
	data, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, projectKeyPrefix+project.ID, data, r.expiration())
		r.touch(ctx, pipe, recordsKeyPrefix+project.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// SaveRollup watches the record list so an append in between aborts the save.
func (r *RedisProjectRepository) SaveRollup(ctx context.Context, project *model.Project, recordCount int) error {
	data, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	recordsKey := recordsKeyPrefix + project.ID
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.LLen(ctx, recordsKey).Result()
		if err != nil {
			return err
		}
		if int(n) != recordCount {
			return ErrConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, projectKeyPrefix+project.ID, data, r.expiration())
			r.touch(ctx, pipe, recordsKey)
			return nil
		})
		return err
	}, recordsKey)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrConflict
	}
	if err != nil && !errors.Is(err, ErrConflict) {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return err
}

func (r *RedisProjectRepository) ListRecords(ctx context.Context, projectID string) ([]model.DailyRecord, error) {
	items, err := r.client.LRange(ctx, recordsKeyPrefix+projectID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	records := make([]model.DailyRecord, 0, len(items))
	for _, item := range items {
		var rec model.DailyRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// AppendRecord watches the record list so a concurrent append aborts this one.
func (r *RedisProjectRepository) AppendRecord(ctx context.Context, project *model.Project, rec *model.DailyRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	projectData, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	recData, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	recordsKey := recordsKeyPrefix + project.ID
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.LLen(ctx, recordsKey).Result()
		if err != nil {
			return err
		}
		if int(n)+1 != rec.Seq {
			return ErrConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.RPush(ctx, recordsKey, recData)
			pipe.Set(ctx, projectKeyPrefix+project.ID, projectData, r.expiration())
			r.touch(ctx, pipe, recordsKey)
			return nil
		})
		return err
	}, recordsKey)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrConflict
	}
	if err != nil && !errors.Is(err, ErrConflict) {
		return fmt.Errorf("failed to append record: %w", err)
	}
	return err
}

func (r *RedisProjectRepository) expiration() time.Duration {
	if r.ttl <= 0 {
		return redis.KeepTTL
	}
	return r.ttl
}

func (r *RedisProjectRepository) touch(ctx context.Context, pipe redis.Pipeliner, key string) {
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
}

// RedisCycleTimeRepository は CycleTimeRepository の Redis 実装
type RedisCycleTimeRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCycleTimeRepository は RedisCycleTimeRepository を生成する
func NewRedisCycleTimeRepository(client redis.UniversalClient, ttl time.Duration) *RedisCycleTimeRepository {
	return &RedisCycleTimeRepository{client: client, ttl: ttl}
}

func (r *RedisCycleTimeRepository) List(ctx context.Context, projectID string) ([]*model.CycleTimeRecord, error) {
	items, err := r.client.LRange(ctx, cycleTimeKeyPrefix+projectID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list cycle times: %w", err)
	}
	out := make([]*model.CycleTimeRecord, 0, len(items))
	for _, item := range items {
		var rec model.CycleTimeRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cycle time: %w", err)
		}
		out = append(out, &rec)
	}
	return out, nil
}

func (r *RedisCycleTimeRepository) Add(ctx context.Context, rec *model.CycleTimeRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal cycle time: %w", err)
	}
	key := cycleTimeKeyPrefix + rec.ProjectID
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, data)
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add cycle time: %w", err)
	}
	return nil
}

func (r *RedisCycleTimeRepository) Clear(ctx context.Context, projectID string) error {
	if err := r.client.Del(ctx, cycleTimeKeyPrefix+projectID).Err(); err != nil {
		return fmt.Errorf("failed to clear cycle times: %w", err)
	}
	return nil
}
