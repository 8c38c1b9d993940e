package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/model"
)

// SyncLogRepository is insert-only: sync history is audit data and is never
// rewritten.
type SyncLogRepository interface {
	Append(ctx context.Context, record *model.SyncLog) error
	ListRecent(ctx context.Context, limit int) ([]model.SyncLog, error)
}

type syncLogRepo struct{ db *gorm.DB }

func NewSyncLogRepository(db *gorm.DB) SyncLogRepository { return &syncLogRepo{db: db} }

func (r *syncLogRepo) Append(ctx context.Context, record *model.SyncLog) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *syncLogRepo) ListRecent(ctx context.Context, limit int) ([]model.SyncLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []model.SyncLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
