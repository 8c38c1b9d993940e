package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/model"
)

// SaleRepository owns the offline sale queue. Rows are permanent: terminal
// transitions rewrite status and reconciliation fields, nothing is ever
// deleted.
type SaleRepository interface {
	// Enqueue inserts exactly one pending row or none. A reused LocalRef
	// returns ErrDuplicateLocalRef and leaves the store untouched.
	Enqueue(ctx context.Context, sale *model.OfflineSale) error

	// ListPending returns pending entries oldest-first, the order the sync
	// engine replays them against the remote ledger.
	ListPending(ctx context.Context) ([]model.OfflineSale, error)

	FindByID(ctx context.Context, id int64) (*model.OfflineSale, error)
	FindByLocalRef(ctx context.Context, localRef string) (*model.OfflineSale, error)

	// MarkSynced sets the terminal synced state. Reapplying with the same
	// server id is a no-op; a different server id is ErrServerSaleIDMismatch.
	MarkSynced(ctx context.Context, id int64, serverSaleID int64) error

	// MarkFailed records a failed attempt. The entry stays failed until an
	// explicit Requeue — there is no automatic retry.
	MarkFailed(ctx context.Context, id int64, message string) error

	// Requeue flips a failed entry back to pending and clears its error.
	Requeue(ctx context.Context, id int64) error

	CountPending(ctx context.Context) (int64, error)

	// List pages through queue history for the host UI; status may be
	// "pending", "synced", "failed" or "all".
	List(ctx context.Context, status string, limit, offset int) ([]model.OfflineSale, int64, error)
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) Enqueue(ctx context.Context, sale *model.OfflineSale) error {
	sale.ID = 0
	sale.Status = model.SaleStatusPending
	sale.SyncedAt = nil
	sale.ServerSaleID = nil
	sale.ErrorMessage = nil
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now().UTC()
	}

	err := r.db.WithContext(ctx).Create(sale).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateLocalRef
	}
	return err
}

func (r *saleRepo) ListPending(ctx context.Context) ([]model.OfflineSale, error) {
	var sales []model.OfflineSale
	err := r.db.WithContext(ctx).
		Where("status = ?", model.SaleStatusPending).
		Order("created_at ASC, id ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(ctx context.Context, id int64) (*model.OfflineSale, error) {
	var s model.OfflineSale
	err := r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) FindByLocalRef(ctx context.Context, localRef string) (*model.OfflineSale, error) {
	var s model.OfflineSale
	err := r.db.WithContext(ctx).Where("local_ref = ?", localRef).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) MarkSynced(ctx context.Context, id int64, serverSaleID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s model.OfflineSale
		if err := tx.First(&s, id).Error; err != nil {
			return err
		}
		switch s.Status {
		case model.SaleStatusSynced:
			if s.ServerSaleID != nil && *s.ServerSaleID == serverSaleID {
				return nil // idempotent reapply
			}
			return ErrServerSaleIDMismatch
		case model.SaleStatusPending:
			now := time.Now().UTC()
			return tx.Model(&model.OfflineSale{}).Where("id = ?", id).
				Updates(map[string]interface{}{
					"status":         model.SaleStatusSynced,
					"server_sale_id": serverSaleID,
					"synced_at":      now,
					"error_message":  nil,
				}).Error
		default:
			return ErrInvalidTransition
		}
	})
}

func (r *saleRepo) MarkFailed(ctx context.Context, id int64, message string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s model.OfflineSale
		if err := tx.First(&s, id).Error; err != nil {
			return err
		}
		// failed → failed only refreshes the message; synced is terminal.
		if s.Status == model.SaleStatusSynced {
			return ErrInvalidTransition
		}
		return tx.Model(&model.OfflineSale{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":        model.SaleStatusFailed,
				"error_message": message,
			}).Error
	})
}

func (r *saleRepo) Requeue(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s model.OfflineSale
		if err := tx.First(&s, id).Error; err != nil {
			return err
		}
		switch s.Status {
		case model.SaleStatusFailed:
			return tx.Model(&model.OfflineSale{}).Where("id = ?", id).
				Updates(map[string]interface{}{
					"status":        model.SaleStatusPending,
					"error_message": nil,
				}).Error
		case model.SaleStatusPending:
			return nil // already where the caller wants it
		default:
			return ErrInvalidTransition
		}
	})
}

func (r *saleRepo) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OfflineSale{}).
		Where("status = ?", model.SaleStatusPending).
		Count(&count).Error
	return count, err
}

func (r *saleRepo) List(ctx context.Context, status string, limit, offset int) ([]model.OfflineSale, int64, error) {
	var sales []model.OfflineSale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.OfflineSale{})
	if status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&sales).Error
	return sales, total, err
}
