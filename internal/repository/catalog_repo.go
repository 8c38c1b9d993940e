package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/model"
)

// searchLimit caps the typeahead query. Callers must not rely on anything
// beyond this bound.
const searchLimit = 50

// CatalogRepository is the read-mirror side of the local store. Every replace
// is a full-snapshot swap inside one transaction: readers either see the old
// catalog or the new one, never a mix.
type CatalogRepository interface {
	ReplaceProducts(ctx context.Context, snapshot []model.Product) (int64, error)
	ReplaceClients(ctx context.Context, snapshot []model.Client) (int64, error)
	ReplaceCategories(ctx context.Context, snapshot []model.Category) (int64, error)
	ReplaceWarehouses(ctx context.Context, snapshot []model.Warehouse) (int64, error)
	ReplacePaymentMethods(ctx context.Context, snapshot []model.PaymentMethod) (int64, error)

	ListProducts(ctx context.Context) ([]model.Product, error)
	ListClients(ctx context.Context) ([]model.Client, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListWarehouses(ctx context.Context) ([]model.Warehouse, error)
	ListPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error)

	// FindProductByCode returns (nil, nil) on a miss — absence is a normal
	// result at the till, not an error.
	FindProductByCode(ctx context.Context, code string) (*model.Product, error)
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)
	CountProducts(ctx context.Context) (int64, error)

	// UpdateStock is the one local-only catalog mutation, used for stock
	// adjustments between refreshes. The next snapshot replace wins.
	UpdateStock(ctx context.Context, productID int64, qty float64) error
}

type catalogRepo struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) CatalogRepository { return &catalogRepo{db: db} }

func (r *catalogRepo) ReplaceProducts(ctx context.Context, snapshot []model.Product) (int64, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Product{}).Error; err != nil {
			return err
		}
		if len(snapshot) == 0 {
			return nil
		}
		return tx.CreateInBatches(snapshot, 200).Error
	})
	if err != nil {
		return 0, err
	}
	return int64(len(snapshot)), nil
}

func (r *catalogRepo) ReplaceClients(ctx context.Context, snapshot []model.Client) (int64, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Client{}).Error; err != nil {
			return err
		}
		if len(snapshot) == 0 {
			return nil
		}
		return tx.CreateInBatches(snapshot, 200).Error
	})
	if err != nil {
		return 0, err
	}
	return int64(len(snapshot)), nil
}

func (r *catalogRepo) ReplaceCategories(ctx context.Context, snapshot []model.Category) (int64, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Category{}).Error; err != nil {
			return err
		}
		if len(snapshot) == 0 {
			return nil
		}
		return tx.CreateInBatches(snapshot, 200).Error
	})
	if err != nil {
		return 0, err
	}
	return int64(len(snapshot)), nil
}

func (r *catalogRepo) ReplaceWarehouses(ctx context.Context, snapshot []model.Warehouse) (int64, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Warehouse{}).Error; err != nil {
			return err
		}
		if len(snapshot) == 0 {
			return nil
		}
		return tx.CreateInBatches(snapshot, 200).Error
	})
	if err != nil {
		return 0, err
	}
	return int64(len(snapshot)), nil
}

func (r *catalogRepo) ReplacePaymentMethods(ctx context.Context, snapshot []model.PaymentMethod) (int64, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.PaymentMethod{}).Error; err != nil {
			return err
		}
		if len(snapshot) == 0 {
			return nil
		}
		return tx.CreateInBatches(snapshot, 200).Error
	})
	if err != nil {
		return 0, err
	}
	return int64(len(snapshot)), nil
}

func (r *catalogRepo) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *catalogRepo) ListClients(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	err := r.db.WithContext(ctx).Order("name ASC").Find(&clients).Error
	return clients, err
}

func (r *catalogRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *catalogRepo) ListWarehouses(ctx context.Context) ([]model.Warehouse, error) {
	var warehouses []model.Warehouse
	err := r.db.WithContext(ctx).Order("name ASC").Find(&warehouses).Error
	return warehouses, err
}

func (r *catalogRepo) ListPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	var methods []model.PaymentMethod
	err := r.db.WithContext(ctx).Order("name ASC").Find(&methods).Error
	return methods, err
}

func (r *catalogRepo) FindProductByCode(ctx context.Context, code string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *catalogRepo) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	var products []model.Product
	pattern := "%" + query + "%"
	// SQLite LIKE is case-insensitive for ASCII, matching the typeahead
	// behaviour the till expects.
	err := r.db.WithContext(ctx).
		Where("name LIKE ? OR code LIKE ?", pattern, pattern).
		Order("name ASC").
		Limit(searchLimit).
		Find(&products).Error
	return products, err
}

func (r *catalogRepo) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *catalogRepo) UpdateStock(ctx context.Context, productID int64, qty float64) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"stock_qty":  qty,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
