package infra

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/model"
)

// NewDatabase opens the embedded SQLite store and brings the schema up to
// date. WAL keeps readers unblocked while the sync engine writes; the busy
// timeout covers the rare moment two short transactions collide.
func NewDatabase(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// A single connection sidesteps SQLITE_BUSY entirely: every store
	// operation is a short-lived transaction, nothing holds the handle
	// across network I/O.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Migrate creates or updates all tables, then applies the indexes GORM's
// AutoMigrate does not express on SQLite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Product{},
		&model.Client{},
		&model.Category{},
		&model.Warehouse{},
		&model.PaymentMethod{},
		&model.OfflineSale{},
		&model.SyncLog{},
		&model.Setting{},
	); err != nil {
		return err
	}

	// Idempotent index patches. The status+created_at index serves the
	// pending-queue scan; name/code indexes serve the typeahead search.
	patches := []string{
		`CREATE INDEX IF NOT EXISTS idx_offline_sales_status_created
		     ON offline_sales (status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_products_name ON products (name)`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
