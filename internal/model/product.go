package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a cached row of the remote catalog. The local copy is a
// disposable read mirror: rows are only born through a full snapshot
// replace, never created one by one from the terminal, with the single
// exception of UpdateStock point adjustments between refreshes.
type Product struct {
	// ID is assigned by the remote authority and carried over verbatim.
	ID         int64            `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Code       string           `gorm:"uniqueIndex;not null" json:"code"`
	Name       string           `gorm:"index;not null" json:"name"`
	Price      decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"price"`
	Cost       *decimal.Decimal `gorm:"type:decimal(12,2)" json:"cost"`
	CategoryID *int64           `json:"category_id"`
	BrandID    *int64           `json:"brand_id"`
	UnitID     *int64           `json:"unit_id"`
	SaleUnitID *int64           `json:"sale_unit_id"`
	// TaxMethod: "inclusive" | "exclusive"
	TaxMethod      *string         `gorm:"type:varchar(20)" json:"tax_method"`
	TaxPercent     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"tax_percent"`
	Discount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	DiscountMethod *string         `gorm:"type:varchar(20)" json:"discount_method"`
	Image          *string         `json:"image"`
	IsService      bool            `gorm:"not null;default:false" json:"is_service"`
	// StockQty is fractional: weighed goods sell in non-integer units.
	StockQty float64  `gorm:"not null;default:0" json:"stock_qty"`
	MinStock *float64 `json:"min_stock"`
	// UpdatedAt mirrors the remote timestamp; GORM must not overwrite it.
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}
