package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale status lifecycle. "pending" is the only non-terminal state; a failed
// entry returns to pending only through an explicit requeue, never on its own.
const (
	SaleStatusPending = "pending"
	SaleStatusSynced  = "synced"
	SaleStatusFailed  = "failed"
)

// OfflineSale is a completed local sale waiting for reconciliation against
// the remote ledger. Rows are permanent audit history — they are mutated only
// by the sync engine (status, timestamps, server id, error) and never deleted.
type OfflineSale struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	// LocalRef is the caller-generated idempotency key. The unique index is
	// what guarantees a resubmitted sale cannot produce a second row.
	LocalRef        string          `gorm:"uniqueIndex;not null" json:"local_ref"`
	ClientID        *int64          `json:"client_id"`
	WarehouseID     int64           `gorm:"not null" json:"warehouse_id"`
	GrandTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"grand_total"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"paid_amount"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"tax_amount"`
	Discount        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	PaymentMethodID int64           `gorm:"not null" json:"payment_method_id"`
	// DetailsJSON / PaymentsJSON carry the structured line-item and tender
	// payloads opaquely; the terminal core forwards them to the remote as-is.
	DetailsJSON  string     `gorm:"not null" json:"details_json"`
	PaymentsJSON string     `gorm:"not null" json:"payments_json"`
	Status       string     `gorm:"type:varchar(20);index;not null;default:'pending'" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	SyncedAt     *time.Time `json:"synced_at"`
	// ServerSaleID is present if and only if Status == synced.
	ServerSaleID *int64  `json:"server_sale_id"`
	ErrorMessage *string `json:"error_message"`
}
