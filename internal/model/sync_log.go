package model

import "time"

// Outcome of a whole sync pass or catalog refresh.
const (
	SyncStatusSuccess = "success"
	SyncStatusPartial = "partial"
	SyncStatusError   = "error"
)

// SyncLog is one append-only audit record per sync operation. Records are
// never updated or deleted.
type SyncLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	// EntityType: "products" | "clients" | "categories" | "warehouses" |
	// "payment_methods" | "offline_sales"
	EntityType string `gorm:"type:varchar(30);not null" json:"entity_type"`
	// Operation: "refresh" for catalog mirrors, "sync" for the sale queue
	Operation    string    `gorm:"type:varchar(30);not null" json:"operation"`
	RecordCount  int       `gorm:"not null;default:0" json:"record_count"`
	Status       string    `gorm:"type:varchar(20);not null" json:"status"`
	ErrorMessage *string   `json:"error_message"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName keeps the historical singular table name.
func (SyncLog) TableName() string { return "sync_log" }
