package model

import "time"

// Client is a cached customer row mirrored from the remote catalog.
type Client struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name      string    `gorm:"index;not null" json:"name"`
	Phone     *string   `json:"phone"`
	Email     *string   `json:"email"`
	Address   *string   `json:"address"`
	TaxNumber *string   `json:"tax_number"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}
