package model

import "time"

// Category classifies products. ParentID allows one level of nesting on the
// remote side; the terminal only reads the tree, it never edits it.
type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	ParentID  *int64    `json:"parent_id"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// Warehouse is the stock location a sale draws from.
type Warehouse struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// PaymentMethod is a tender type (cash, card, …) mirrored from the remote.
type PaymentMethod struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}
