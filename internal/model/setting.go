package model

import "time"

// Setting is a host-glue key/value row (server URL, window prefs, …).
// It sits outside the sync domain and is read/written only by the host UI.
type Setting struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
