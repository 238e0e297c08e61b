package models

import "time"

// Company is a metered branch. Reading and LastReading are cumulative meter
// values; the billing engine advances LastReading when a bill is liquidated.
type Company struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null;unique" json:"name"`
	Type         string    `gorm:"size:50" json:"type"`
	Address      string    `gorm:"size:255" json:"address"`
	LastReading  int64     `gorm:"not null" json:"last_reading"`
	Reading      int64     `gorm:"not null" json:"reading"`
	Limit        int64     `gorm:"not null" json:"limit"`
	ExtraPercent int64     `gorm:"not null;default:15" json:"extra_percent"`
	Extra        int64     `gorm:"not null;default:20" json:"extra"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Bills []Bill `json:"-"`
	Areas []Area `json:"-"`
}
