package models

import "time"

// Bill is the record of one liquidation. Rows are append-only: they are
// created by the billing engine and never updated or deleted afterwards.
// A company can have at most one bill per day; consumption queries anchor
// on exact (company, date) pairs.
type Bill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CompanyID uint      `gorm:"not null;uniqueIndex:idx_bills_company_date" json:"company_id"`
	Company   *Company  `json:"-"`
	Date      time.Time `gorm:"index;not null;uniqueIndex:idx_bills_company_date" json:"date"` // normalized to UTC midnight
	Reading   int64     `gorm:"not null" json:"reading"`
	Charge    int64     `gorm:"not null" json:"charge"`
	OverLimit int64     `gorm:"not null" json:"over_limit"`
	CreatedAt time.Time `json:"created_at"`
}
