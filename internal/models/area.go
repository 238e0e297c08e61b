package models

import "time"

// Area is a named zone inside a company (a floor, a kitchen, a machine room)
// with a responsible person. Descriptive only.
type Area struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CompanyID uint      `gorm:"index;not null" json:"company_id"`
	Company   *Company  `json:"-"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Manager   string    `gorm:"size:100" json:"manager"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
