package models

import "time"

// Token is the opaque session credential of a user: issued exactly once, at
// user creation, never rotated and never expired.
type Token struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Value     string    `gorm:"size:64;uniqueIndex;not null" json:"value"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User      *User     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
