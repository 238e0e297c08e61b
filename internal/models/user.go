package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	GroupID      *uint     `json:"group_id"`
	Group        *Group    `json:"-"`
	Token        *Token    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsInGroup reports whether the user belongs to the named group. The Group
// relation must have been preloaded.
func (u *User) IsInGroup(name string) bool {
	return u.Group != nil && u.Group.Name == name
}
