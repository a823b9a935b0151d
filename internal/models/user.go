package models

import "gorm.io/gorm"

// User represents a player or a venue admin.
type User struct {
	gorm.Model
	Name         string `gorm:"size:255;not null"`
	Username     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Location     string `gorm:"size:255"`
	Language     string `gorm:"size:5;not null;default:'ro'"`
	Role         string `gorm:"size:50;not null;default:'user';index"`
}

// IsAdmin reports whether the user may manage venues.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
