package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an author account. Passwords are stored as bcrypt hashes only.
// Rows are hard-deleted so that posts, comments and follow edges cascade.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate hook ensures the timestamp is set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	return nil
}

func (u User) String() string {
	return u.Username
}
