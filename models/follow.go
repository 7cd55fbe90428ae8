package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrSelfFollow is returned when a user tries to subscribe to themselves.
var ErrSelfFollow = errors.New("users cannot follow themselves")

// Follow is a subscription edge from User (the follower) to Author.
// At most one edge exists per pair and the two ends always differ.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_follow_user_author;check:chk_follow_not_self,user_id <> author_id" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AuthorID  uint      `gorm:"not null;index;uniqueIndex:idx_follow_user_author" json:"author_id"`
	Author    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate rejects self-follow before the database CHECK does.
func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.UserID == f.AuthorID {
		return ErrSelfFollow
	}
	return nil
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{&User{}, &Group{}, &Post{}, &Comment{}, &Follow{}}
}
