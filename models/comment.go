package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a short text attached to a post. It is removed together with its post or author.
type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	PostID   *uint     `gorm:"index" json:"post_id"`
	Post     *Post     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AuthorID uint      `gorm:"index;not null" json:"author_id"`
	Author   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	Created  time.Time `gorm:"index;not null;<-:create" json:"created"`
}

// BeforeCreate stamps the creation time.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.Created.IsZero() {
		c.Created = time.Now()
	}
	return nil
}
