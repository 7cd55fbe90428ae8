package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultTitleLength is how many characters of the text make up a post's title
// when no POST_TITLE_LENGTH is configured.
const DefaultTitleLength = 15

// Post is an authored text record, optionally grouped and illustrated.
// Deleting the author deletes the post; deleting the group only clears GroupID.
type Post struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time `gorm:"index;not null;<-:create" json:"pub_date"`
	AuthorID uint      `gorm:"index;not null;<-:create" json:"author_id"`
	Author   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	GroupID  *uint     `gorm:"index" json:"group_id"`
	Group    *Group    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group,omitempty"`
	Image    string    `gorm:"size:255" json:"image"`
}

// BeforeCreate stamps the publication date server side.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.PubDate.IsZero() {
		p.PubDate = time.Now()
	}
	return nil
}

// Title returns the first n characters of the text.
// Pages call it with the configured POST_TITLE_LENGTH.
func (p Post) Title(n int) string {
	if n <= 0 {
		n = DefaultTitleLength
	}
	runes := []rune(p.Text)
	if len(runes) <= n {
		return p.Text
	}
	return string(runes[:n])
}

// String is the title at DefaultTitleLength, for logs and debugging.
func (p Post) String() string {
	return p.Title(DefaultTitleLength)
}
