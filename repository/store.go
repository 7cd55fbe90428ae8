// Package repository is the typed query layer between handlers and gorm.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// Store groups the per-entity repositories sharing one database handle.
type Store struct {
	Users    *Users
	Groups   *Groups
	Posts    *Posts
	Comments *Comments
	Follows  *Follows
}

// New builds a Store on db.
func New(db *gorm.DB) *Store {
	return &Store{
		Users:    &Users{db: db},
		Groups:   &Groups{db: db},
		Posts:    &Posts{db: db},
		Comments: &Comments{db: db},
		Follows:  &Follows{db: db},
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
