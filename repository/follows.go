package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cppla/yatube/models"
)

type Follows struct {
	db *gorm.DB
}

// Exists reports whether user follows author.
func (r *Follows) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&n).Error
	return n > 0, err
}

// Follow creates the edge unless it already exists.
// Self-follow is rejected with models.ErrSelfFollow.
func (r *Follows) Follow(ctx context.Context, userID, authorID uint) error {
	edge := models.Follow{UserID: userID, AuthorID: authorID}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge).Error
}

// Unfollow removes the edge if present; a missing edge is not an error.
func (r *Follows) Unfollow(ctx context.Context, userID, authorID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error
}

func (r *Follows) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Count(&total).Error
	return total, err
}
