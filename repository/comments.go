package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cppla/yatube/models"
)

type Comments struct {
	db *gorm.DB
}

// ForPost lists a post's comments, oldest first, with authors loaded.
func (r *Comments) ForPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created").
		Order("id").
		Find(&comments).Error
	return comments, err
}

func (r *Comments) Create(ctx context.Context, c *models.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *Comments) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Count(&total).Error
	return total, err
}
