package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cppla/yatube/models"
)

type Groups struct {
	db *gorm.DB
}

func (r *Groups) ByID(ctx context.Context, id uint) (*models.Group, error) {
	var g models.Group
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (r *Groups) BySlug(ctx context.Context, slug string) (*models.Group, error) {
	var g models.Group
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&g).Error; err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

// List returns all groups ordered by title, for the post form select.
func (r *Groups) List(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	err := r.db.WithContext(ctx).Order("title").Find(&groups).Error
	return groups, err
}

func (r *Groups) Create(ctx context.Context, g *models.Group) error {
	return r.db.WithContext(ctx).Create(g).Error
}

// DeleteBySlug removes the group; its posts survive with the group cleared.
func (r *Groups) DeleteBySlug(ctx context.Context, slug string) error {
	res := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.Group{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
