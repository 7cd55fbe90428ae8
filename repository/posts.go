package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/utils"
)

// PostFilter narrows a post listing. Zero fields do not filter.
type PostFilter struct {
	AuthorID   uint
	GroupID    uint
	FollowedBy uint // posts by authors this user follows
}

type Posts struct {
	db *gorm.DB
}

func (r *Posts) query(ctx context.Context, f PostFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Post{})
	if f.AuthorID != 0 {
		q = q.Where("posts.author_id = ?", f.AuthorID)
	}
	if f.GroupID != 0 {
		q = q.Where("posts.group_id = ?", f.GroupID)
	}
	if f.FollowedBy != 0 {
		sub := r.db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", f.FollowedBy)
		q = q.Where("posts.author_id IN (?)", sub)
	}
	return q
}

// Count returns how many posts match the filter.
func (r *Posts) Count(ctx context.Context, f PostFilter) (int64, error) {
	var total int64
	err := r.query(ctx, f).Count(&total).Error
	return total, err
}

// Page returns one page of matching posts, newest first, with author and group loaded.
func (r *Posts) Page(ctx context.Context, f PostFilter, rawPage string, perPage int) (utils.Page[models.Post], error) {
	total, err := r.Count(ctx, f)
	if err != nil {
		return utils.Page[models.Post]{}, err
	}
	page := utils.NewPage[models.Post](rawPage, total, perPage)

	var posts []models.Post
	err = r.query(ctx, f).
		Preload("Author").
		Preload("Group").
		Order("posts.pub_date DESC").
		Order("posts.id DESC").
		Offset(page.Offset()).
		Limit(page.PerPage).
		Find(&posts).Error
	if err != nil {
		return utils.Page[models.Post]{}, err
	}
	page.Items = posts
	return page, nil
}

// Get loads a post with its author and group.
func (r *Posts) Get(ctx context.Context, id uint) (*models.Post, error) {
	var p models.Post
	if err := r.db.WithContext(ctx).Preload("Author").Preload("Group").First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// Create inserts a post. Author and Group must already exist.
func (r *Posts) Create(ctx context.Context, p *models.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

// Update overwrites the mutable fields: text, group and image.
func (r *Posts) Update(ctx context.Context, p *models.Post) error {
	return r.db.WithContext(ctx).Model(&models.Post{ID: p.ID}).
		Select("text", "group_id", "image").
		Updates(map[string]interface{}{
			"text":     p.Text,
			"group_id": p.GroupID,
			"image":    p.Image,
		}).Error
}

// Delete removes a post together with its comments.
func (r *Posts) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
