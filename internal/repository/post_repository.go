package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"inkwell/internal/model"
)

// PostRepository defines post persistence operations. The Owned variants run
// a single conditional statement filtered by id AND author, relying on the
// store's per-statement atomicity for the ownership check; they report the
// number of rows affected so callers can distinguish a miss from a hit.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	ListPublished(ctx context.Context, offset, limit int) ([]model.Post, error)
	CountPublished(ctx context.Context) (int64, error)
	UpdateOwned(ctx context.Context, id, authorID uuid.UUID, title, content string, published bool) (int64, error)
	PublishOwned(ctx context.Context, id, authorID uuid.UUID) (int64, error)
	DeleteOwned(ctx context.Context, id, authorID uuid.UUID) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListPublished(ctx context.Context, offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("published = ?", true).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) CountPublished(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("published = ?", true).
		Count(&count).Error
	return count, err
}

func (r *postRepository) UpdateOwned(ctx context.Context, id, authorID uuid.UUID, title, content string, published bool) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ? AND author_id = ?", id, authorID).
		Updates(map[string]interface{}{
			"title":     title,
			"content":   content,
			"published": published,
		})
	return res.RowsAffected, res.Error
}

func (r *postRepository) PublishOwned(ctx context.Context, id, authorID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ? AND author_id = ?", id, authorID).
		Update("published", true)
	return res.RowsAffected, res.Error
}

func (r *postRepository) DeleteOwned(ctx context.Context, id, authorID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		Delete(&model.Post{})
	return res.RowsAffected, res.Error
}
