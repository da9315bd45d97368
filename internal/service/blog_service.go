package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"inkwell/internal/cache"
	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50

	postCacheTTL = 5 * time.Minute
)

// Pagination describes one page of the published listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPosts int64 `json:"totalPosts"`
	TotalPages int64 `json:"totalPages"`
}

// BlogService handles post operations. All mutations are ownership-checked:
// the repository filters by id AND author in one statement, and zero affected
// rows surfaces as ErrPostNotFound whether the post is missing or foreign.
type BlogService interface {
	CreatePost(ctx context.Context, authorID uuid.UUID, title, content string, published bool) (*model.Post, error)
	GetPost(ctx context.Context, id uuid.UUID) (*model.Post, error)
	ListPublished(ctx context.Context, page, limit int) ([]model.Post, Pagination, error)
	UpdatePost(ctx context.Context, id, authorID uuid.UUID, title, content string, published bool) (*model.Post, error)
	PublishPost(ctx context.Context, id, authorID uuid.UUID) error
	DeletePost(ctx context.Context, id, authorID uuid.UUID) error
}

type blogService struct {
	posts repository.PostRepository
	cache *cache.Client
}

// NewBlogService creates a new blog service.
func NewBlogService(posts repository.PostRepository, cache *cache.Client) BlogService {
	return &blogService{
		posts: posts,
		cache: cache,
	}
}

func postCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("post:%s", id.String())
}

func profileCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("profile:%s", id.String())
}

// CreatePost inserts a post owned by authorID.
func (s *blogService) CreatePost(ctx context.Context, authorID uuid.UUID, title, content string, published bool) (*model.Post, error) {
	post := &model.Post{
		Title:     title,
		Content:   content,
		Published: published,
		AuthorID:  authorID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	_ = s.cache.Delete(ctx, profileCacheKey(authorID))
	return post, nil
}

// GetPost fetches a post by id with caching. No visibility check is applied:
// any caller holding a valid id reads the post regardless of its published
// state, matching the listing endpoints' stricter rules on purpose.
func (s *blogService) GetPost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	if data, _ := s.cache.Get(ctx, postCacheKey(id)); data != nil {
		var cached model.Post
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	if payload, err := json.Marshal(post); err == nil {
		_ = s.cache.Set(ctx, postCacheKey(id), payload, postCacheTTL)
	}
	return post, nil
}

// ListPublished returns one page of published posts newest-first. Page is
// clamped to >= 1 and limit to 1..50, defaulting to 10.
func (s *blogService) ListPublished(ctx context.Context, page, limit int) ([]model.Post, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	offset := (page - 1) * limit
	posts, err := s.posts.ListPublished(ctx, offset, limit)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("list posts: %w", err)
	}

	total, err := s.posts.CountPublished(ctx)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("count posts: %w", err)
	}

	pagination := Pagination{
		Page:       page,
		Limit:      limit,
		TotalPosts: total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}
	return posts, pagination, nil
}

// UpdatePost replaces title, content and published in a single conditional
// write filtered by id and author, then re-reads the row for the response.
func (s *blogService) UpdatePost(ctx context.Context, id, authorID uuid.UUID, title, content string, published bool) (*model.Post, error) {
	rows, err := s.posts.UpdateOwned(ctx, id, authorID, title, content, published)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if rows == 0 {
		return nil, apperrors.ErrPostNotFound
	}

	s.invalidate(ctx, id, authorID)

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload post: %w", err)
	}
	return post, nil
}

// PublishPost flips the published flag for a post owned by authorID.
func (s *blogService) PublishPost(ctx context.Context, id, authorID uuid.UUID) error {
	rows, err := s.posts.PublishOwned(ctx, id, authorID)
	if err != nil {
		return fmt.Errorf("publish post: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrPostNotFound
	}
	s.invalidate(ctx, id, authorID)
	return nil
}

// DeletePost removes a post owned by authorID.
func (s *blogService) DeletePost(ctx context.Context, id, authorID uuid.UUID) error {
	rows, err := s.posts.DeleteOwned(ctx, id, authorID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrPostNotFound
	}
	s.invalidate(ctx, id, authorID)
	return nil
}

func (s *blogService) invalidate(ctx context.Context, id, authorID uuid.UUID) {
	_ = s.cache.Delete(ctx, postCacheKey(id))
	_ = s.cache.Delete(ctx, profileCacheKey(authorID))
}
