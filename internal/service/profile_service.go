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

const profileCacheTTL = 1 * time.Minute

// ProfileService handles author profile views.
type ProfileService interface {
	// GetOwnProfile returns the user with all of their posts, drafts included.
	GetOwnProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	// GetPublicProfile returns the user with published posts only.
	GetPublicProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

type profileService struct {
	users repository.UserRepository
	cache *cache.Client
}

// NewProfileService creates a new profile service.
func NewProfileService(users repository.UserRepository, cache *cache.Client) ProfileService {
	return &profileService{
		users: users,
		cache: cache,
	}
}

func (s *profileService) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByIDWithPosts(ctx, userID, false)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return user, nil
}

func (s *profileService) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	key := profileCacheKey(userID)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.users.FindByIDWithPosts(ctx, userID, true)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, key, payload, profileCacheTTL)
	}
	return user, nil
}
