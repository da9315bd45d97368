package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
)

func TestProfileService_GetOwnProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("includes drafts", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByIDWithPosts", mock.Anything, userID, false).Return(&model.User{
			ID:    userID,
			Name:  "A",
			Email: "a@x.com",
			Posts: []model.Post{
				{Title: "published", Published: true},
				{Title: "draft", Published: false},
			},
		}, nil)

		service := NewProfileService(mockRepo, nil)
		user, err := service.GetOwnProfile(context.Background(), userID)

		assert.NoError(t, err)
		assert.Len(t, user.Posts, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("user vanished", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByIDWithPosts", mock.Anything, userID, false).Return(nil, gorm.ErrRecordNotFound)

		service := NewProfileService(mockRepo, nil)
		_, err := service.GetOwnProfile(context.Background(), userID)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestProfileService_GetPublicProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("requests published only", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByIDWithPosts", mock.Anything, userID, true).Return(&model.User{
			ID:   userID,
			Name: "A",
			Posts: []model.Post{
				{Title: "published", Published: true},
			},
		}, nil)

		service := NewProfileService(mockRepo, nil)
		user, err := service.GetPublicProfile(context.Background(), userID)

		assert.NoError(t, err)
		assert.Len(t, user.Posts, 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByIDWithPosts", mock.Anything, userID, true).Return(nil, gorm.ErrRecordNotFound)

		service := NewProfileService(mockRepo, nil)
		_, err := service.GetPublicProfile(context.Background(), userID)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		mockRepo.AssertExpectations(t)
	})
}
