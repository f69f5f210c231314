package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/wayandway/moneylog-backend/internal/errors"
	"github.com/wayandway/moneylog-backend/internal/model"
)

func TestUserService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Domain: "wayand"}, nil)

		service := NewUserService(mockRepo, nil)
		user, err := service.Get(context.Background(), 1)

		assert.NoError(t, err)
		if assert.NotNil(t, user) {
			assert.Equal(t, "wayand", user.Domain)
		}
	})

	t.Run("missing", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		service := NewUserService(mockRepo, nil)
		user, err := service.Get(context.Background(), 404)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		assert.Nil(t, user)
	})
}

func TestUserService_GetByDomain(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByDomain", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)

	service := NewUserService(mockRepo, nil)
	user, err := service.GetByDomain(context.Background(), "nobody")

	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Nil(t, user)
}

func TestUserService_Update(t *testing.T) {
	t.Run("updating another user's profile reports not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)

		service := NewUserService(mockRepo, nil)
		user, err := service.Update(context.Background(), 1, UpdateUserInput{Name: strPtr("x")}, 99)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		assert.Nil(t, user)
		mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("updates own name and password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Name: "Old"}, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		service := NewUserService(mockRepo, nil)
		user, err := service.Update(context.Background(), 1, UpdateUserInput{
			Name:     strPtr("New Name"),
			Password: strPtr("new-password"),
		}, 1)

		assert.NoError(t, err)
		if assert.NotNil(t, user) {
			assert.Equal(t, "New Name", user.Name)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new-password")))
		}
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("deleting another user's account reports not found", func(t *testing.T) {
		service := NewUserService(new(MockUserRepository), nil)
		assert.ErrorIs(t, service.Delete(context.Background(), 1, 99), apperrors.ErrUserNotFound)
	})

	t.Run("deletes own account", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1}, nil)
		mockRepo.On("Delete", mock.Anything, uint(1)).Return(nil)

		service := NewUserService(mockRepo, nil)
		assert.NoError(t, service.Delete(context.Background(), 1, 1))
		mockRepo.AssertExpectations(t)
	})
}
