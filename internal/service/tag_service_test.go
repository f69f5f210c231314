package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "github.com/wayandway/moneylog-backend/internal/errors"
	"github.com/wayandway/moneylog-backend/internal/model"
)

// MockTagRepository is a mock implementation of TagRepository.
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) Ensure(ctx context.Context, names []string) ([]model.Tag, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockTagRepository) Create(ctx context.Context, tag *model.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) FindByName(ctx context.Context, name string) (*model.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tag), args.Error(1)
}

func (m *MockTagRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockTagRepository) List(ctx context.Context) ([]model.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockTagRepository) DeleteByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func TestTagService_Ensure(t *testing.T) {
	tests := []struct {
		name          string
		names         []string
		setupMock     func(*MockTagRepository)
		expectedTags  int
		expectedError error
	}{
		{
			name:  "upserts valid names",
			names: []string{"golang", "재테크"},
			setupMock: func(m *MockTagRepository) {
				m.On("Ensure", mock.Anything, []string{"golang", "재테크"}).
					Return([]model.Tag{{ID: 1, Name: "golang"}, {ID: 2, Name: "재테크"}}, nil)
			},
			expectedTags: 2,
		},
		{
			name:      "no names, no repository call",
			names:     nil,
			setupMock: func(m *MockTagRepository) {},
		},
		{
			name:          "single-rune name fails validation",
			names:         []string{"a"},
			setupMock:     func(m *MockTagRepository) {},
			expectedError: apperrors.ErrValidation,
		},
		{
			name:          "overlong name fails validation",
			names:         []string{"this-tag-name-is-way-too-long-to-accept"},
			setupMock:     func(m *MockTagRepository) {},
			expectedError: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTagRepository)
			tt.setupMock(mockRepo)

			service := NewTagService(mockRepo)
			tags, err := service.Ensure(context.Background(), tt.names)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, tags)
			} else {
				assert.NoError(t, err)
				assert.Len(t, tags, tt.expectedTags)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTagService_Create(t *testing.T) {
	t.Run("creates a fresh tag", func(t *testing.T) {
		mockRepo := new(MockTagRepository)
		mockRepo.On("ExistsByName", mock.Anything, "golang").Return(false, nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Tag")).Return(nil)

		service := NewTagService(mockRepo)
		tag, err := service.Create(context.Background(), "golang")

		assert.NoError(t, err)
		if assert.NotNil(t, tag) {
			assert.Equal(t, "golang", tag.Name)
		}
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		mockRepo := new(MockTagRepository)
		mockRepo.On("ExistsByName", mock.Anything, "golang").Return(true, nil)

		service := NewTagService(mockRepo)
		tag, err := service.Create(context.Background(), "golang")

		assert.ErrorIs(t, err, ErrTagAlreadyExists)
		assert.Nil(t, tag)
		mockRepo.AssertExpectations(t)
	})

	t.Run("hangul names count runes, not bytes", func(t *testing.T) {
		mockRepo := new(MockTagRepository)
		mockRepo.On("ExistsByName", mock.Anything, "가계부").Return(false, nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Tag")).Return(nil)

		service := NewTagService(mockRepo)
		_, err := service.Create(context.Background(), "가계부")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestTagService_FindByName(t *testing.T) {
	t.Run("missing tag", func(t *testing.T) {
		mockRepo := new(MockTagRepository)
		mockRepo.On("FindByName", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

		service := NewTagService(mockRepo)
		tag, err := service.FindByName(context.Background(), "nope")

		assert.ErrorIs(t, err, apperrors.ErrTagNotFound)
		assert.Nil(t, tag)
	})
}

func TestTagService_Delete(t *testing.T) {
	t.Run("deletes existing tag", func(t *testing.T) {
		mockRepo := new(MockTagRepository)
		mockRepo.On("DeleteByName", mock.Anything, "golang").Return(true, nil)

		service := NewTagService(mockRepo)
		assert.NoError(t, service.Delete(context.Background(), "golang"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing tag", func(t *testing.T) {
		mockRepo := new(MockTagRepository)
		mockRepo.On("DeleteByName", mock.Anything, "nope").Return(false, nil)

		service := NewTagService(mockRepo)
		assert.ErrorIs(t, service.Delete(context.Background(), "nope"), apperrors.ErrTagNotFound)
	})
}
