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

// MockCommentRepository is a mock implementation of CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uint) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindByPost(ctx context.Context, postID uint) ([]model.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCommentService_Create(t *testing.T) {
	tests := []struct {
		name          string
		postID        uint
		authorID      uint
		content       string
		setupMock     func(*MockCommentRepository, *MockPostRepository, *MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful comment",
			postID:   7,
			authorID: 3,
			content:  "좋은 글이네요!",
			setupMock: func(mComment *MockCommentRepository, mPost *MockPostRepository, mUser *MockUserRepository) {
				mPost.On("ExistsByID", mock.Anything, uint(7)).Return(true, nil)
				mUser.On("ExistsByID", mock.Anything, uint(3)).Return(true, nil)
				mComment.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)
			},
		},
		{
			name:          "empty content",
			postID:        7,
			authorID:      3,
			content:       "",
			setupMock:     func(mComment *MockCommentRepository, mPost *MockPostRepository, mUser *MockUserRepository) {},
			expectedError: apperrors.ErrValidation,
		},
		{
			name:     "missing post",
			postID:   404,
			authorID: 3,
			content:  "hello",
			setupMock: func(mComment *MockCommentRepository, mPost *MockPostRepository, mUser *MockUserRepository) {
				mPost.On("ExistsByID", mock.Anything, uint(404)).Return(false, nil)
			},
			expectedError: apperrors.ErrPostNotFound,
		},
		{
			name:     "missing author",
			postID:   7,
			authorID: 404,
			content:  "hello",
			setupMock: func(mComment *MockCommentRepository, mPost *MockPostRepository, mUser *MockUserRepository) {
				mPost.On("ExistsByID", mock.Anything, uint(7)).Return(true, nil)
				mUser.On("ExistsByID", mock.Anything, uint(404)).Return(false, nil)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockComments := new(MockCommentRepository)
			mockPosts := new(MockPostRepository)
			mockUsers := new(MockUserRepository)
			tt.setupMock(mockComments, mockPosts, mockUsers)

			service := NewCommentService(mockComments, mockPosts, mockUsers)
			comment, err := service.Create(context.Background(), tt.postID, tt.authorID, tt.content)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, comment)
			} else {
				assert.NoError(t, err)
				if assert.NotNil(t, comment) {
					assert.Equal(t, tt.postID, comment.PostID)
					assert.Equal(t, tt.authorID, comment.AuthorID)
					assert.Equal(t, tt.content, comment.Content)
				}
			}

			mockComments.AssertExpectations(t)
			mockPosts.AssertExpectations(t)
			mockUsers.AssertExpectations(t)
		})
	}
}

func TestCommentService_FindByPost(t *testing.T) {
	t.Run("missing post", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockPosts.On("ExistsByID", mock.Anything, uint(404)).Return(false, nil)

		service := NewCommentService(new(MockCommentRepository), mockPosts, new(MockUserRepository))
		comments, err := service.FindByPost(context.Background(), 404)

		assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
		assert.Nil(t, comments)
	})

	t.Run("lists comments", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockPosts := new(MockPostRepository)
		mockPosts.On("ExistsByID", mock.Anything, uint(7)).Return(true, nil)
		mockComments.On("FindByPost", mock.Anything, uint(7)).Return([]model.Comment{{ID: 1, PostID: 7}}, nil)

		service := NewCommentService(mockComments, mockPosts, new(MockUserRepository))
		comments, err := service.FindByPost(context.Background(), 7)

		assert.NoError(t, err)
		assert.Len(t, comments, 1)
	})
}

func TestCommentService_Update(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		requesterID   uint
		setupMock     func(*MockCommentRepository)
		expectedError error
	}{
		{
			name:        "author updates own comment",
			content:     "edited",
			requesterID: 3,
			setupMock: func(m *MockCommentRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.Comment{ID: 1, AuthorID: 3, Content: "old"}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)
			},
		},
		{
			name:        "missing comment",
			content:     "edited",
			requesterID: 3,
			setupMock: func(m *MockCommentRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrCommentNotFound,
		},
		{
			name:        "non-author gets not found",
			content:     "edited",
			requesterID: 99,
			setupMock: func(m *MockCommentRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.Comment{ID: 1, AuthorID: 3}, nil)
			},
			expectedError: apperrors.ErrCommentNotFound,
		},
		{
			name:          "empty content",
			content:       "",
			requesterID:   3,
			setupMock:     func(m *MockCommentRepository) {},
			expectedError: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockComments := new(MockCommentRepository)
			tt.setupMock(mockComments)

			service := NewCommentService(mockComments, new(MockPostRepository), new(MockUserRepository))
			comment, err := service.Update(context.Background(), 1, tt.content, tt.requesterID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, comment)
			} else {
				assert.NoError(t, err)
				if assert.NotNil(t, comment) {
					assert.Equal(t, tt.content, comment.Content)
				}
			}
			mockComments.AssertExpectations(t)
		})
	}
}

func TestCommentService_Delete(t *testing.T) {
	t.Run("author deletes own comment", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockComments.On("FindByID", mock.Anything, uint(1)).Return(&model.Comment{ID: 1, AuthorID: 3}, nil)
		mockComments.On("Delete", mock.Anything, uint(1)).Return(nil)

		service := NewCommentService(mockComments, new(MockPostRepository), new(MockUserRepository))
		assert.NoError(t, service.Delete(context.Background(), 1, 3))
		mockComments.AssertExpectations(t)
	})

	t.Run("non-author gets not found", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockComments.On("FindByID", mock.Anything, uint(1)).Return(&model.Comment{ID: 1, AuthorID: 3}, nil)

		service := NewCommentService(mockComments, new(MockPostRepository), new(MockUserRepository))
		assert.ErrorIs(t, service.Delete(context.Background(), 1, 99), apperrors.ErrCommentNotFound)
	})
}
