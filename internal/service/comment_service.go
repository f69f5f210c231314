package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/wayandway/moneylog-backend/internal/errors"
	"github.com/wayandway/moneylog-backend/internal/model"
	"github.com/wayandway/moneylog-backend/internal/repository"
)

// CommentService handles comment operations. Post and author references are
// existence-checked at creation; comment writes are author-only, with
// mismatches collapsed to not-found.
type CommentService interface {
	FindByPost(ctx context.Context, postID uint) ([]model.Comment, error)
	Create(ctx context.Context, postID, authorID uint, content string) (*model.Comment, error)
	Update(ctx context.Context, id uint, content string, requesterID uint) (*model.Comment, error)
	Delete(ctx context.Context, id uint, requesterID uint) error
}

type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	users    repository.UserRepository
}

// NewCommentService builds a CommentService.
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository, users repository.UserRepository) CommentService {
	return &commentService{comments: comments, posts: posts, users: users}
}

func (s *commentService) FindByPost(ctx context.Context, postID uint) ([]model.Comment, error) {
	exists, err := s.posts.ExistsByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("check post: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrPostNotFound
	}
	return s.comments.FindByPost(ctx, postID)
}

func (s *commentService) Create(ctx context.Context, postID, authorID uint, content string) (*model.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", apperrors.ErrValidation)
	}

	postExists, err := s.posts.ExistsByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("check post: %w", err)
	}
	if !postExists {
		return nil, apperrors.ErrPostNotFound
	}

	authorExists, err := s.users.ExistsByID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("check author: %w", err)
	}
	if !authorExists {
		return nil, apperrors.ErrUserNotFound
	}

	comment := &model.Comment{Content: content, PostID: postID, AuthorID: authorID}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, id uint, content string, requesterID uint) (*model.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", apperrors.ErrValidation)
	}

	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, err
	}
	if comment.AuthorID != requesterID {
		return nil, apperrors.ErrCommentNotFound
	}

	comment.Content = content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, id uint, requesterID uint) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCommentNotFound
		}
		return err
	}
	if comment.AuthorID != requesterID {
		return apperrors.ErrCommentNotFound
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
