package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/wayandway/moneylog-backend/internal/errors"
	"github.com/wayandway/moneylog-backend/internal/model"
	"github.com/wayandway/moneylog-backend/internal/repository"
)

// slugRetryAttempts bounds how often a post write is retried after losing
// the slug check-then-act race to a concurrent writer. The unique index is
// the backstop; a fresh allocation after each rejection resolves the
// conflict in practice on the first retry.
const slugRetryAttempts = 3

// CreatePostInput carries the caller-supplied fields for a new post. The
// author is never taken from here; it is fixed to the authenticated actor.
type CreatePostInput struct {
	Title     string
	Content   string
	Tags      []string
	IsPrivate bool
}

// UpdatePostInput carries a partial post update. Nil fields are left
// unchanged; a non-nil Tags replaces the full tag list.
type UpdatePostInput struct {
	Title     *string
	Content   *string
	Tags      []string
	IsPrivate *bool
}

// PostService is the facade every post read and write funnels through. It
// combines slug allocation, the visibility policy, and tag upserts on top of
// the raw repositories.
type PostService interface {
	Create(ctx context.Context, input CreatePostInput, authorID uint) (*model.Post, error)
	Update(ctx context.Context, id uint, input UpdatePostInput, requesterID uint) (*model.Post, error)
	Delete(ctx context.Context, id uint, requesterID uint) error
	FindOne(ctx context.Context, slugOrID string, viewerID *uint) (*model.Post, error)
	FindAll(ctx context.Context, viewerID *uint) ([]model.Post, error)
	FindByAuthor(ctx context.Context, domain string, viewerID *uint) (*model.User, []model.Post, error)
	FindByTags(ctx context.Context, tags []string, viewerID *uint) ([]model.Post, error)
}

type postService struct {
	posts repository.PostRepository
	users repository.UserRepository
	tags  TagService
	log   *zap.Logger
}

// NewPostService builds the post facade.
func NewPostService(posts repository.PostRepository, users repository.UserRepository, tags TagService, log *zap.Logger) PostService {
	return &postService{posts: posts, users: users, tags: tags, log: log}
}

// allocateSlug resolves a title to a slug no other post holds. excludeID
// removes the post being updated from the collision check so an unchanged
// title cannot collide with its own record; pass 0 on creation.
func (s *postService) allocateSlug(ctx context.Context, title string, excludeID uint) (string, error) {
	base := slugify(title)
	candidate := base
	for n := 1; ; n++ {
		taken, err := s.posts.SlugTaken(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

// Create validates the author, upserts tags, allocates a unique slug and
// persists the post. The author is always authorID, regardless of anything
// in input.
func (s *postService) Create(ctx context.Context, input CreatePostInput, authorID uint) (*model.Post, error) {
	exists, err := s.users.ExistsByID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("check author: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrUserNotFound
	}

	tags, err := s.tags.Ensure(ctx, input.Tags)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:     input.Title,
		Content:   input.Content,
		AuthorID:  authorID,
		IsPrivate: input.IsPrivate,
		Tags:      tags,
	}

	for attempt := 0; attempt < slugRetryAttempts; attempt++ {
		slug, err := s.allocateSlug(ctx, input.Title, 0)
		if err != nil {
			return nil, err
		}
		post.Slug = &slug

		err = s.posts.Create(ctx, post)
		if err == nil {
			return post, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("create post: %w", err)
		}
		// Lost the check-then-act race: another writer took the slug
		// between our existence check and the insert.
		s.log.Warn("slug conflict on create, reallocating", zap.String("slug", slug))
	}
	return nil, fmt.Errorf("create post: %w", gorm.ErrDuplicatedKey)
}

// Update applies a partial update. A requester who is not the author gets
// the same not-found failure as for a missing post. A changed title
// reallocates the slug, excluding the post's own record from collision
// checks.
func (s *postService) Update(ctx context.Context, id uint, input UpdatePostInput, requesterID uint) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("load post: %w", err)
	}
	if post.AuthorID != requesterID {
		return nil, apperrors.ErrPostNotFound
	}

	titleChanged := input.Title != nil && *input.Title != post.Title
	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.IsPrivate != nil {
		post.IsPrivate = *input.IsPrivate
	}

	if titleChanged {
		slug, err := s.allocateSlug(ctx, post.Title, post.ID)
		if err != nil {
			return nil, err
		}
		post.Slug = &slug
	}

	if input.Tags != nil {
		tags, err := s.tags.Ensure(ctx, input.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.posts.ReplaceTags(ctx, post, tags); err != nil {
			return nil, fmt.Errorf("replace tags: %w", err)
		}
		post.Tags = tags
	}

	for attempt := 0; attempt < slugRetryAttempts; attempt++ {
		err = s.posts.Update(ctx, post)
		if err == nil {
			return post, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("update post: %w", err)
		}
		s.log.Warn("slug conflict on update, reallocating", zap.Stringp("slug", post.Slug))
		slug, allocErr := s.allocateSlug(ctx, post.Title, post.ID)
		if allocErr != nil {
			return nil, allocErr
		}
		post.Slug = &slug
	}
	return nil, fmt.Errorf("update post: %w", gorm.ErrDuplicatedKey)
}

// Delete removes a post. Ownership mismatches collapse to not-found.
func (s *postService) Delete(ctx context.Context, id uint, requesterID uint) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPostNotFound
		}
		return fmt.Errorf("load post: %w", err)
	}
	if post.AuthorID != requesterID {
		return apperrors.ErrPostNotFound
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// FindOne fetches a single post by slug, falling back to a primary-key
// lookup for numeric keys. A post invisible to the viewer is reported as
// not found, indistinguishable from a missing one.
func (s *postService) FindOne(ctx context.Context, slugOrID string, viewerID *uint) (*model.Post, error) {
	post, err := s.posts.FindBySlug(ctx, slugOrID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if id, perr := strconv.ParseUint(slugOrID, 10, 32); perr == nil {
			post, err = s.posts.FindByID(ctx, uint(id))
		}
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("load post: %w", err)
	}

	if !post.VisibleTo(viewerID) {
		return nil, apperrors.ErrPostNotFound
	}
	return post, nil
}

// FindAll lists every post visible to the viewer.
func (s *postService) FindAll(ctx context.Context, viewerID *uint) ([]model.Post, error) {
	return s.posts.List(ctx, repository.PostQuery{
		Visibility: repository.VisibleTo(viewerID),
	})
}

// FindByAuthor resolves the blog domain key to a user, then lists that
// user's posts visible to the viewer. An unknown domain fails before any
// post lookup; a user with no visible posts yields an empty list.
func (s *postService) FindByAuthor(ctx context.Context, domain string, viewerID *uint) (*model.User, []model.Post, error) {
	user, err := s.users.FindByDomain(ctx, domain)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("resolve author: %w", err)
	}

	posts, err := s.posts.List(ctx, repository.PostQuery{
		AuthorID:   &user.ID,
		Visibility: repository.VisibleTo(viewerID),
	})
	if err != nil {
		return nil, nil, err
	}
	return user, posts, nil
}

// FindByTags lists posts carrying any of the given tags, visible to the
// viewer.
func (s *postService) FindByTags(ctx context.Context, tags []string, viewerID *uint) ([]model.Post, error) {
	if len(tags) == 0 {
		return nil, fmt.Errorf("%w: tags must not be empty", apperrors.ErrValidation)
	}
	return s.posts.List(ctx, repository.PostQuery{
		TagsAny:    tags,
		Visibility: repository.VisibleTo(viewerID),
	})
}
