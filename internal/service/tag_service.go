package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"gorm.io/gorm"

	apperrors "github.com/wayandway/moneylog-backend/internal/errors"
	"github.com/wayandway/moneylog-backend/internal/model"
	"github.com/wayandway/moneylog-backend/internal/repository"
)

// ErrTagAlreadyExists is returned when explicitly creating a tag whose name
// is already taken. The upsert path never returns it.
var ErrTagAlreadyExists = errors.New("tag already exists")

// TagService handles tag operations, including the upsert collaborator used
// by post writes.
type TagService interface {
	Ensure(ctx context.Context, names []string) ([]model.Tag, error)
	List(ctx context.Context) ([]model.Tag, error)
	FindByName(ctx context.Context, name string) (*model.Tag, error)
	Create(ctx context.Context, name string) (*model.Tag, error)
	Delete(ctx context.Context, name string) error
}

type tagService struct {
	repo repository.TagRepository
}

// NewTagService builds a TagService.
func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

func validateTagName(name string) error {
	if n := utf8.RuneCountInString(name); n < model.TagNameMinLen || n > model.TagNameMaxLen {
		return fmt.Errorf("%w: tag name must be %d-%d characters", apperrors.ErrValidation, model.TagNameMinLen, model.TagNameMaxLen)
	}
	return nil
}

// Ensure resolves tag names to tag records, creating any that are missing.
// Malformed names fail validation; a missing tag is created, never rejected.
func (s *tagService) Ensure(ctx context.Context, names []string) ([]model.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	for _, name := range names {
		if err := validateTagName(name); err != nil {
			return nil, err
		}
	}
	tags, err := s.repo.Ensure(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("ensure tags: %w", err)
	}
	return tags, nil
}

func (s *tagService) List(ctx context.Context) ([]model.Tag, error) {
	return s.repo.List(ctx)
}

func (s *tagService) FindByName(ctx context.Context, name string) (*model.Tag, error) {
	tag, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Create(ctx context.Context, name string) (*model.Tag, error) {
	if err := validateTagName(name); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check tag: %w", err)
	}
	if exists {
		return nil, ErrTagAlreadyExists
	}

	tag := &model.Tag{Name: name}
	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}

func (s *tagService) Delete(ctx context.Context, name string) error {
	deleted, err := s.repo.DeleteByName(ctx, name)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if !deleted {
		return apperrors.ErrTagNotFound
	}
	return nil
}
