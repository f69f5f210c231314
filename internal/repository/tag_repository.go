package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wayandway/moneylog-backend/internal/model"
)

// TagRepository defines persistence operations for tags, including the
// upsert used by post writes.
type TagRepository interface {
	Ensure(ctx context.Context, names []string) ([]model.Tag, error)
	Create(ctx context.Context, tag *model.Tag) error
	FindByName(ctx context.Context, name string) (*model.Tag, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]model.Tag, error)
	DeleteByName(ctx context.Context, name string) (bool, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository builds a GORM-backed repository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// Ensure resolves each name to a tag record, creating missing tags. The
// result preserves input order with duplicates removed.
func (r *tagRepository) Ensure(ctx context.Context, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		var tag model.Tag
		if err := r.db.WithContext(ctx).
			Where(model.Tag{Name: name}).
			FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (r *tagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) FindByName(ctx context.Context, name string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Tag{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *tagRepository) List(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	if err := r.db.WithContext(ctx).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// DeleteByName removes a tag, returning false when no such tag existed.
func (r *tagRepository) DeleteByName(ctx context.Context, name string) (bool, error) {
	res := r.db.WithContext(ctx).Where("name = ?", name).Delete(&model.Tag{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
