package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wayandway/moneylog-backend/internal/model"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint) (*model.Post, error)
	FindBySlug(ctx context.Context, slug string) (*model.Post, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, q PostQuery) ([]model.Post, error)
	SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
	Update(ctx context.Context, post *model.Post) error
	ReplaceTags(ctx context.Context, post *model.Post, tags []model.Tag) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository builds a GORM-backed repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	// Omit("Tags.*") inserts join rows without touching the tag records,
	// which are upserted separately.
	return r.db.WithContext(ctx).Omit("Tags.*").Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").Preload("Tags").Preload("Comments").
		First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindBySlug(ctx context.Context, slug string) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").Preload("Tags").Preload("Comments").
		Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) List(ctx context.Context, q PostQuery) ([]model.Post, error) {
	var posts []model.Post
	tx := q.apply(r.db.WithContext(ctx).Model(&model.Post{}))
	if err := tx.Preload("Author").Preload("Tags").
		Order("posts.created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&model.Post{}).Where("slug = ?", slug)
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).
		Omit("Tags", "Author", "Comments", "CreatedAt").
		Save(post).Error
}

func (r *postRepository) ReplaceTags(ctx context.Context, post *model.Post, tags []model.Tag) error {
	return r.db.WithContext(ctx).Model(post).Association("Tags").Replace(tags)
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	// Select(clause.Associations) removes the post_tags join rows and the
	// post's comments along with the post itself.
	return r.db.WithContext(ctx).
		Select(clause.Associations).
		Delete(&model.Post{ID: id}).Error
}
