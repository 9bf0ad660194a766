package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"gorm.io/gorm"
)

type BlogPostRepository struct {
	db *gorm.DB
}

func NewBlogPostRepository(db *gorm.DB) *BlogPostRepository {
	return &BlogPostRepository{db: db}
}

func (r *BlogPostRepository) Create(ctx context.Context, post *domain.BlogPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *BlogPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error) {
	var post domain.BlogPost
	err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPublishedBySlug serves the public article page
func (r *BlogPostRepository) GetPublishedBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	var post domain.BlogPost
	err := r.db.WithContext(ctx).
		Where("slug = ? AND published = ?", slug, true).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *BlogPostRepository) List(ctx context.Context, page, pageSize int) ([]domain.BlogPost, int64, error) {
	var posts []domain.BlogPost
	var total int64

	if err := r.db.WithContext(ctx).Model(&domain.BlogPost{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&posts).Error

	return posts, total, err
}

// ListPublished returns published posts, newest first
func (r *BlogPostRepository) ListPublished(ctx context.Context, page, pageSize int) ([]domain.BlogPost, int64, error) {
	var posts []domain.BlogPost
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.BlogPost{}).Where("published = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("published_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&posts).Error

	return posts, total, err
}

func (r *BlogPostRepository) Update(ctx context.Context, post *domain.BlogPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *BlogPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.BlogPost{}, "id = ?", id).Error
}
