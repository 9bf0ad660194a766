package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"gorm.io/gorm"
)

type TestimonialRepository struct {
	db *gorm.DB
}

func NewTestimonialRepository(db *gorm.DB) *TestimonialRepository {
	return &TestimonialRepository{db: db}
}

func (r *TestimonialRepository) Create(ctx context.Context, testimonial *domain.Testimonial) error {
	return r.db.WithContext(ctx).Create(testimonial).Error
}

func (r *TestimonialRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Testimonial, error) {
	var testimonial domain.Testimonial
	err := r.db.WithContext(ctx).First(&testimonial, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &testimonial, nil
}

func (r *TestimonialRepository) List(ctx context.Context) ([]domain.Testimonial, error) {
	var testimonials []domain.Testimonial
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&testimonials).Error
	return testimonials, err
}

// ListPublished returns testimonials shown on the public site
func (r *TestimonialRepository) ListPublished(ctx context.Context) ([]domain.Testimonial, error) {
	var testimonials []domain.Testimonial
	err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("created_at DESC").
		Find(&testimonials).Error
	return testimonials, err
}

func (r *TestimonialRepository) Update(ctx context.Context, testimonial *domain.Testimonial) error {
	return r.db.WithContext(ctx).Save(testimonial).Error
}

func (r *TestimonialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Testimonial{}, "id = ?", id).Error
}
