package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/gustmic/consulting-crm-api/internal/mapper"
	"github.com/gustmic/consulting-crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TestimonialService struct {
	testimonialRepo *repository.TestimonialRepository
	logger          *zap.Logger
}

func NewTestimonialService(testimonialRepo *repository.TestimonialRepository, logger *zap.Logger) *TestimonialService {
	return &TestimonialService{testimonialRepo: testimonialRepo, logger: logger}
}

func (s *TestimonialService) Create(ctx context.Context, req *domain.CreateTestimonialRequest) (*domain.TestimonialDTO, error) {
	testimonial := &domain.Testimonial{
		Author:    req.Author,
		Role:      req.Role,
		Company:   req.Company,
		Quote:     req.Quote,
		Published: req.Published,
	}

	if err := s.testimonialRepo.Create(ctx, testimonial); err != nil {
		return nil, fmt.Errorf("failed to create testimonial: %w", err)
	}

	dto := mapper.ToTestimonialDTO(testimonial)
	return &dto, nil
}

func (s *TestimonialService) List(ctx context.Context) ([]domain.TestimonialDTO, error) {
	testimonials, err := s.testimonialRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	return s.toDTOs(testimonials), nil
}

// ListPublished serves the public marketing site
func (s *TestimonialService) ListPublished(ctx context.Context) ([]domain.TestimonialDTO, error) {
	testimonials, err := s.testimonialRepo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list published testimonials: %w", err)
	}
	return s.toDTOs(testimonials), nil
}

func (s *TestimonialService) Update(ctx context.Context, id uuid.UUID, req *domain.CreateTestimonialRequest) (*domain.TestimonialDTO, error) {
	testimonial, err := s.testimonialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get testimonial: %w", err)
	}

	testimonial.Author = req.Author
	testimonial.Role = req.Role
	testimonial.Company = req.Company
	testimonial.Quote = req.Quote
	testimonial.Published = req.Published

	if err := s.testimonialRepo.Update(ctx, testimonial); err != nil {
		return nil, fmt.Errorf("failed to update testimonial: %w", err)
	}

	dto := mapper.ToTestimonialDTO(testimonial)
	return &dto, nil
}

func (s *TestimonialService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.testimonialRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get testimonial: %w", err)
	}
	if err := s.testimonialRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete testimonial: %w", err)
	}
	s.logger.Info("testimonial deleted", zap.String("testimonial_id", id.String()))
	return nil
}

func (s *TestimonialService) toDTOs(testimonials []domain.Testimonial) []domain.TestimonialDTO {
	dtos := make([]domain.TestimonialDTO, len(testimonials))
	for i := range testimonials {
		dtos[i] = mapper.ToTestimonialDTO(&testimonials[i])
	}
	return dtos
}
