package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/gustmic/consulting-crm-api/internal/mapper"
	"github.com/gustmic/consulting-crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type BlogService struct {
	blogRepo *repository.BlogPostRepository
	logger   *zap.Logger
}

func NewBlogService(blogRepo *repository.BlogPostRepository, logger *zap.Logger) *BlogService {
	return &BlogService{blogRepo: blogRepo, logger: logger}
}

func (s *BlogService) Create(ctx context.Context, req *domain.CreateBlogPostRequest, authorName string) (*domain.BlogPostDTO, error) {
	post := &domain.BlogPost{
		Title:      req.Title,
		Slug:       req.Slug,
		Excerpt:    req.Excerpt,
		Body:       req.Body,
		Published:  req.Published,
		AuthorName: authorName,
	}
	if post.Published {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	if err := s.blogRepo.Create(ctx, post); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: slug already in use", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create blog post: %w", err)
	}

	s.logger.Info("blog post created",
		zap.String("post_id", post.ID.String()),
		zap.String("slug", post.Slug),
	)

	dto := mapper.ToBlogPostDTO(post)
	return &dto, nil
}

func (s *BlogService) GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogPostDTO, error) {
	post, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}
	dto := mapper.ToBlogPostDTO(post)
	return &dto, nil
}

// GetPublishedBySlug serves the public article page
func (s *BlogService) GetPublishedBySlug(ctx context.Context, slug string) (*domain.BlogPostDTO, error) {
	post, err := s.blogRepo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}
	dto := mapper.ToBlogPostDTO(post)
	return &dto, nil
}

func (s *BlogService) List(ctx context.Context, page, pageSize int) ([]domain.BlogPostDTO, int64, error) {
	posts, total, err := s.blogRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list blog posts: %w", err)
	}
	return s.toDTOs(posts), total, nil
}

// ListPublished returns publicly visible posts, newest first
func (s *BlogService) ListPublished(ctx context.Context, page, pageSize int) ([]domain.BlogPostDTO, int64, error) {
	posts, total, err := s.blogRepo.ListPublished(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list published blog posts: %w", err)
	}
	return s.toDTOs(posts), total, nil
}

func (s *BlogService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateBlogPostRequest) (*domain.BlogPostDTO, error) {
	post, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}

	// First publish stamps the publication time; republishing keeps it
	if req.Published && !post.Published {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	post.Title = req.Title
	post.Slug = req.Slug
	post.Excerpt = req.Excerpt
	post.Body = req.Body
	post.Published = req.Published

	if err := s.blogRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update blog post: %w", err)
	}

	dto := mapper.ToBlogPostDTO(post)
	return &dto, nil
}

func (s *BlogService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.blogRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get blog post: %w", err)
	}
	if err := s.blogRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
	}
	s.logger.Info("blog post deleted", zap.String("post_id", id.String()))
	return nil
}

func (s *BlogService) toDTOs(posts []domain.BlogPost) []domain.BlogPostDTO {
	dtos := make([]domain.BlogPostDTO, len(posts))
	for i := range posts {
		dtos[i] = mapper.ToBlogPostDTO(&posts[i])
	}
	return dtos
}
