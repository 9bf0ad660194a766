package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gustmic/consulting-crm-api/internal/auth"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/gustmic/consulting-crm-api/internal/service"
	"go.uber.org/zap"
)

// BlogHandler handles HTTP requests for blog posts
type BlogHandler struct {
	blogService *service.BlogService
	logger      *zap.Logger
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blogService *service.BlogService, logger *zap.Logger) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
		logger:      logger,
	}
}

// ListPosts godoc
// @Summary List all blog posts including drafts
// @Tags Blog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Router /blog-posts [get]
func (h *BlogHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	posts, total, err := h.blogService.List(r.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("failed to list blog posts", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, domain.PaginatedResponse{
		Data:       posts,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	})
}

// ListPublishedPosts godoc
// @Summary List published blog posts for the public site
// @Tags Public
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Success 200 {object} domain.PaginatedResponse
// @Router /public/blog-posts [get]
func (h *BlogHandler) ListPublishedPosts(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	posts, total, err := h.blogService.ListPublished(r.Context(), page, pageSize)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, domain.PaginatedResponse{
		Data:       posts,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	})
}

// GetPublishedPost godoc
// @Summary Get a published blog post by slug
// @Tags Public
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} domain.BlogPostDTO
// @Failure 404 {object} domain.APIError
// @Router /public/blog-posts/{slug} [get]
func (h *BlogHandler) GetPublishedPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := h.blogService.GetPublishedBySlug(r.Context(), slug)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// GetPost godoc
// @Summary Get a blog post by id
// @Tags Blog
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} domain.BlogPostDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /blog-posts/{id} [get]
func (h *BlogHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	post, err := h.blogService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// CreatePost godoc
// @Summary Create a blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Param post body domain.CreateBlogPostRequest true "Post payload"
// @Success 201 {object} domain.BlogPostDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /blog-posts [post]
func (h *BlogHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBlogPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	authorName := ""
	if userCtx, ok := auth.FromContext(r.Context()); ok {
		authorName = userCtx.DisplayName
	}

	post, err := h.blogService.Create(r.Context(), &req, authorName)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary Update a blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param post body domain.UpdateBlogPostRequest true "Post payload"
// @Success 200 {object} domain.BlogPostDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /blog-posts/{id} [put]
func (h *BlogHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var req domain.UpdateBlogPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	post, err := h.blogService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete a blog post
// @Tags Blog
// @Param id path string true "Post ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /blog-posts/{id} [delete]
func (h *BlogHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	if err := h.blogService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
