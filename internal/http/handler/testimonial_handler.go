package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/gustmic/consulting-crm-api/internal/service"
	"go.uber.org/zap"
)

// TestimonialHandler handles HTTP requests for testimonials
type TestimonialHandler struct {
	testimonialService *service.TestimonialService
	logger             *zap.Logger
}

// NewTestimonialHandler creates a new TestimonialHandler
func NewTestimonialHandler(testimonialService *service.TestimonialService, logger *zap.Logger) *TestimonialHandler {
	return &TestimonialHandler{
		testimonialService: testimonialService,
		logger:             logger,
	}
}

// ListTestimonials godoc
// @Summary List all testimonials
// @Tags Testimonials
// @Produce json
// @Success 200 {array} domain.TestimonialDTO
// @Security BearerAuth
// @Router /testimonials [get]
func (h *TestimonialHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.testimonialService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list testimonials", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, testimonials)
}

// ListPublishedTestimonials godoc
// @Summary List published testimonials for the public site
// @Tags Public
// @Produce json
// @Success 200 {array} domain.TestimonialDTO
// @Router /public/testimonials [get]
func (h *TestimonialHandler) ListPublishedTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.testimonialService.ListPublished(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, testimonials)
}

// CreateTestimonial godoc
// @Summary Create a testimonial
// @Tags Testimonials
// @Accept json
// @Produce json
// @Param testimonial body domain.CreateTestimonialRequest true "Testimonial payload"
// @Success 201 {object} domain.TestimonialDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /testimonials [post]
func (h *TestimonialHandler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTestimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	testimonial, err := h.testimonialService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, testimonial)
}

// UpdateTestimonial godoc
// @Summary Update a testimonial
// @Tags Testimonials
// @Accept json
// @Produce json
// @Param id path string true "Testimonial ID"
// @Param testimonial body domain.CreateTestimonialRequest true "Testimonial payload"
// @Success 200 {object} domain.TestimonialDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /testimonials/{id} [put]
func (h *TestimonialHandler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid testimonial ID")
		return
	}

	var req domain.CreateTestimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	testimonial, err := h.testimonialService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, testimonial)
}

// DeleteTestimonial godoc
// @Summary Delete a testimonial
// @Tags Testimonials
// @Param id path string true "Testimonial ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /testimonials/{id} [delete]
func (h *TestimonialHandler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid testimonial ID")
		return
	}

	if err := h.testimonialService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
