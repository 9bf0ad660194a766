package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/gustmic/consulting-crm-api/internal/service"
	"go.uber.org/zap"
)

// InquiryHandler handles the public contact form
type InquiryHandler struct {
	inquiryService *service.InquiryService
	logger         *zap.Logger
}

// NewInquiryHandler creates a new InquiryHandler
func NewInquiryHandler(inquiryService *service.InquiryService, logger *zap.Logger) *InquiryHandler {
	return &InquiryHandler{
		inquiryService: inquiryService,
		logger:         logger,
	}
}

// SubmitInquiry godoc
// @Summary Submit a contact-form inquiry from the public site
// @Tags Public
// @Accept json
// @Produce json
// @Param inquiry body domain.InquiryRequest true "Inquiry payload"
// @Success 202
// @Failure 400 {object} domain.APIError
// @Router /public/inquiries [post]
func (h *InquiryHandler) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	var req domain.InquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	if err := h.inquiryService.Submit(r.Context(), &req); err != nil {
		h.logger.Error("failed to record inquiry", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "received"})
}
