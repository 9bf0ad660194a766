package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/gustmic/consulting-crm-api/internal/service"
	"go.uber.org/zap"
)

// EmailHandler handles outbound email requests
type EmailHandler struct {
	emailService *service.EmailService
	logger       *zap.Logger
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(emailService *service.EmailService, logger *zap.Logger) *EmailHandler {
	return &EmailHandler{
		emailService: emailService,
		logger:       logger,
	}
}

// SendEmail godoc
// @Summary Send an email to a contact
// @Description Delivers via the transactional provider, then logs an Email interaction and stamps last_contacted. A provider failure writes nothing.
// @Tags Emails
// @Accept json
// @Produce json
// @Param email body domain.SendEmailRequest true "Email payload"
// @Success 200 {object} domain.SendEmailResponse
// @Failure 400 {object} domain.APIError
// @Failure 502 {object} domain.APIError
// @Security BearerAuth
// @Router /emails [post]
func (h *EmailHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req domain.SendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	resp, err := h.emailService.Send(r.Context(), &req)
	if err != nil {
		h.logger.Error("email send failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
