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

// InteractionHandler handles HTTP requests for interactions.
// Interactions are append-only, so only create and list exist.
type InteractionHandler struct {
	interactionService *service.InteractionService
	logger             *zap.Logger
}

// NewInteractionHandler creates a new InteractionHandler
func NewInteractionHandler(interactionService *service.InteractionService, logger *zap.Logger) *InteractionHandler {
	return &InteractionHandler{
		interactionService: interactionService,
		logger:             logger,
	}
}

// CreateInteraction godoc
// @Summary Log an interaction for a contact
// @Tags Interactions
// @Accept json
// @Produce json
// @Param interaction body domain.CreateInteractionRequest true "Interaction payload"
// @Success 201 {object} domain.InteractionDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /interactions [post]
func (h *InteractionHandler) CreateInteraction(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	interaction, err := h.interactionService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create interaction", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, interaction)
}

// ListContactInteractions godoc
// @Summary List a contact's interactions
// @Tags Interactions
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {array} domain.InteractionDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /contacts/{id}/interactions [get]
func (h *InteractionHandler) ListContactInteractions(w http.ResponseWriter, r *http.Request) {
	contactID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	interactions, err := h.interactionService.ListByContact(r.Context(), contactID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, interactions)
}
