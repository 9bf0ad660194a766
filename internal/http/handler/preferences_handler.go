package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gustmic/consulting-crm-api/internal/auth"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/gustmic/consulting-crm-api/internal/service"
	"go.uber.org/zap"
)

// PreferencesHandler handles HTTP requests for user display preferences
type PreferencesHandler struct {
	prefsService *service.PreferencesService
	logger       *zap.Logger
}

// NewPreferencesHandler creates a new PreferencesHandler
func NewPreferencesHandler(prefsService *service.PreferencesService, logger *zap.Logger) *PreferencesHandler {
	return &PreferencesHandler{
		prefsService: prefsService,
		logger:       logger,
	}
}

// GetPreferences godoc
// @Summary Get the authenticated user's preferences
// @Tags Preferences
// @Produce json
// @Success 200 {object} domain.UserPreferencesDTO
// @Security BearerAuth
// @Router /preferences [get]
func (h *PreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	prefs, err := h.prefsService.Get(r.Context(), userCtx.UserID)
	if err != nil {
		h.logger.Error("failed to get preferences", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, prefs)
}

// UpsertPreferences godoc
// @Summary Save the authenticated user's preferences
// @Tags Preferences
// @Accept json
// @Produce json
// @Param preferences body domain.UpsertPreferencesRequest true "Preferences payload"
// @Success 200 {object} domain.UserPreferencesDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /preferences [put]
func (h *PreferencesHandler) UpsertPreferences(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req domain.UpsertPreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	prefs, err := h.prefsService.Upsert(r.Context(), userCtx.UserID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, prefs)
}
