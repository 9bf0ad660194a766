package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gustmic/consulting-crm-api/internal/service"
	"go.uber.org/zap"
)

// AnalyticsHandler exposes the reporting endpoints for the admin dashboard
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	logger           *zap.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// GetEngagement godoc
// @Summary Get a contact's engagement score and tier
// @Tags Analytics
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} domain.EngagementDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /analytics/contacts/{id}/engagement [get]
func (h *AnalyticsHandler) GetEngagement(w http.ResponseWriter, r *http.Request) {
	contactID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	engagement, err := h.analyticsService.Engagement(r.Context(), contactID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, engagement)
}

// GetFunnel godoc
// @Summary Get the contact conversion funnel
// @Tags Analytics
// @Produce json
// @Success 200 {array} domain.FunnelStageDTO
// @Security BearerAuth
// @Router /analytics/funnel [get]
func (h *AnalyticsHandler) GetFunnel(w http.ResponseWriter, r *http.Request) {
	funnel, err := h.analyticsService.Funnel(r.Context())
	if err != nil {
		h.logger.Error("failed to compute funnel", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, funnel)
}

// GetVelocity godoc
// @Summary Get average pipeline age per stage
// @Tags Analytics
// @Produce json
// @Success 200 {array} domain.VelocityStageDTO
// @Security BearerAuth
// @Router /analytics/velocity [get]
func (h *AnalyticsHandler) GetVelocity(w http.ResponseWriter, r *http.Request) {
	velocity, err := h.analyticsService.Velocity(r.Context())
	if err != nil {
		h.logger.Error("failed to compute velocity", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, velocity)
}

// GetProfitability godoc
// @Summary Get per-service-type profitability figures
// @Tags Analytics
// @Produce json
// @Success 200 {array} domain.ServiceProfitabilityDTO
// @Security BearerAuth
// @Router /analytics/profitability [get]
func (h *AnalyticsHandler) GetProfitability(w http.ResponseWriter, r *http.Request) {
	profitability, err := h.analyticsService.Profitability(r.Context())
	if err != nil {
		h.logger.Error("failed to compute profitability", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profitability)
}

// GetCapacity godoc
// @Summary Get ongoing-project load against configured caps
// @Tags Analytics
// @Produce json
// @Success 200 {array} domain.CapacityRowDTO
// @Security BearerAuth
// @Router /analytics/capacity [get]
func (h *AnalyticsHandler) GetCapacity(w http.ResponseWriter, r *http.Request) {
	capacity, err := h.analyticsService.Capacity(r.Context())
	if err != nil {
		h.logger.Error("failed to compute capacity", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, capacity)
}
