package handler

import (
	"net/http"

	"github.com/gustmic/consulting-crm-api/internal/service"
	"go.uber.org/zap"
)

// AdminHandler handles system administration endpoints
type AdminHandler struct {
	provisionService *service.ProvisionService
	logger           *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(provisionService *service.ProvisionService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		provisionService: provisionService,
		logger:           logger,
	}
}

// ProvisionAdmin godoc
// @Summary Provision the configured admin account
// @Description Idempotent: creates the admin account if absent, otherwise resets its password. Always ensures a single admin role row.
// @Tags Admin
// @Produce json
// @Success 200 {object} domain.UserDTO
// @Failure 401 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /admin/provision [post]
func (h *AdminHandler) ProvisionAdmin(w http.ResponseWriter, r *http.Request) {
	user, err := h.provisionService.ProvisionAdmin(r.Context())
	if err != nil {
		h.logger.Error("admin provisioning failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
