package handlers

import (
	"net/http"

	"github.com/mdevries/portfolio-tracker-backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Error   string `json:"error,omitempty"`
}

// Health returns the health status of the application and its storage backend
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	version := h.systemService.Version()

	if err := h.systemService.Health(); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:  "unhealthy",
			Storage: version.StorageBackend,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Storage: version.StorageBackend,
	})
}

// Version returns version and feature information
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.systemService.Version())
}
