package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mdevries/portfolio-tracker-backend/internal/service"
)

// AnalyticsHandler handles analytics-related HTTP requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// PortfolioAnalytics returns the analytics read model for one portfolio
func (h *AnalyticsHandler) PortfolioAnalytics(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	analytics, err := h.analyticsService.GetPortfolioAnalytics(portfolioID)
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve portfolio analytics")
		return
	}

	respondJSON(w, http.StatusOK, analytics)
}
