package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mdevries/portfolio-tracker-backend/internal/api/request"
	"github.com/mdevries/portfolio-tracker-backend/internal/model"
	"github.com/mdevries/portfolio-tracker-backend/internal/service"
	"github.com/mdevries/portfolio-tracker-backend/internal/validation"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// PortfolioDetailResponse is a portfolio together with its assets.
type PortfolioDetailResponse struct {
	model.Portfolio
	Assets []model.Asset `json:"assets"`
}

// Portfolios returns all portfolios with their persisted totals
func (h *PortfolioHandler) Portfolios(w http.ResponseWriter, r *http.Request) {
	portfolios, err := h.portfolioService.GetAllPortfolios()
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve portfolios")
		return
	}

	respondJSON(w, http.StatusOK, portfolios)
}

// Portfolio returns one portfolio with its assets
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	portfolio, err := h.portfolioService.GetPortfolio(portfolioID)
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve portfolio")
		return
	}

	assets, err := h.portfolioService.GetPortfolioAssets(portfolioID)
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve portfolio assets")
		return
	}

	respondJSON(w, http.StatusOK, PortfolioDetailResponse{
		Portfolio: portfolio,
		Assets:    assets,
	})
}

// DefaultPortfolio returns the guest portfolio, creating it on first visit
func (h *PortfolioHandler) DefaultPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.portfolioService.EnsureDefaultPortfolio(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to resolve default portfolio")
		return
	}

	assets, err := h.portfolioService.GetPortfolioAssets(portfolio.ID)
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve portfolio assets")
		return
	}

	respondJSON(w, http.StatusOK, PortfolioDetailResponse{
		Portfolio: portfolio,
		Assets:    assets,
	})
}

// CreatePortfolio creates a new portfolio
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "Invalid request body",
			"detail": err.Error(),
		})
		return
	}

	if err := validation.ValidateCreatePortfolio(req); err != nil {
		respondServiceError(w, err, "Failed to create portfolio")
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "Failed to create portfolio")
		return
	}

	respondJSON(w, http.StatusCreated, portfolio)
}

// UpdatePortfolio updates a portfolio's name and/or description
func (h *PortfolioHandler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	var req request.UpdatePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "Invalid request body",
			"detail": err.Error(),
		})
		return
	}

	if err := validation.ValidateUpdatePortfolio(req); err != nil {
		respondServiceError(w, err, "Failed to update portfolio")
		return
	}

	portfolio, err := h.portfolioService.UpdatePortfolio(r.Context(), portfolioID, req)
	if err != nil {
		respondServiceError(w, err, "Failed to update portfolio")
		return
	}

	respondJSON(w, http.StatusOK, portfolio)
}

// DeletePortfolio removes a portfolio and its assets
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	if err := h.portfolioService.DeletePortfolio(r.Context(), portfolioID); err != nil {
		respondServiceError(w, err, "Failed to delete portfolio")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Portfolio deleted successfully",
	})
}
