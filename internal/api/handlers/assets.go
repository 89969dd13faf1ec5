package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mdevries/portfolio-tracker-backend/internal/api/request"
	"github.com/mdevries/portfolio-tracker-backend/internal/service"
	"github.com/mdevries/portfolio-tracker-backend/internal/validation"
)

// AssetHandler handles asset-related HTTP requests
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// Asset returns one asset by ID
func (h *AssetHandler) Asset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	asset, err := h.assetService.GetAsset(assetID)
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve asset")
		return
	}

	respondJSON(w, http.StatusOK, asset)
}

// CreateAsset creates an asset, prices it and re-aggregates its portfolio
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "Invalid request body",
			"detail": err.Error(),
		})
		return
	}

	if err := validation.ValidateCreateAsset(req); err != nil {
		respondServiceError(w, err, "Failed to create asset")
		return
	}

	asset, err := h.assetService.CreateAsset(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "Failed to create asset")
		return
	}

	respondJSON(w, http.StatusCreated, asset)
}

// UpdateAsset updates an asset's mutable fields and re-aggregates its portfolio
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	var req request.UpdateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "Invalid request body",
			"detail": err.Error(),
		})
		return
	}

	if err := validation.ValidateUpdateAsset(req); err != nil {
		respondServiceError(w, err, "Failed to update asset")
		return
	}

	asset, err := h.assetService.UpdateAsset(r.Context(), assetID, req)
	if err != nil {
		respondServiceError(w, err, "Failed to update asset")
		return
	}

	respondJSON(w, http.StatusOK, asset)
}

// DeleteAsset removes an asset and re-aggregates its portfolio
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	if err := h.assetService.DeleteAsset(r.Context(), assetID); err != nil {
		respondServiceError(w, err, "Failed to delete asset")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Asset deleted successfully",
	})
}
