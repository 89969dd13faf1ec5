package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/mdevries/portfolio-tracker-backend/internal/apperrors"
	"github.com/mdevries/portfolio-tracker-backend/internal/validation"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// respondServiceError maps a service error onto an HTTP status: validation
// failures become 400 with the field map, missing entities become 404, and
// everything else is a 500-equivalent repository or system failure.
func respondServiceError(w http.ResponseWriter, err error, message string) {
	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": validationErr.Fields,
		})
		return
	}

	if errors.Is(err, apperrors.ErrPortfolioNotFound) ||
		errors.Is(err, apperrors.ErrAssetNotFound) {
		respondJSON(w, http.StatusNotFound, map[string]string{
			"error":  message,
			"detail": err.Error(),
		})
		return
	}

	if errors.Is(err, apperrors.ErrInvalidDateRange) {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  message,
			"detail": err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusInternalServerError, map[string]string{
		"error":  message,
		"detail": err.Error(),
	})
}
