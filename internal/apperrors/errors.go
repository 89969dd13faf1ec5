// Package apperrors defines the sentinel errors shared across the service
// and handler layers. Handlers match them with errors.Is to choose an HTTP
// status; services wrap them with %w to add context.
package apperrors

import "errors"

// Domain entity errors indicate that a requested resource does not exist.
var (
	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrAssetNotFound indicates that an asset with the given ID does not exist.
	ErrAssetNotFound = errors.New("asset not found")
)

// Business logic errors indicate that an operation cannot be completed as
// requested.
var (
	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")
)

// Pricing errors represent soft failures of the price lookup chain.
var (
	// ErrPriceUnavailable indicates that no source, networked or fallback,
	// produced a price for a symbol. Callers treat this as a soft failure:
	// the asset's prior valuation is retained unchanged, not zeroed.
	ErrPriceUnavailable = errors.New("no price available for symbol")
)
