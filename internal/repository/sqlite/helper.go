// Package sqlite implements the repository contracts on database/sql with
// the modernc.org/sqlite driver. Decimal columns are stored as exact
// decimal strings and parsed at the scan boundary.
package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// parseDecimal converts a stored decimal string back into a decimal value.
// An empty column (legacy rows) reads as zero.
func parseDecimal(s, column string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse %s value %q: %w", column, s, err)
	}
	return d, nil
}

// encodeMetadata serializes an asset metadata map for the metadata TEXT
// column. A nil map stores as NULL-equivalent empty string.
func encodeMetadata(m map[string]string) (string, error) {
	if len(m) == 0 {
		return "", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	return string(data), nil
}

// decodeMetadata deserializes the metadata TEXT column.
func decodeMetadata(s string) (map[string]string, error) {
	if s == "" {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	return m, nil
}
