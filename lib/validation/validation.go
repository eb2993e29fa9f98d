// Package validation checks request bodies against JSON schemas and writes
// the API's error envelopes.
package validation

import (
	"encoding/json"
	"fmt"
	"net/http"

	"log/slog"
)

// ValidatePagination validates the ?page= query parameter.
func ValidatePagination(page int) error {
	if page < 1 {
		return fmt.Errorf("page must be greater than 0")
	}
	return nil
}

// WriteError writes a JSON error envelope with the given status.
func WriteError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	}); err != nil {
		slog.Error("failed to encode error response", slog.Any("error", err))
	}
}

// WriteFieldErrors writes a 400 with per-field validation detail. The caller
// can fix the named fields and resubmit.
func WriteFieldErrors(w http.ResponseWriter, fields FieldErrors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"error":  "validation failed",
		"fields": fields,
	}); err != nil {
		slog.Error("failed to encode validation response", slog.Any("error", err))
	}
}
