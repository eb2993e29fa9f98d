// Package handlers contains the REST handlers. Each handler is a
// constructor taking its dependencies and returning an http.HandlerFunc, so
// tests can wire fakes without any global state.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/cinelog/cinelog/lib/validation"
	"github.com/cinelog/cinelog/models"
)

// maxBodyBytes caps request bodies; review text is the largest thing we
// accept.
const maxBodyBytes = 1 << 20

// Catalog is the movie source the handlers read through. Implemented by
// lib/catalog; faked in tests.
type Catalog interface {
	Popular(ctx context.Context, page int) ([]models.Movie, error)
	Search(ctx context.Context, query string, page int) ([]models.Movie, error)
	Get(ctx context.Context, id int) (*models.Movie, error)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

func serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	validation.WriteError(w, errors.New("internal server error"), http.StatusInternalServerError)
}

// movieIDParam parses the {id} path segment as a provider movie id.
func movieIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		return 0, errors.New("invalid movie id")
	}
	return id, nil
}

// userIDParam parses the {id} path segment as a user id.
func userIDParam(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid user id")
	}
	return uint(id), nil
}

// pageParam parses the optional ?page= query parameter, defaulting to 1.
func pageParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("page must be an integer")
	}
	if err := validation.ValidatePagination(page); err != nil {
		return 0, err
	}
	return page, nil
}

// readBody reads a size-capped request body. On failure it writes the 400
// itself and reports false.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		validation.WriteError(w, errors.New("unable to read request body"), http.StatusBadRequest)
		return nil, false
	}
	return body, true
}
