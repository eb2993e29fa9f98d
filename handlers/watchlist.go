package handlers

import (
	"errors"
	"net/http"

	"github.com/cinelog/cinelog/lib/auth"
	"github.com/cinelog/cinelog/lib/store"
	"github.com/cinelog/cinelog/lib/validation"
)

// Watchlist serves GET /api/users/{id}/watchlist. A user can only read
// their own list.
func Watchlist(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authID, ok := auth.UserID(r.Context())
		if !ok {
			validation.WriteError(w, errors.New("authentication required"), http.StatusUnauthorized)
			return
		}
		pathID, err := userIDParam(r)
		if err != nil {
			validation.WriteError(w, err, http.StatusBadRequest)
			return
		}
		if pathID != authID {
			validation.WriteError(w, errors.New("cannot view another user's watchlist"), http.StatusForbidden)
			return
		}

		items, err := s.Watchlist(r.Context(), authID)
		if err != nil {
			serverError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, items)
	}
}

// ToggleWatchlist serves POST /api/movies/{id}/watchlist. The caller never
// states intent: if the pair is absent the entry is created (201), if
// present it is removed (204).
func ToggleWatchlist(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserID(r.Context())
		if !ok {
			validation.WriteError(w, errors.New("authentication required"), http.StatusUnauthorized)
			return
		}
		movieID, err := movieIDParam(r)
		if err != nil {
			validation.WriteError(w, err, http.StatusBadRequest)
			return
		}

		entry, added, err := s.ToggleWatchlist(r.Context(), userID, movieID)
		if err != nil {
			serverError(w, r, err)
			return
		}
		if !added {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		respondJSON(w, http.StatusCreated, entry)
	}
}
