package handlers

import (
	"errors"
	"net/http"

	"github.com/cinelog/cinelog/lib/auth"
	"github.com/cinelog/cinelog/lib/store"
	"github.com/cinelog/cinelog/lib/validation"
)

// GetUser serves GET /api/users/{id}: the public profile view.
func GetUser(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDParam(r)
		if err != nil {
			validation.WriteError(w, err, http.StatusBadRequest)
			return
		}

		user, err := s.GetUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				validation.WriteError(w, errors.New("user not found"), http.StatusNotFound)
				return
			}
			serverError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, user)
	}
}

// CurrentUser serves GET /api/user: the authenticated account.
func CurrentUser(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserID(r.Context())
		if !ok {
			validation.WriteError(w, errors.New("authentication required"), http.StatusUnauthorized)
			return
		}

		user, err := s.GetUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// Token for a deleted account.
				validation.WriteError(w, errors.New("user not found"), http.StatusUnauthorized)
				return
			}
			serverError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, user)
	}
}
