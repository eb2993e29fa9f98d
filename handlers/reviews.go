package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cinelog/cinelog/lib/auth"
	"github.com/cinelog/cinelog/lib/store"
	"github.com/cinelog/cinelog/lib/validation"
	"github.com/cinelog/cinelog/models"
)

// MovieReviews serves GET /api/movies/{id}/reviews, most recent first.
func MovieReviews(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movieID, err := movieIDParam(r)
		if err != nil {
			validation.WriteError(w, err, http.StatusBadRequest)
			return
		}

		reviews, err := s.ReviewsForMovie(r.Context(), movieID)
		if err != nil {
			serverError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, reviews)
	}
}

// UserReviews serves GET /api/users/{id}/reviews, most recent first.
func UserReviews(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDParam(r)
		if err != nil {
			validation.WriteError(w, err, http.StatusBadRequest)
			return
		}

		reviews, err := s.ReviewsForUser(r.Context(), userID)
		if err != nil {
			serverError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, reviews)
	}
}

// ReviewMovie serves POST /api/movies/{id}/review.
func ReviewMovie(s store.Store) http.HandlerFunc {
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

		body, ok := readBody(w, r)
		if !ok {
			return
		}
		if fields, err := validation.ValidateReview(body); err != nil {
			serverError(w, r, err)
			return
		} else if fields != nil {
			validation.WriteFieldErrors(w, fields)
			return
		}

		var input struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal(body, &input); err != nil {
			validation.WriteError(w, errors.New("invalid request body"), http.StatusBadRequest)
			return
		}

		review := models.Review{
			UserID:  userID,
			MovieID: movieID,
			Content: input.Content,
		}
		if err := s.CreateReview(r.Context(), &review); err != nil {
			serverError(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, review)
	}
}
