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

// MovieRatings serves GET /api/movies/{id}/ratings.
func MovieRatings(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movieID, err := movieIDParam(r)
		if err != nil {
			validation.WriteError(w, err, http.StatusBadRequest)
			return
		}

		ratings, err := s.RatingsForMovie(r.Context(), movieID)
		if err != nil {
			serverError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, ratings)
	}
}

// RateMovie serves POST /api/movies/{id}/rate. The body is checked against
// the rating schema before anything is persisted; the timestamp is server
// assigned.
func RateMovie(s store.Store) http.HandlerFunc {
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
		if fields, err := validation.ValidateRating(body); err != nil {
			serverError(w, r, err)
			return
		} else if fields != nil {
			validation.WriteFieldErrors(w, fields)
			return
		}

		var input struct {
			Rating int `json:"rating"`
		}
		if err := json.Unmarshal(body, &input); err != nil {
			validation.WriteError(w, errors.New("invalid request body"), http.StatusBadRequest)
			return
		}

		rating := models.Rating{
			UserID:  userID,
			MovieID: movieID,
			Rating:  input.Rating,
		}
		if err := s.CreateRating(r.Context(), &rating); err != nil {
			serverError(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, rating)
	}
}
