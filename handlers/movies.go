package handlers

import (
	"errors"
	"net/http"

	"github.com/cinelog/cinelog/lib/catalog"
	"github.com/cinelog/cinelog/lib/validation"
)

// Movies serves GET /api/movies: one normalized page of the provider's
// popular listing.
func Movies(c Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := pageParam(r)
		if err != nil {
			validation.WriteError(w, err, http.StatusBadRequest)
			return
		}

		movies, err := c.Popular(r.Context(), page)
		if err != nil {
			serverError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, movies)
	}
}

// SearchMovies serves GET /api/movies/search?q=.
func SearchMovies(c Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			validation.WriteError(w, errors.New("missing search query"), http.StatusBadRequest)
			return
		}
		page, err := pageParam(r)
		if err != nil {
			validation.WriteError(w, err, http.StatusBadRequest)
			return
		}

		movies, err := c.Search(r.Context(), query, page)
		if err != nil {
			serverError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, movies)
	}
}

// Movie serves GET /api/movies/{id}. A movie the provider does not have, or
// cannot currently serve, is a 404 rather than a partial record.
func Movie(c Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := movieIDParam(r)
		if err != nil {
			validation.WriteError(w, err, http.StatusBadRequest)
			return
		}

		movie, err := c.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				validation.WriteError(w, errors.New("movie not found"), http.StatusNotFound)
				return
			}
			serverError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, movie)
	}
}
