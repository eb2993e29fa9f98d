package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestsCarryBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"results": []any{}}))
	}))
	defer server.Close()

	client := NewClient("secret-key", slog.Default(), WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	_, err := client.PopularMovies(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-key", gotAuth)
}

func TestGenreNamesCachesCatalog(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"genres": []map[string]any{{"id": 28, "name": "Action"}},
		}))
	}))
	defer server.Close()

	client := NewClient("key", slog.Default(), WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	genres, err := client.GenreNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Action", genres[28])

	genres, err = client.GenreNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Action", genres[28])

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestMovieDetailsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient("key", slog.Default(), WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	_, err := client.MovieDetails(context.Background(), 999999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUnexpectedStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("key", slog.Default(), WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	_, err := client.MovieVideos(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "429")
}

func TestPosterURL(t *testing.T) {
	client := NewClient("key", slog.Default())
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/x.jpg", client.PosterURL("/x.jpg"))
	assert.Equal(t, "", client.PosterURL(""))
}
