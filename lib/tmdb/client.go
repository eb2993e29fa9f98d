// Package tmdb is a client for the TMDB HTTP API, the external movie
// metadata provider. It is a read-only I/O wrapper: no business logic lives
// here beyond decoding responses into typed shapes.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"log/slog"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
)

// ErrNotFound is returned when the provider has no record for the requested
// id. Callers map it to not-found semantics, never to a server error.
var ErrNotFound = errors.New("tmdb: not found")

// HTTPDoer is the subset of http.Client the client needs. Tests substitute
// their own implementation.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to the provider. All requests carry the bearer token from
// configuration; the provider is never written to.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	httpClient   HTTPDoer
	logger       *slog.Logger

	mu     sync.RWMutex
	genres map[int]string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests to point the client
// at a local server.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithImageBaseURL overrides the image base URL.
func WithImageBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.imageBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h HTTPDoer) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// NewClient creates a provider client authenticated with the given API key.
func NewClient(apiKey string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		apiKey:       apiKey,
		baseURL:      defaultBaseURL,
		imageBaseURL: defaultImageBaseURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		logger:       logger,
		genres:       nil,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PopularMovies fetches one page of the provider's popular listing.
func (c *Client) PopularMovies(ctx context.Context, page int) (*MoviePage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var result MoviePage
	if err := c.getJSON(ctx, "/movie/popular", params, &result); err != nil {
		return nil, fmt.Errorf("failed to get popular movies: %w", err)
	}
	return &result, nil
}

// SearchMovies fetches one page of title search results.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*MoviePage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))

	var result MoviePage
	if err := c.getJSON(ctx, "/search/movie", params, &result); err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	return &result, nil
}

// MovieDetails fetches one movie by provider id.
func (c *Client) MovieDetails(ctx context.Context, id int) (*MovieDetails, error) {
	var result MovieDetails
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MovieCredits fetches the cast and crew list for a movie.
func (c *Client) MovieCredits(ctx context.Context, id int) (*Credits, error) {
	var result Credits
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/credits", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MovieVideos fetches the video entries (trailers, teasers, clips) for a movie.
func (c *Client) MovieVideos(ctx context.Context, id int) (*VideoList, error) {
	var result VideoList
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/videos", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenreNames returns the full genre catalog as an id-to-name map. The
// catalog is fetched once and cached for the process lifetime; it changes on
// the provider side roughly never.
func (c *Client) GenreNames(ctx context.Context) (map[int]string, error) {
	c.mu.RLock()
	if c.genres != nil {
		genres := c.genres
		c.mu.RUnlock()
		return genres, nil
	}
	c.mu.RUnlock()

	var response genreListResponse
	if err := c.getJSON(ctx, "/genre/movie/list", nil, &response); err != nil {
		return nil, fmt.Errorf("failed to get genre list: %w", err)
	}

	result := make(map[int]string, len(response.Genres))
	for _, g := range response.Genres {
		result[g.ID] = g.Name
	}

	c.mu.Lock()
	c.genres = result
	c.mu.Unlock()

	return result, nil
}

// PosterURL resolves a provider poster path to an absolute image URL.
// An empty path resolves to an empty string; the catalog layer substitutes
// its placeholder.
func (c *Client) PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return c.imageBaseURL + posterPath
}

// Ping verifies the provider is reachable and the credentials are accepted.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.GenreNames(ctx)
	return err
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, target any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", slog.Any("error", err))
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("tmdb: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
