// Package catalog turns raw provider payloads into canonical Movie records.
// Movies are never persisted: every read goes through the provider and is
// normalized on the way out.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/cinelog/cinelog/lib/tmdb"
	"github.com/cinelog/cinelog/models"
)

// ErrNotFound is returned when the provider has no record for the requested
// movie, or the provider calls for it failed. Callers map it to a 404, never
// to a server error.
var ErrNotFound = errors.New("catalog: movie not found")

// videoFetchLimit bounds the per-movie video fan-out while building a list
// page.
const videoFetchLimit = 8

// Catalog is the movie normalizer. It owns no state beyond the provider
// client it reads through.
type Catalog struct {
	client *tmdb.Client
	logger *slog.Logger
}

// New creates a Catalog reading through the given provider client.
func New(client *tmdb.Client, logger *slog.Logger) *Catalog {
	return &Catalog{client: client, logger: logger}
}

// Popular returns one normalized page of the provider's popular listing.
func (c *Catalog) Popular(ctx context.Context, page int) ([]models.Movie, error) {
	result, err := c.client.PopularMovies(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular movies: %w", err)
	}
	return c.normalizePage(ctx, result.Results)
}

// Search returns one normalized page of title search results.
func (c *Catalog) Search(ctx context.Context, query string, page int) ([]models.Movie, error) {
	result, err := c.client.SearchMovies(ctx, query, page)
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	return c.normalizePage(ctx, result.Results)
}

// Get returns one normalized movie. The detail, credits and videos fetches
// run in parallel; if any of them fails the whole movie is treated as
// unavailable rather than returned partially filled.
func (c *Catalog) Get(ctx context.Context, id int) (*models.Movie, error) {
	var (
		details *tmdb.MovieDetails
		credits *tmdb.Credits
		videos  *tmdb.VideoList
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		details, err = c.client.MovieDetails(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		credits, err = c.client.MovieCredits(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		videos, err = c.client.MovieVideos(gctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		if !errors.Is(err, tmdb.ErrNotFound) {
			c.logger.Error("provider fetch failed",
				slog.Int("movie_id", id),
				slog.Any("error", err))
		}
		return nil, ErrNotFound
	}

	movie := c.normalizeDetails(details, credits, videos.Results)
	return &movie, nil
}

// normalizePage resolves the genre catalog once for the page, then fans out
// one videos fetch per movie. A failed video fetch for one movie substitutes
// an empty list and never fails the batch.
func (c *Catalog) normalizePage(ctx context.Context, summaries []tmdb.MovieSummary) ([]models.Movie, error) {
	genres, err := c.client.GenreNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve genres: %w", err)
	}

	videos := make([][]tmdb.Video, len(summaries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(videoFetchLimit)
	for i, summary := range summaries {
		i, summary := i, summary
		g.Go(func() error {
			list, err := c.client.MovieVideos(gctx, summary.ID)
			if err != nil {
				c.logger.Warn("video fetch failed, continuing without trailer",
					slog.Int("movie_id", summary.ID),
					slog.Any("error", err))
				return nil
			}
			videos[i] = list.Results
			return nil
		})
	}
	// Goroutines above only ever return nil; Wait is the join point.
	_ = g.Wait()

	movies := make([]models.Movie, 0, len(summaries))
	for i, summary := range summaries {
		movies = append(movies, c.normalizeSummary(summary, genres, videos[i]))
	}
	return movies, nil
}
