package catalog

import (
	"math"
	"strconv"

	"github.com/cinelog/cinelog/lib/tmdb"
	"github.com/cinelog/cinelog/models"
)

const (
	// placeholderPoster stands in for movies the provider has no poster
	// for, so PosterURL is always a usable non-empty string.
	placeholderPoster = "/placeholder-poster.jpg"

	// unknownDirector is the sentinel used when the credits list carries
	// no entry with the Director job.
	unknownDirector = "Unknown"

	youtubeWatchURL = "https://www.youtube.com/watch?v="
)

// normalizeSummary builds a canonical Movie from a list entry. List entries
// reference genres by id, so names are resolved eagerly against the cached
// genre catalog; ids missing from the catalog are dropped. List entries
// carry no credits, so the director stays Unknown.
func (c *Catalog) normalizeSummary(m tmdb.MovieSummary, genres map[int]string, videos []tmdb.Video) models.Movie {
	return models.Movie{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Overview,
		PosterURL:   c.posterURL(m.PosterPath),
		Year:        releaseYear(m.ReleaseDate),
		Director:    unknownDirector,
		Genres:      resolveGenres(m.GenreIDs, genres),
		TrailerURL:  trailerURL("", videos),
		VoteAverage: voteScore(m.VoteAverage),
	}
}

// normalizeDetails builds a canonical Movie from a detail response plus its
// credits and videos. Detail responses already carry resolved genre objects.
func (c *Catalog) normalizeDetails(d *tmdb.MovieDetails, credits *tmdb.Credits, videos []tmdb.Video) models.Movie {
	genres := make([]models.Genre, 0, len(d.Genres))
	for _, g := range d.Genres {
		genres = append(genres, models.Genre{ID: g.ID, Name: g.Name})
	}

	return models.Movie{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Overview,
		PosterURL:   c.posterURL(d.PosterPath),
		Year:        releaseYear(d.ReleaseDate),
		Director:    directorName(credits.Crew),
		Genres:      genres,
		TrailerURL:  trailerURL("", videos),
		VoteAverage: voteScore(d.VoteAverage),
	}
}

func (c *Catalog) posterURL(posterPath string) string {
	if u := c.client.PosterURL(posterPath); u != "" {
		return u
	}
	return placeholderPoster
}

// releaseYear extracts the four-digit calendar year from a YYYY-MM-DD
// release date. Absent or malformed dates yield 0.
func releaseYear(releaseDate string) int {
	if len(releaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// directorName returns the name of the first crew entry whose job is
// exactly "Director", in provider order.
func directorName(crew []tmdb.CrewMember) string {
	for _, member := range crew {
		if member.Job == "Director" {
			return member.Name
		}
	}
	return unknownDirector
}

// resolveGenres maps genre id references to resolved genres, preserving
// provider order. Ids with no catalog entry are dropped.
func resolveGenres(ids []int, catalog map[int]string) []models.Genre {
	genres := make([]models.Genre, 0, len(ids))
	for _, id := range ids {
		name, ok := catalog[id]
		if !ok {
			continue
		}
		genres = append(genres, models.Genre{ID: id, Name: name})
	}
	return genres
}

// trailerURL resolves the watch URL for a movie's trailer. A directly
// supplied key wins over anything discovered in the video list; otherwise
// the first YouTube entry of type Trailer is used. Returns nil when neither
// exists.
func trailerURL(key string, videos []tmdb.Video) *string {
	if key == "" {
		for _, v := range videos {
			if v.Type == "Trailer" && v.Site == "YouTube" {
				key = v.Key
				break
			}
		}
	}
	if key == "" {
		return nil
	}
	u := youtubeWatchURL + key
	return &u
}

// voteScore rescales the provider's 0.0-10.0 average to a 0-100 integer.
func voteScore(average float64) int {
	score := int(math.Round(average * 10))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
