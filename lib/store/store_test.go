package store

import (
	"context"
	"testing"
	"time"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/lib/db"
	"github.com/cinelog/cinelog/models"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	logger := slog.Default()

	gdb, err := db.Open(":memory:", logger)
	require.NoError(t, err)

	// An in-memory database exists per connection; keep the pool at one
	// so every query sees the migrated schema.
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.RunMigrations(context.Background(), gdb, logger))

	return New(gdb)
}

func TestToggleWatchlistIsInvolution(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entry, added, err := s.ToggleWatchlist(ctx, 3, 7)
	require.NoError(t, err)
	assert.True(t, added)
	require.NotNil(t, entry)
	assert.Equal(t, uint(3), entry.UserID)
	assert.Equal(t, 7, entry.MovieID)
	assert.False(t, entry.AddedAt.IsZero())

	items, err := s.Watchlist(ctx, 3)
	require.NoError(t, err)
	require.Len(t, items, 1)

	entry, added, err = s.ToggleWatchlist(ctx, 3, 7)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Nil(t, entry)

	items, err = s.Watchlist(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestToggleWatchlistNeverDuplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, added, err := s.ToggleWatchlist(ctx, 3, 7)
	require.NoError(t, err)
	assert.True(t, added)

	// Toggling a different pair does not interfere.
	_, added, err = s.ToggleWatchlist(ctx, 3, 8)
	require.NoError(t, err)
	assert.True(t, added)
	_, added, err = s.ToggleWatchlist(ctx, 4, 7)
	require.NoError(t, err)
	assert.True(t, added)

	items, err := s.Watchlist(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestReviewsOrderedByCreatedAtDesc(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	// Insert out of chronological order on purpose.
	for _, offset := range []time.Duration{time.Hour, 3 * time.Hour, 2 * time.Hour} {
		review := models.Review{
			UserID:    3,
			MovieID:   7,
			Content:   "written at +" + offset.String(),
			CreatedAt: base.Add(offset),
		}
		require.NoError(t, s.CreateReview(ctx, &review))
	}

	reviews, err := s.ReviewsForMovie(ctx, 7)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	for i := 1; i < len(reviews); i++ {
		assert.False(t, reviews[i].CreatedAt.After(reviews[i-1].CreatedAt),
			"reviews must be in non-increasing createdAt order")
	}

	byUser, err := s.ReviewsForUser(ctx, 3)
	require.NoError(t, err)
	require.Len(t, byUser, 3)
	assert.Equal(t, reviews[0].ID, byUser[0].ID)
}

func TestCreateRatingAppends(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := models.Rating{UserID: 3, MovieID: 7, Rating: 4}
	require.NoError(t, s.CreateRating(ctx, &first))
	assert.NotZero(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	// Re-rating the same movie inserts a second row.
	second := models.Rating{UserID: 3, MovieID: 7, Rating: 2}
	require.NoError(t, s.CreateRating(ctx, &second))

	ratings, err := s.RatingsForMovie(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, ratings, 2)
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUser(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetUserByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAndFetchUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := models.User{Username: "casey", Password: "hash", AvatarURL: "https://example.com/a.png"}
	require.NoError(t, s.CreateUser(ctx, &user))
	require.NotZero(t, user.ID)

	got, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "casey", got.Username)

	byName, err := s.GetUserByUsername(ctx, "casey")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	// Usernames are unique.
	dup := models.User{Username: "casey", Password: "hash"}
	assert.Error(t, s.CreateUser(ctx, &dup))
}
