// Package store is the persistence layer for user-generated content: users,
// ratings, reviews and watchlists. Movies are not stored here; they are a
// read-through projection served by the catalog package.
//
// The Store interface exists so handlers receive an explicitly injected
// persistence handle and tests can substitute a fake per test case.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/cinelog/cinelog/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: record not found")

// Store is the persistence contract consumed by the API layer.
type Store interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error

	CreateRating(ctx context.Context, rating *models.Rating) error
	RatingsForMovie(ctx context.Context, movieID int) ([]models.Rating, error)

	CreateReview(ctx context.Context, review *models.Review) error
	ReviewsForMovie(ctx context.Context, movieID int) ([]models.Review, error)
	ReviewsForUser(ctx context.Context, userID uint) ([]models.Review, error)

	Watchlist(ctx context.Context, userID uint) ([]models.WatchlistItem, error)
	ToggleWatchlist(ctx context.Context, userID uint, movieID int) (*models.WatchlistItem, bool, error)
}

// GormStore implements Store on an injected gorm handle.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

// New wraps the given database handle.
func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// GetUser fetches a user by id.
func (s *GormStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUserByUsername fetches a user by unique username.
func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

// CreateUser inserts a new user row.
func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// CreateRating appends a rating row. A second rating by the same user for
// the same movie inserts a new row rather than updating the old one.
func (s *GormStore) CreateRating(ctx context.Context, rating *models.Rating) error {
	if err := s.db.WithContext(ctx).Create(rating).Error; err != nil {
		return fmt.Errorf("failed to create rating: %w", err)
	}
	return nil
}

// RatingsForMovie lists all ratings for a movie, most recent first.
func (s *GormStore) RatingsForMovie(ctx context.Context, movieID int) ([]models.Rating, error) {
	ratings := []models.Rating{}
	if err := s.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Order("created_at DESC, id DESC").
		Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return ratings, nil
}

// CreateReview appends a review row.
func (s *GormStore) CreateReview(ctx context.Context, review *models.Review) error {
	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// ReviewsForMovie lists all reviews for a movie in non-increasing createdAt
// order. The ordering is a contract, not incidental; the id tiebreak keeps
// it stable for rows created in the same instant.
func (s *GormStore) ReviewsForMovie(ctx context.Context, movieID int) ([]models.Review, error) {
	reviews := []models.Review{}
	if err := s.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// ReviewsForUser lists all reviews written by a user, most recent first.
func (s *GormStore) ReviewsForUser(ctx context.Context, userID uint) ([]models.Review, error) {
	reviews := []models.Review{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list user reviews: %w", err)
	}
	return reviews, nil
}

// Watchlist lists a user's watchlist entries, most recently added first.
func (s *GormStore) Watchlist(ctx context.Context, userID uint) ([]models.WatchlistItem, error) {
	items := []models.WatchlistItem{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	return items, nil
}

// ToggleWatchlist flips membership of (userID, movieID). If the pair exists
// the entry is removed and (nil, false) returned; otherwise a new entry is
// created and returned with true. Delete-first inside a transaction plus the
// unique (user_id, movie_id) index keeps concurrent duplicate toggles from
// ever producing two rows.
func (s *GormStore) ToggleWatchlist(ctx context.Context, userID uint, movieID int) (*models.WatchlistItem, bool, error) {
	var (
		entry *models.WatchlistItem
		added bool
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND movie_id = ?", userID, movieID).
			Delete(&models.WatchlistItem{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		item := models.WatchlistItem{
			UserID:  userID,
			MovieID: movieID,
			AddedAt: time.Now().UTC(),
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		entry = &item
		added = true
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			// A concurrent toggle inserted the pair first. The pair is
			// present either way; report the surviving row as the result.
			var existing models.WatchlistItem
			if ferr := s.db.WithContext(ctx).
				Where("user_id = ? AND movie_id = ?", userID, movieID).
				First(&existing).Error; ferr == nil {
				return &existing, true, nil
			}
		}
		return nil, false, fmt.Errorf("failed to toggle watchlist: %w", err)
	}

	return entry, added, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
