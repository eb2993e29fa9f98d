// Package models defines the records stored by cinelog and the canonical
// movie projection served to clients.
package models

import "time"

// User is a registered account. The password column holds a bcrypt hash and
// is never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Rating is a single 1-5 score a user gave a movie. Re-rating appends a new
// row; rows are never updated in place.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	MovieID   int       `gorm:"index;not null" json:"movieId"`
	Rating    int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// Review is user-written text about a movie. A user may review the same
// movie more than once.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	MovieID   int       `gorm:"index;not null" json:"movieId"`
	Content   string    `gorm:"not null" json:"content"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// WatchlistItem marks a movie a user wants to watch. The composite unique
// index guarantees at most one row per (user, movie) pair even under
// concurrent toggles.
type WatchlistItem struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	UserID  uint      `gorm:"uniqueIndex:idx_watchlist_user_movie;not null" json:"userId"`
	MovieID int       `gorm:"uniqueIndex:idx_watchlist_user_movie;not null" json:"movieId"`
	AddedAt time.Time `json:"addedAt"`
}

// Movie is the canonical catalog record. It is never persisted: every read
// is derived fresh from the provider. ID is the provider's numeric id and is
// never regenerated.
//
// PosterURL is always non-empty; a placeholder path stands in when the
// provider has no poster. Year is 0 when the release date is absent or
// malformed. Director is "Unknown" when the credits carry no Director entry.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	PosterURL   string  `json:"posterUrl"`
	Year        int     `json:"year"`
	Director    string  `json:"director"`
	Genres      []Genre `json:"genres"`
	TrailerURL  *string `json:"trailerUrl"`
	VoteAverage int     `json:"voteAverage"`
}

// Genre is a resolved genre reference on a Movie.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
