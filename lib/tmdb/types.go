package tmdb

// Response shapes for each provider endpoint we consume. Decoding into fixed
// structs at the boundary keeps normalization code off of untyped maps.

// MovieSummary is one entry of a paged list response (popular, search).
// List responses reference genres by id only.
type MovieSummary struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	GenreIDs    []int   `json:"genre_ids"`
	VoteAverage float64 `json:"vote_average"`
}

// MoviePage is the envelope of /movie/popular and /search/movie.
type MoviePage struct {
	Page         int            `json:"page"`
	Results      []MovieSummary `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// MovieDetails is the /movie/{id} response. Unlike list entries it carries
// fully resolved genre objects.
type MovieDetails struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Overview    string     `json:"overview"`
	PosterPath  string     `json:"poster_path"`
	ReleaseDate string     `json:"release_date"`
	Genres      []GenreRef `json:"genres"`
	VoteAverage float64    `json:"vote_average"`
}

// GenreRef is a genre as the provider represents it.
type GenreRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Credits is the /movie/{id}/credits response, reduced to the crew list we
// read the director from.
type Credits struct {
	ID   int          `json:"id"`
	Crew []CrewMember `json:"crew"`
}

// CrewMember is one crew credit.
type CrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// VideoList is the /movie/{id}/videos response.
type VideoList struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}

// Video is one video entry. Trailers we care about have Site "YouTube" and
// Type "Trailer"; Key is the YouTube video id.
type Video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type genreListResponse struct {
	Genres []GenreRef `json:"genres"`
}
