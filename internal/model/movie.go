package model

// Movie is a voting candidate sourced from the upstream catalog.
// IDs are upstream catalog ids, unique within a session's movie list.
type Movie struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	PosterPath  string   `json:"posterPath"`
	ReleaseDate string   `json:"releaseDate"`
	VoteAverage float64  `json:"voteAverage"`
	Genres      []string `json:"genres"`
}
