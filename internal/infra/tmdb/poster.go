package tmdb

const imageBaseURL = "https://image.tmdb.org/t/p/"

type PosterSize string

const (
	PosterSmall    PosterSize = "w185"
	PosterMedium   PosterSize = "w342"
	PosterLarge    PosterSize = "w500"
	PosterOriginal PosterSize = "original"
)

// PosterURL builds the full image URL for a poster path returned by the
// discover endpoint. Empty paths stay empty.
func PosterURL(path string, size PosterSize) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + string(size) + path
}
