package usecase_acquire

// Category labels the host can pick, mapped to TMDB genre ids.
// Plain data on purpose; no dispatch lives here.
var genreIDs = map[string]int{
	"Action":          28,
	"Adventure":       12,
	"Animation":       16,
	"Comedy":          35,
	"Crime":           80,
	"Documentary":     99,
	"Drama":           18,
	"Family":          10751,
	"Fantasy":         14,
	"Science Fiction": 878,
	"History":         36,
	"Horror":          27,
	"Music":           10402,
	"Mystery":         9648,
	"Romance":         10749,
	"Thriller":        53,
	"War":             10752,
	"Western":         37,
}

// Categories returns the selectable category labels.
func Categories() []string {
	out := make([]string, 0, len(genreIDs))
	for label := range genreIDs {
		out = append(out, label)
	}
	return out
}

func GenreID(category string) (int, bool) {
	id, ok := genreIDs[category]
	return id, ok
}
