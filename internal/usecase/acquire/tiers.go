package usecase_acquire

// tier is one relaxation step of the catalog query. Tiers are tried in
// order; each widens the net until enough candidates come back.
type tier struct {
	name           string
	minVoteCount   int
	minVoteAverage float64
	minReleaseDate string
	languages      []string
	maxPage        int
}

var tiers = []tier{
	{
		name:           "strict",
		minVoteCount:   1000,
		minVoteAverage: 7.0,
		minReleaseDate: "2000-01-01",
		languages:      []string{"en", "pt"},
		maxPage:        5,
	},
	{
		name:           "medium",
		minVoteCount:   500,
		minVoteAverage: 6.0,
		minReleaseDate: "1990-01-01",
		languages:      []string{"en", "pt", "es", "fr"},
		maxPage:        3,
	},
	{
		name:           "loose",
		minVoteCount:   100,
		minVoteAverage: 5.0,
		minReleaseDate: "1970-01-01",
		languages:      nil,
		maxPage:        1,
	},
}

// Random sort keys keep repeated sessions from surfacing the same
// candidate set for a category.
var sortKeys = []string{
	"popularity.desc",
	"vote_average.desc",
	"primary_release_date.desc",
	"revenue.desc",
}
