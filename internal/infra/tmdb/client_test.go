package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverBuildsFilterQuery(t *testing.T) {
	var gotQuery map[string][]string
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/discover/movie", r.URL.Path)
		w.Write([]byte(`{"page":2,"results":[],"total_pages":10,"total_results":200}`))
	}))
	defer server.Close()

	client := NewClient("test-token", server.URL)
	resp, err := client.Discover(context.Background(), DiscoverFilter{
		GenreID:          28,
		MinVoteCount:     1000,
		MinVoteAverage:   7.0,
		MinReleaseDate:   "2000-01-01",
		OriginalLanguage: []string{"en", "pt"},
		SortBy:           "popularity.desc",
		Page:             2,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"28"}, gotQuery["with_genres"])
	assert.Equal(t, []string{"1000"}, gotQuery["vote_count.gte"])
	assert.Equal(t, []string{"7.0"}, gotQuery["vote_average.gte"])
	assert.Equal(t, []string{"2000-01-01"}, gotQuery["primary_release_date.gte"])
	assert.Equal(t, []string{"en|pt"}, gotQuery["with_original_language"])
	assert.Equal(t, []string{"popularity.desc"}, gotQuery["sort_by"])
	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 10, resp.TotalPages)
}

func TestDiscoverOmitsZeroValueFilters(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"page":1,"results":[]}`))
	}))
	defer server.Close()

	client := NewClient("", server.URL)
	_, err := client.Discover(context.Background(), DiscoverFilter{GenreID: 18})
	require.NoError(t, err)

	assert.Equal(t, []string{"18"}, gotQuery["with_genres"])
	assert.NotContains(t, gotQuery, "vote_count.gte")
	assert.NotContains(t, gotQuery, "vote_average.gte")
	assert.NotContains(t, gotQuery, "primary_release_date.gte")
	assert.NotContains(t, gotQuery, "with_original_language")
	assert.NotContains(t, gotQuery, "sort_by")
	assert.NotContains(t, gotQuery, "page")
}

func TestDiscoverDecodesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"page": 1,
			"results": [{
				"id": 550,
				"title": "Fight Club",
				"overview": "An insomniac office worker...",
				"poster_path": "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
				"release_date": "1999-10-15",
				"vote_average": 8.4,
				"vote_count": 26280,
				"genre_ids": [18],
				"original_language": "en"
			}],
			"total_pages": 1,
			"total_results": 1
		}`))
	}))
	defer server.Close()

	client := NewClient("token", server.URL)
	resp, err := client.Discover(context.Background(), DiscoverFilter{GenreID: 18})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	hit := resp.Results[0]
	assert.Equal(t, 550, hit.ID)
	assert.Equal(t, "Fight Club", hit.Title)
	assert.Equal(t, "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg", hit.PosterPath)
	assert.Equal(t, "1999-10-15", hit.ReleaseDate)
	assert.InDelta(t, 8.4, hit.VoteAverage, 0.001)
	assert.Equal(t, []int{18}, hit.GenreIDs)
}

func TestDiscoverNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status_message":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("bad-token", server.URL)
	_, err := client.Discover(context.Background(), DiscoverFilter{GenreID: 18})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestPosterURL(t *testing.T) {
	assert.Equal(t,
		"https://image.tmdb.org/t/p/w500/abc.jpg",
		PosterURL("/abc.jpg", PosterLarge))
	assert.Equal(t,
		"https://image.tmdb.org/t/p/original/abc.jpg",
		PosterURL("/abc.jpg", PosterOriginal))
	assert.Empty(t, PosterURL("", PosterLarge))
}
