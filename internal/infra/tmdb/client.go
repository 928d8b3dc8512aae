package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is the TMDB API client used by the acquisition pipeline.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

func NewClient(token, baseURL string) *Client {
	return &Client{
		token:   token,
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// DiscoverFilter holds the query parameters for one discover call.
// Zero values mean "do not send the parameter".
type DiscoverFilter struct {
	GenreID          int
	MinVoteCount     int
	MinVoteAverage   float64
	MinReleaseDate   string // YYYY-MM-DD
	OriginalLanguage []string
	SortBy           string
	Page             int
}

type DiscoverResponse struct {
	Page         int           `json:"page"`
	Results      []DiscoverHit `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// DiscoverHit is a single movie row from the discover endpoint.
type DiscoverHit struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	GenreIDs         []int   `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
}

// Discover fetches one page of /discover/movie with the given filter.
func (c *Client) Discover(ctx context.Context, f DiscoverFilter) (*DiscoverResponse, error) {
	q := url.Values{}
	if f.GenreID > 0 {
		q.Set("with_genres", strconv.Itoa(f.GenreID))
	}
	if f.MinVoteCount > 0 {
		q.Set("vote_count.gte", strconv.Itoa(f.MinVoteCount))
	}
	if f.MinVoteAverage > 0 {
		q.Set("vote_average.gte", strconv.FormatFloat(f.MinVoteAverage, 'f', 1, 64))
	}
	if f.MinReleaseDate != "" {
		q.Set("primary_release_date.gte", f.MinReleaseDate)
	}
	if len(f.OriginalLanguage) > 0 {
		q.Set("with_original_language", strings.Join(f.OriginalLanguage, "|"))
	}
	if f.SortBy != "" {
		q.Set("sort_by", f.SortBy)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}

	resp, err := c.doGet(ctx, c.baseURL+"/discover/movie?"+q.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result DiscoverResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode discover response: %w", err)
	}
	return &result, nil
}

func (c *Client) doGet(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("TMDB API returned status %d: %s", resp.StatusCode, string(body))
	}
	return resp, nil
}
