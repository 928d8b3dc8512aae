package usecase_acquire

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pdrhp/matchmovie/internal/infra/tmdb"
	"github.com/pdrhp/matchmovie/internal/model"
)

var (
	ErrUnknownCategory    = errors.New("unknown category")
	ErrNoCandidates       = errors.New("no candidates for category")
	ErrCatalogUnavailable = errors.New("could not fetch movies")
	ErrNoCategories       = errors.New("no categories selected")
)

// CandidatesPerCategory bounds the list returned for one category.
const CandidatesPerCategory = 10

const cacheTTL = 10 * time.Minute

type Catalog interface {
	Discover(ctx context.Context, f tmdb.DiscoverFilter) (*tmdb.DiscoverResponse, error)
}

// Cache is an optional byte cache for raw discover responses.
// The redis driver satisfies it; nil disables caching.
type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
}

type Usecase struct {
	catalog Catalog
	cache   Cache
	logger  *slog.Logger
}

func New(catalog Catalog, cache Cache, logger *slog.Logger) *Usecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &Usecase{
		catalog: catalog,
		cache:   cache,
		logger:  logger,
	}
}

// FetchForCategory walks the relaxation tiers until one yields at least
// CandidatesPerCategory results, then shuffles, truncates and tags the
// winning set. When no tier reaches the threshold the best non-empty set
// is used instead; an empty loose tier is an explicit failure.
func (u *Usecase) FetchForCategory(ctx context.Context, category string) ([]model.Movie, error) {
	genreID, ok := GenreID(category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	var best []tmdb.DiscoverHit
	for _, t := range tiers {
		hits, err := u.discoverTier(ctx, genreID, t)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
		}

		u.logger.Debug("tier queried",
			"category", category,
			"tier", t.name,
			"results", len(hits))

		if len(hits) >= CandidatesPerCategory {
			best = hits
			break
		}
		if len(hits) > len(best) {
			best = hits
		}
	}

	if len(best) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoCandidates, category)
	}

	return buildCandidates(best, category), nil
}

// FetchPool acquires candidates for every selected category and
// concatenates them into one de-duplicated pool. A failing category is
// logged and skipped; the pool only fails when it ends up empty.
func (u *Usecase) FetchPool(ctx context.Context, categories []string) ([]model.Movie, error) {
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}

	var (
		pool    []model.Movie
		seen    = make(map[int]bool)
		lastErr error
	)
	for _, category := range categories {
		movies, err := u.FetchForCategory(ctx, category)
		if err != nil {
			u.logger.Warn("category acquisition failed",
				"category", category,
				"error", err)
			lastErr = err
			continue
		}
		for _, m := range movies {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			pool = append(pool, m)
		}
	}

	if len(pool) == 0 {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, ErrNoCandidates
	}
	return pool, nil
}

func (u *Usecase) discoverTier(ctx context.Context, genreID int, t tier) ([]tmdb.DiscoverHit, error) {
	f := tmdb.DiscoverFilter{
		GenreID:          genreID,
		MinVoteCount:     t.minVoteCount,
		MinVoteAverage:   t.minVoteAverage,
		MinReleaseDate:   t.minReleaseDate,
		OriginalLanguage: t.languages,
		SortBy:           sortKeys[rand.Intn(len(sortKeys))],
		Page:             1 + rand.Intn(t.maxPage),
	}

	if cached := u.cachedHits(tierCacheKey(genreID, t.name, f)); cached != nil {
		return cached, nil
	}

	resp, err := u.catalog.Discover(ctx, f)
	if err != nil {
		return nil, err
	}

	// A random page can land past the last one; fall back to page 1.
	if len(resp.Results) == 0 && f.Page > 1 {
		f.Page = 1
		resp, err = u.catalog.Discover(ctx, f)
		if err != nil {
			return nil, err
		}
	}

	// Key by the page that actually produced the hits, not the page
	// originally drawn.
	u.storeHits(tierCacheKey(genreID, t.name, f), resp.Results)
	return resp.Results, nil
}

func tierCacheKey(genreID int, tierName string, f tmdb.DiscoverFilter) string {
	return fmt.Sprintf("%d:%s:%s:%d", genreID, tierName, f.SortBy, f.Page)
}

func (u *Usecase) cachedHits(key string) []tmdb.DiscoverHit {
	if u.cache == nil {
		return nil
	}
	raw, err := u.cache.Get(key)
	if err != nil || raw == nil {
		return nil
	}
	var hits []tmdb.DiscoverHit
	if err := json.Unmarshal(raw, &hits); err != nil {
		return nil
	}
	return hits
}

func (u *Usecase) storeHits(key string, hits []tmdb.DiscoverHit) {
	if u.cache == nil || len(hits) == 0 {
		return
	}
	raw, err := json.Marshal(hits)
	if err != nil {
		return
	}
	if err := u.cache.Set(key, raw, cacheTTL); err != nil {
		u.logger.Warn("catalog cache write failed", "error", err)
	}
}

// buildCandidates de-dups by id, applies a uniform Fisher-Yates shuffle
// and truncates to the per-category bound, tagging each movie with the
// requesting category.
func buildCandidates(hits []tmdb.DiscoverHit, category string) []model.Movie {
	seen := make(map[int]bool, len(hits))
	movies := make([]model.Movie, 0, len(hits))
	for _, h := range hits {
		if seen[h.ID] {
			continue
		}
		seen[h.ID] = true
		movies = append(movies, model.Movie{
			ID:          h.ID,
			Title:       h.Title,
			Overview:    h.Overview,
			PosterPath:  h.PosterPath,
			ReleaseDate: h.ReleaseDate,
			VoteAverage: h.VoteAverage,
			Genres:      []string{category},
		})
	}

	rand.Shuffle(len(movies), func(i, j int) {
		movies[i], movies[j] = movies[j], movies[i]
	})

	if len(movies) > CandidatesPerCategory {
		movies = movies[:CandidatesPerCategory]
	}
	return movies
}
