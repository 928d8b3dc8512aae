package usecase_match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pdrhp/matchmovie/internal/model"
)

var (
	ErrNoSession    = errors.New("no active session")
	ErrNotHost      = errors.New("only the host can start matching")
	ErrNoCategories = errors.New("no categories configured")
	ErrAcquisition  = errors.New("could not prepare candidate pool")
)

// Pool produces the candidate movies for the configured categories.
type Pool interface {
	FetchPool(ctx context.Context, categories []string) ([]model.Movie, error)
}

// Hub is the slice of the session client the flow needs.
type Hub interface {
	Session() *model.Session
	IsHost() bool
	MarkLoadingMovies()
	SubmitMovies(ctx context.Context, code string, movies []model.Movie) error
	StartMatching(ctx context.Context, code string) error
}

type Usecase struct {
	pool   Pool
	hub    Hub
	logger *slog.Logger
}

func New(pool Pool, hub Hub, logger *slog.Logger) *Usecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &Usecase{
		pool:   pool,
		hub:    hub,
		logger: logger,
	}
}

// Start runs the host-side matching flow: optimistic LoadingMovies,
// acquire the pool, submit it, then start. Submit completes before
// StartMatching is issued; the two are causally ordered.
func (u *Usecase) Start(ctx context.Context) error {
	s := u.hub.Session()
	if s == nil {
		return ErrNoSession
	}
	if !u.hub.IsHost() {
		return ErrNotHost
	}
	if len(s.Settings.Categories) == 0 {
		return ErrNoCategories
	}

	u.hub.MarkLoadingMovies()

	movies, err := u.pool.FetchPool(ctx, s.Settings.Categories)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAcquisition, err)
	}

	u.logger.Info("candidate pool ready",
		"session", s.Code,
		"categories", len(s.Settings.Categories),
		"movies", len(movies))

	if err := u.hub.SubmitMovies(ctx, s.Code, movies); err != nil {
		return fmt.Errorf("submit movies: %w", err)
	}
	if err := u.hub.StartMatching(ctx, s.Code); err != nil {
		return fmt.Errorf("start matching: %w", err)
	}
	return nil
}
