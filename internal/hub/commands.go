package hub

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdrhp/matchmovie/internal/model"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotHost    = errors.New("only the host may do this")
	ErrNoSession  = errors.New("no active session")
)

// Outbound intents. Each one validates locally first; a malformed intent
// never reaches the transport. While disconnected every command is
// rejected with ErrNotConnected.

func (c *Client) CreateSession(ctx context.Context, userName string) error {
	if userName == "" {
		return fmt.Errorf("%w: user name is required", ErrValidation)
	}
	return c.send(command{
		Type:    CommandCreateRoom,
		Payload: createRoomPayload{UserName: userName},
	})
}

func (c *Client) JoinSession(ctx context.Context, code, userName string) error {
	code = model.NormalizeCode(code)
	if code == "" {
		return fmt.Errorf("%w: session code is required", ErrValidation)
	}
	if userName == "" {
		return fmt.Errorf("%w: user name is required", ErrValidation)
	}
	return c.send(command{
		Type:    CommandJoinRoom,
		Payload: joinRoomPayload{Code: code, UserName: userName},
	})
}

func (c *Client) ConfigureSession(ctx context.Context, code string, settings model.Settings) error {
	if settings.RoundDurationSeconds < model.MinRoundDurationSeconds ||
		settings.RoundDurationSeconds > model.MaxRoundDurationSeconds {
		return fmt.Errorf("%w: round duration must be between %d and %d seconds",
			ErrValidation, model.MinRoundDurationSeconds, model.MaxRoundDurationSeconds)
	}
	if len(settings.Categories) == 0 {
		return fmt.Errorf("%w: select at least one category", ErrValidation)
	}
	if settings.MaxParticipants < model.MinParticipants ||
		settings.MaxParticipants > model.MaxParticipants {
		return fmt.Errorf("%w: max participants must be between %d and %d",
			ErrValidation, model.MinParticipants, model.MaxParticipants)
	}
	return c.send(command{
		Type:    CommandConfigureRoom,
		Payload: configureRoomPayload{Code: model.NormalizeCode(code), Settings: settings},
	})
}

func (c *Client) StartMatching(ctx context.Context, code string) error {
	c.mu.RLock()
	s := c.session
	isHost := s != nil && s.IsHost(c.connectionID)
	var categories int
	if s != nil {
		categories = len(s.Settings.Categories)
	}
	c.mu.RUnlock()

	if s == nil {
		return ErrNoSession
	}
	if !isHost {
		return ErrNotHost
	}
	if categories == 0 {
		return fmt.Errorf("%w: select at least one category", ErrValidation)
	}
	return c.send(command{
		Type:    CommandStartMatching,
		Payload: roomCodePayload{Code: model.NormalizeCode(code)},
	})
}

func (c *Client) SubmitMovies(ctx context.Context, code string, movies []model.Movie) error {
	if len(movies) == 0 {
		return fmt.Errorf("%w: movie list is empty", ErrValidation)
	}
	return c.send(command{
		Type:    CommandAddMovies,
		Payload: addMoviesPayload{Code: model.NormalizeCode(code), Movies: movies},
	})
}

// Vote is a silent no-op when the session is not in progress or the
// movie is not part of the frozen candidate list.
func (c *Client) Vote(ctx context.Context, code string, movieID int) error {
	c.mu.RLock()
	ok := c.session != nil &&
		c.session.Status == model.StatusInProgress &&
		c.session.HasMovie(movieID)
	c.mu.RUnlock()
	if !ok {
		return nil
	}
	return c.send(command{
		Type:    CommandVoteMovie,
		Payload: voteMoviePayload{Code: model.NormalizeCode(code), MovieID: movieID},
	})
}

// FinishSession is idempotent on the client side: the auto-finish timer
// racing a manual finish sends at most one command per session. The hub
// treats a repeated finish as a no-op anyway.
func (c *Client) FinishSession(ctx context.Context, code string) error {
	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		return ErrNoSession
	}
	if c.finishSent {
		c.mu.Unlock()
		return nil
	}
	c.finishSent = true
	c.mu.Unlock()

	err := c.send(command{
		Type:    CommandFinishRoom,
		Payload: roomCodePayload{Code: model.NormalizeCode(code)},
	})
	if err != nil {
		c.mu.Lock()
		c.finishSent = false
		c.mu.Unlock()
	}
	return err
}
