package hub

import (
	"encoding/json"
	"errors"

	"github.com/pdrhp/matchmovie/internal/model"
)

func decode(raw json.RawMessage, v any) error {
	if raw == nil {
		return errors.New("empty payload")
	}
	return json.Unmarshal(raw, v)
}

// apply reconciles one inbound event into the session mirror. Events are
// applied strictly in delivery order; no reordering or coalescing.
func (c *Client) apply(ev Event) {
	c.mu.Lock()

	switch ev.Type {
	case EventConnected:
		var p ConnectedPayload
		if err := decode(ev.Payload, &p); err == nil {
			c.connectionID = p.ConnectionID
		}

	case EventSessionCreated:
		c.applySessionCreated(ev.Payload)

	case EventSessionJoined:
		c.applySessionJoined(ev.Payload)

	case EventParticipantJoined, EventParticipantLeft:
		c.applyParticipantUpdate(ev)

	case EventSessionConfigured:
		c.applySessionConfigured(ev.Payload)

	case EventMoviesLoading:
		if c.session != nil {
			c.advanceStatus(model.StatusLoadingMovies)
		}

	case EventMatchingStarted:
		c.applyMatchingStarted(ev.Payload)

	case EventMovieVoted:
		c.applyMovieVoted(ev.Payload)

	case EventSessionFinished:
		c.applySessionFinished(ev.Payload)

	case EventSessionClosed:
		var msg string
		_ = decode(ev.Payload, &msg)
		c.session = nil
		c.finishSent = false
		if msg != "" {
			c.lastErr = errors.New(msg)
		}

	case EventError:
		var msg string
		if err := decode(ev.Payload, &msg); err == nil && msg != "" {
			c.lastErr = errors.New(msg)
		}

	default:
		c.logger.Warn("unknown hub event", "type", ev.Type)
	}

	c.mu.Unlock()
	c.signal()
}

func (c *Client) applySessionCreated(raw json.RawMessage) {
	var p SessionCreatedPayload
	if err := decode(raw, &p); err != nil {
		c.logger.Error("bad SessionCreated payload", "error", err)
		return
	}

	hostID := ""
	if p.IsHost {
		hostID = c.connectionID
	}
	c.session = &model.Session{
		Code:              model.NormalizeCode(p.Code),
		HostParticipantID: hostID,
		Settings: model.Settings{
			Categories:           []string{},
			RoundDurationSeconds: model.MinRoundDurationSeconds,
			MaxParticipants:      model.MaxParticipants,
		},
		Status:           model.StatusWaitingToStart,
		Participants:     map[string]string{c.connectionID: p.UserName},
		ParticipantCount: 1,
		Movies:           []model.Movie{},
		Votes:            map[string][]int{},
	}
	c.finishSent = false
	c.lastErr = nil
}

// SessionJoined carries the authoritative full snapshot for a newly
// joined participant: replace, never merge.
func (c *Client) applySessionJoined(raw json.RawMessage) {
	var s model.Session
	if err := decode(raw, &s); err != nil {
		c.logger.Error("bad SessionJoined payload", "error", err)
		return
	}
	s.Code = model.NormalizeCode(s.Code)
	if s.Participants == nil {
		s.Participants = map[string]string{}
	}
	if s.Votes == nil {
		s.Votes = map[string][]int{}
	}
	c.session = &s
	c.finishSent = false
	c.lastErr = nil
}

// Roster updates only touch the participant map and count, never
// status, movies or votes.
func (c *Client) applyParticipantUpdate(ev Event) {
	if c.session == nil {
		return
	}
	var p ParticipantUpdatePayload
	if err := decode(ev.Payload, &p); err != nil {
		c.logger.Error("bad participant update payload", "type", ev.Type, "error", err)
		return
	}
	if p.ParticipantNames != nil {
		c.session.Participants = p.ParticipantNames
	}
	c.session.ParticipantCount = p.ParticipantCount
}

func (c *Client) applySessionConfigured(raw json.RawMessage) {
	if c.session == nil {
		return
	}
	var settings model.Settings
	if err := decode(raw, &settings); err != nil {
		c.logger.Error("bad SessionConfigured payload", "error", err)
		return
	}
	// Server echo is authoritative; local edits were provisional.
	c.session.Settings = settings
}

func (c *Client) applyMatchingStarted(raw json.RawMessage) {
	var s model.Session
	if err := decode(raw, &s); err != nil {
		c.logger.Error("bad MatchingStarted payload", "error", err)
		return
	}
	s.Code = model.NormalizeCode(s.Code)
	if s.Participants == nil {
		s.Participants = map[string]string{}
	}
	if s.Votes == nil {
		s.Votes = map[string][]int{}
	}
	c.session = &s
	// The candidate list is frozen from this point on.
	c.session.Status = model.StatusInProgress
	c.lastErr = nil
}

// The votes mapping is replaced wholesale: the server is the single
// source of truth for vote state.
func (c *Client) applyMovieVoted(raw json.RawMessage) {
	if c.session == nil {
		return
	}
	var p MovieVotedPayload
	if err := decode(raw, &p); err != nil {
		c.logger.Error("bad MovieVoted payload", "error", err)
		return
	}
	if p.ParticipantsVotes == nil {
		p.ParticipantsVotes = map[string][]int{}
	}
	c.session.Votes = p.ParticipantsVotes
}

func (c *Client) applySessionFinished(raw json.RawMessage) {
	if c.session == nil {
		return
	}
	var p SessionFinishedPayload
	if err := decode(raw, &p); err != nil {
		c.logger.Error("bad SessionFinished payload", "error", err)
		return
	}
	if p.ParticipantVotes != nil {
		c.session.Votes = p.ParticipantVotes
	}
	c.advanceStatus(model.StatusFinished)
	c.session.Finalized = &model.FinalizedResult{
		TotalParticipants: p.TotalParticipants,
		MovieResults:      p.MovieResults,
		Analysis:          p.Analysis,
	}
}

// advanceStatus moves the lifecycle forward only; a stale or replayed
// event can never regress it.
func (c *Client) advanceStatus(next model.Status) {
	if c.session == nil || next < c.session.Status {
		return
	}
	c.session.Status = next
}

// MarkLoadingMovies is the one allowed optimistic local transition: the
// host flips to LoadingMovies before the server broadcast echoes it.
func (c *Client) MarkLoadingMovies() {
	c.mu.Lock()
	if c.session != nil {
		c.advanceStatus(model.StatusLoadingMovies)
	}
	c.mu.Unlock()
	c.signal()
}
