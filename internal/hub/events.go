package hub

import (
	"encoding/json"

	"github.com/pdrhp/matchmovie/internal/model"
)

// Event is the JSON envelope for everything the hub pushes.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Inbound event names. Each one is registered exactly once per
// connection; the hub is trusted to emit them in a valid order.
const (
	EventConnected         = "Connected"
	EventSessionCreated    = "SessionCreated"
	EventSessionJoined     = "SessionJoined"
	EventParticipantJoined = "ParticipantJoined"
	EventParticipantLeft   = "ParticipantLeft"
	EventSessionConfigured = "SessionConfigured"
	EventMoviesLoading     = "MoviesLoading"
	EventMatchingStarted   = "MatchingStarted"
	EventMovieVoted        = "MovieVoted"
	EventSessionFinished   = "SessionFinished"
	EventSessionClosed     = "SessionClosed"
	EventError             = "Error"
)

type ConnectedPayload struct {
	ConnectionID string `json:"connectionId"`
}

type SessionCreatedPayload struct {
	Code     string `json:"code"`
	IsHost   bool   `json:"isHost"`
	UserName string `json:"userName"`
}

type ParticipantUpdatePayload struct {
	ParticipantCount int               `json:"participantCount"`
	IsHost           bool              `json:"isHost"`
	UserName         string            `json:"userName"`
	ParticipantNames map[string]string `json:"participantNames"`
}

type MoviesLoadingPayload struct {
	TotalMovies int `json:"totalMovies"`
}

type MovieVotedPayload struct {
	ParticipantID     string           `json:"participantId"`
	MovieID           int              `json:"movieId"`
	ParticipantsVotes map[string][]int `json:"participantsVotes"`
}

type SessionFinishedPayload struct {
	ParticipantVotes  map[string][]int        `json:"participantVotes"`
	MovieResults      []model.MovieVoteResult `json:"movieResults"`
	TotalParticipants int                     `json:"totalParticipants"`
	Analysis          *model.Analysis         `json:"analysis,omitempty"`
}

// Outbound command names.
const (
	CommandCreateRoom    = "CreateRoom"
	CommandJoinRoom      = "JoinRoom"
	CommandConfigureRoom = "ConfigureRoom"
	CommandStartMatching = "StartMatching"
	CommandAddMovies     = "AddMoviesToRoom"
	CommandVoteMovie     = "VoteMovie"
	CommandFinishRoom    = "FinishRoom"
)

type command struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type createRoomPayload struct {
	UserName string `json:"userName"`
}

type joinRoomPayload struct {
	Code     string `json:"code"`
	UserName string `json:"userName"`
}

type configureRoomPayload struct {
	Code     string         `json:"code"`
	Settings model.Settings `json:"settings"`
}

type roomCodePayload struct {
	Code string `json:"code"`
}

type addMoviesPayload struct {
	Code   string        `json:"code"`
	Movies []model.Movie `json:"movies"`
}

type voteMoviePayload struct {
	Code    string `json:"code"`
	MovieID int    `json:"movieId"`
}
