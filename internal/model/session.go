package model

import "strings"

type Status int

const (
	StatusWaitingToStart Status = iota
	StatusLoadingMovies
	StatusInProgress
	StatusLoadingFinalizedData
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusWaitingToStart:
		return "waiting_to_start"
	case StatusLoadingMovies:
		return "loading_movies"
	case StatusInProgress:
		return "in_progress"
	case StatusLoadingFinalizedData:
		return "loading_finalized_data"
	case StatusFinished:
		return "finished"
	}
	return "unknown"
}

const (
	MinRoundDurationSeconds = 30
	MaxRoundDurationSeconds = 300
	MinParticipants         = 2
	MaxParticipants         = 10
)

type Settings struct {
	Categories           []string `json:"categories"`
	RoundDurationSeconds int      `json:"roundDurationSeconds"`
	MaxParticipants      int      `json:"maxParticipants"`
}

// Session mirrors the server-declared room state. The hub is the single
// source of truth; everything here is a reconciled copy.
type Session struct {
	Code              string            `json:"code"`
	HostParticipantID string            `json:"hostParticipantId"`
	Settings          Settings          `json:"settings"`
	Status            Status            `json:"status"`
	Participants      map[string]string `json:"participantNames"`
	ParticipantCount  int               `json:"participantCount"`
	Movies            []Movie           `json:"movies"`
	Votes             map[string][]int  `json:"participantVotes"`
	Finalized         *FinalizedResult  `json:"finalizedData,omitempty"`
}

// FinalizedResult is populated only once the session reaches Finished.
type FinalizedResult struct {
	TotalParticipants int               `json:"totalParticipants"`
	MovieResults      []MovieVoteResult `json:"movieResults"`
	Analysis          *Analysis         `json:"analysis,omitempty"`
}

type MovieVoteResult struct {
	Movie     Movie `json:"movie"`
	VoteCount int   `json:"voteCount"`
}

// NormalizeCode upper-cases a session code for comparison and display.
// Codes are at most 6 characters and case-insensitive on the wire.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *Session) IsHost(participantID string) bool {
	return participantID != "" && s.HostParticipantID == participantID
}

func (s *Session) HasMovie(movieID int) bool {
	for _, m := range s.Movies {
		if m.ID == movieID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so readers never alias the reconciler's maps.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Participants = make(map[string]string, len(s.Participants))
	for id, name := range s.Participants {
		cp.Participants[id] = name
	}
	cp.Movies = append([]Movie(nil), s.Movies...)
	cp.Votes = make(map[string][]int, len(s.Votes))
	for id, votes := range s.Votes {
		cp.Votes[id] = append([]int(nil), votes...)
	}
	if s.Finalized != nil {
		fin := *s.Finalized
		fin.MovieResults = append([]MovieVoteResult(nil), s.Finalized.MovieResults...)
		cp.Finalized = &fin
	}
	return &cp
}
