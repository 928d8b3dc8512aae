package usecase_tally

import (
	"sort"

	"github.com/pdrhp/matchmovie/internal/model"
)

// fallbackName covers votes from connections that never reported a
// display name.
const fallbackName = "Participant"

type MovieResult struct {
	Movie               model.Movie
	VoteCount           int
	MatchedParticipants []string
}

// Compute folds the authoritative vote map into per-movie match counts
// with participant attribution. Pure and read-only: it derives from the
// session snapshot and owns no state. Movies are ranked by descending
// match count; ties keep the original list order.
func Compute(s *model.Session) []MovieResult {
	if s == nil {
		return nil
	}

	voterIDs := make([]string, 0, len(s.Votes))
	for id := range s.Votes {
		voterIDs = append(voterIDs, id)
	}
	sort.Strings(voterIDs)

	results := make([]MovieResult, 0, len(s.Movies))
	for _, movie := range s.Movies {
		var matched []string
		for _, voterID := range voterIDs {
			if !contains(s.Votes[voterID], movie.ID) {
				continue
			}
			matched = append(matched, displayName(s, voterID))
		}
		results = append(results, MovieResult{
			Movie:               movie,
			VoteCount:           len(matched),
			MatchedParticipants: matched,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].VoteCount > results[j].VoteCount
	})
	return results
}

// Top returns the best ranked movie with at least one match.
func Top(results []MovieResult) (MovieResult, bool) {
	if len(results) == 0 || results[0].VoteCount == 0 {
		return MovieResult{}, false
	}
	return results[0], true
}

func displayName(s *model.Session, participantID string) string {
	if participantID == s.HostParticipantID {
		if name, ok := s.Participants[s.HostParticipantID]; ok {
			return name
		}
	}
	if name, ok := s.Participants[participantID]; ok {
		return name
	}
	return fallbackName
}

func contains(votes []int, movieID int) bool {
	for _, id := range votes {
		if id == movieID {
			return true
		}
	}
	return false
}
