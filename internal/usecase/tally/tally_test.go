package usecase_tally

import (
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"

	"github.com/pdrhp/matchmovie/internal/model"
)

type TallyUnitSuite struct {
	suite.Suite
}

func finishedSession() *model.Session {
	return &model.Session{
		Code:              "ABC123",
		HostParticipantID: "p1",
		Status:            model.StatusFinished,
		Participants: map[string]string{
			"p1": "Alice",
			"p2": "Bob",
		},
		Movies: []model.Movie{
			{ID: 100, Title: "A"},
			{ID: 200, Title: "B"},
			{ID: 300, Title: "C"},
		},
		Votes: map[string][]int{
			"p1": {100, 200},
			"p2": {100},
		},
	}
}

func (s *TallyUnitSuite) TestCompute(t provider.T) {
	t.Run("Should rank movies by descending match count", func(t provider.T) {
		results := Compute(finishedSession())

		assert.Len(t, results, 3)
		assert.Equal(t, "A", results[0].Movie.Title)
		assert.Equal(t, 2, results[0].VoteCount)
		assert.Equal(t, "B", results[1].Movie.Title)
		assert.Equal(t, 1, results[1].VoteCount)
		assert.Equal(t, "C", results[2].Movie.Title)
		assert.Equal(t, 0, results[2].VoteCount)
	})

	t.Run("Should attribute matched participants by display name", func(t provider.T) {
		results := Compute(finishedSession())

		assert.ElementsMatch(t, []string{"Alice", "Bob"}, results[0].MatchedParticipants)
		assert.ElementsMatch(t, []string{"Alice"}, results[1].MatchedParticipants)
		assert.Empty(t, results[2].MatchedParticipants)
	})

	t.Run("Should substitute the host name for the host id", func(t provider.T) {
		session := finishedSession()
		session.Votes = map[string][]int{"p1": {300}}

		results := Compute(session)

		assert.Equal(t, "C", results[0].Movie.Title)
		assert.Equal(t, []string{"Alice"}, results[0].MatchedParticipants)
	})

	t.Run("Should fall back to a placeholder for unknown voters", func(t provider.T) {
		session := finishedSession()
		session.Votes["ghost"] = []int{100}

		results := Compute(session)

		assert.Contains(t, results[0].MatchedParticipants, "Participant")
	})

	t.Run("Should keep original list order on ties", func(t provider.T) {
		session := finishedSession()
		session.Votes = map[string][]int{"p1": {100, 200, 300}}

		results := Compute(session)

		assert.Equal(t, "A", results[0].Movie.Title)
		assert.Equal(t, "B", results[1].Movie.Title)
		assert.Equal(t, "C", results[2].Movie.Title)
	})

	t.Run("Should handle nil session", func(t provider.T) {
		assert.Nil(t, Compute(nil))
	})
}

func (s *TallyUnitSuite) TestTop(t provider.T) {
	t.Run("Should return the best ranked movie with matches", func(t provider.T) {
		top, ok := Top(Compute(finishedSession()))

		assert.True(t, ok)
		assert.Equal(t, "A", top.Movie.Title)
	})

	t.Run("Should report no winner when nobody matched", func(t provider.T) {
		session := finishedSession()
		session.Votes = map[string][]int{}

		_, ok := Top(Compute(session))

		assert.False(t, ok)
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(TallyUnitSuite))
}
