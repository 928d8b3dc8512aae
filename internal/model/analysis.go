package model

// Analysis is the server-computed recommendation attached to a finished
// session. The client only mirrors it; nothing here is derived locally.
type Analysis struct {
	Stats          VoteStats      `json:"stats"`
	Recommendation Recommendation `json:"recommendation"`
}

type VoteStats struct {
	TotalVotes        int                `json:"totalVotes"`
	TotalParticipants int                `json:"totalParticipants"`
	Distribution      []VoteDistribution `json:"distribution"`
}

type VoteDistribution struct {
	Title  string   `json:"title"`
	Votes  int      `json:"votes"`
	Voters []string `json:"voters"`
}

type Recommendation struct {
	Title         string                     `json:"title"`
	Justification string                     `json:"justification"`
	Compatibility []ParticipantCompatibility `json:"compatibility"`
}

type ParticipantCompatibility struct {
	Participant   string  `json:"participant"`
	Compatibility float64 `json:"compatibility"`
	Reason        string  `json:"reason"`
}
