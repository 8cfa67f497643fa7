package model

import "time"

// Scope filters a leaderboard to a category and/or competition phase. A nil
// field means no filter on that dimension.
type Scope struct {
	CategoryID *int64
	PhaseID    *int64
}

// VideoSignals is the raw per-video aggregate read from the ledgers before
// normalization and ranking.
type VideoSignals struct {
	VideoID       string
	Title         string
	OwnerID       string
	CreatedAt     time.Time
	FreeVotes     int
	PaidVotes     int
	JudgeCount    int
	CreativitySum int
	QualitySum    int
}

// VoteCount returns free votes plus paid vote quantities.
func (s VideoSignals) VoteCount() int {
	return s.FreeVotes + s.PaidVotes
}

// LeaderboardEntry is one ranked row of a computed leaderboard. Entries are
// derived on demand and never persisted.
type LeaderboardEntry struct {
	Rank          int     `json:"rank"`
	VideoID       string  `json:"videoId"`
	Title         string  `json:"title"`
	OwnerID       string  `json:"ownerId"`
	VoteCount     int     `json:"voteCount"`
	AvgCreativity float64 `json:"avgCreativity"`
	AvgQuality    float64 `json:"avgQuality"`
	OverallScore  float64 `json:"overallScore"`
}

// LeaderboardResponse is the API response for a leaderboard query.
type LeaderboardResponse struct {
	Entries     []LeaderboardEntry `json:"entries"`
	TotalVideos int                `json:"totalVideos"`
	GeneratedAt string             `json:"generatedAt"`
}
