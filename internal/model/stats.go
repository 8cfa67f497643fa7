package model

// StatsResponse is the API response for platform-wide totals.
type StatsResponse struct {
	TotalVideos      int            `json:"totalVideos"`
	ApprovedVideos   int            `json:"approvedVideos"`
	FreeVotes        int            `json:"freeVotes"`
	PaidVotes        int            `json:"paidVotes"`
	JudgeScores      int            `json:"judgeScores"`
	VideosByCategory map[string]int `json:"videosByCategory"`
}
