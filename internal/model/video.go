package model

import "time"

// Video approval statuses. A video only accrues votes and judge scores once
// moderation has approved it.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Video represents a contest entry in the catalog. The catalog itself is
// written by the upload/moderation side of the platform; this service only
// reads it.
type Video struct {
	VideoID     string    `json:"videoId"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	CategoryID  int64     `json:"categoryId"`
	PhaseID     int64     `json:"phaseId"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// VideoResponse is the API response for a single video lookup, including its
// current signal breakdown.
type VideoResponse struct {
	VideoID       string    `json:"videoId"`
	OwnerID       string    `json:"ownerId"`
	Title         string    `json:"title"`
	CategoryID    int64     `json:"categoryId"`
	PhaseID       int64     `json:"phaseId"`
	Status        string    `json:"status"`
	FreeVotes     int       `json:"freeVotes"`
	PaidVotes     int       `json:"paidVotes"`
	VoteCount     int       `json:"voteCount"`
	AvgCreativity float64   `json:"avgCreativity"`
	AvgQuality    float64   `json:"avgQuality"`
	JudgeCount    int       `json:"judgeCount"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdated   time.Time `json:"lastUpdated"`
}
