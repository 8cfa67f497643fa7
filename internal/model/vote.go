package model

import "time"

// Vote represents a single free vote. Exactly one of UserID or IPHash is set:
// authenticated voters are keyed by their hashed user id, anonymous voters by
// a salted hash of their IP. A vote is always a single unweighted unit.
type Vote struct {
	ID        int64     `json:"id"`
	VideoID   string    `json:"videoId"`
	UserID    string    `json:"userId,omitempty"`
	IPHash    string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// VoteRequest is the API request body for casting a free vote. UserID is
// optional; when absent the caller's IP identifies the voter.
type VoteRequest struct {
	VideoID string `json:"videoId"`
	UserID  string `json:"userId,omitempty"`
}

// VoteResponse is the API response after casting a vote.
type VoteResponse struct {
	Success   bool   `json:"success"`
	VideoID   string `json:"videoId"`
	VoteCount int    `json:"voteCount"`
}
