package model

import (
	"time"

	"github.com/google/uuid"
)

// PaidVote is a bulk vote quantity credited after a completed payment.
// Exactly one row exists per successful payment transaction; the quantity is
// immutable after creation (refunds are a separate external event).
type PaidVote struct {
	TransactionID uuid.UUID `json:"transactionId"`
	VideoID       string    `json:"videoId"`
	Quantity      int       `json:"quantity"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PaidVoteRequest is the body of the payment-completion webhook.
type PaidVoteRequest struct {
	TransactionID string `json:"transactionId"`
	VideoID       string `json:"videoId"`
	Quantity      int    `json:"quantity"`
}

// PaidVoteResponse acknowledges a payment confirmation. Replay is true when
// the transaction had already been credited and the webhook was a retry.
type PaidVoteResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
	VideoID       string `json:"videoId"`
	Quantity      int    `json:"quantity"`
	Replay        bool   `json:"replay"`
}
