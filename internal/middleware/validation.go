package middleware

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Field length limits matching database schema constraints.
const (
	MaxVideoIDLen = 16 // videos.video_id VARCHAR(16)
	MaxUserIDLen  = 64 // votes.user_id VARCHAR(64)
	MaxJudgeIDLen = 64 // judge_scores.judge_id VARCHAR(64)
)

var (
	// videoIDRe matches catalog video IDs: alphanumeric, dash, underscore.
	videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// identityRe matches voter/judge identities: hex SHA256 hashes (64 chars)
	// or shorter hashed IDs.
	identityRe = regexp.MustCompile(`^[0-9a-f]+$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateVideoID checks that a video ID is well-formed and within DB limits.
func ValidateVideoID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "videoId is required"
	}
	if len(id) > MaxVideoIDLen {
		return "", "videoId must be at most 16 characters"
	}
	if !videoIDRe.MatchString(id) {
		return "", "videoId contains invalid characters"
	}
	return id, ""
}

// ValidateUserID checks that a user ID is a valid hex hash.
func ValidateUserID(id string) (string, string) {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return "", "userId is required"
	}
	if len(id) > MaxUserIDLen {
		return "", "userId must be at most 64 characters"
	}
	if !identityRe.MatchString(id) {
		return "", "userId must be a hexadecimal hash"
	}
	return id, ""
}

// ValidateJudgeID checks that a judge ID is a valid hex hash.
func ValidateJudgeID(id string) (string, string) {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return "", "judgeId is required"
	}
	if len(id) > MaxJudgeIDLen {
		return "", "judgeId must be at most 64 characters"
	}
	if !identityRe.MatchString(id) {
		return "", "judgeId must be a hexadecimal hash"
	}
	return id, ""
}

// ValidateScopeID parses an optional leaderboard filter id. An empty string
// means "no filter" and returns nil. A value that does not parse as a
// positive integer is malformed.
func ValidateScopeID(raw, field string) (*int64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ""
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, field + " must be an integer"
	}
	if id <= 0 {
		return nil, field + " must be positive"
	}
	return &id, ""
}

// ValidateTransactionID checks that a payment transaction ID is a UUID.
func ValidateTransactionID(raw string) (uuid.UUID, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, "transactionId is required"
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, "transactionId must be a UUID"
	}
	return id, ""
}
