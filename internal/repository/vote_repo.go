package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateSignal is returned when a vote or score insert collides with an
// existing row from the same identity. The ledger's uniqueness constraints
// resolve concurrent duplicates: exactly one insert wins, the rest get this.
var ErrDuplicateSignal = errors.New("duplicate signal for identity")

// ErrNotEligible is returned when the target video exists but has not been
// approved by moderation.
var ErrNotEligible = errors.New("video not eligible for voting")

type VoteRepo struct {
	pool *pgxpool.Pool
}

func NewVoteRepo(pool *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

// SubmitVote records one free vote for a video. The voter identity is either
// a hashed user id or a salted IP hash — exactly one of the two, matching the
// ledger's CHECK constraint. Returns the video's combined vote count after
// the insert, or ErrDuplicateSignal if this identity already voted.
func (r *VoteRepo) SubmitVote(ctx context.Context, videoID, userID, ipHash string) (voteCount int, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	// Only approved videos accept votes. ErrNoRows propagates for unknown ids.
	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM videos WHERE video_id = $1`, videoID).Scan(&status)
	if err != nil {
		return 0, err
	}
	if status != "approved" {
		return 0, ErrNotEligible
	}

	// A bare DO NOTHING covers both partial unique indexes (user identity and
	// IP identity), so a second row for the same identity affects zero rows.
	var tag string
	if userID != "" {
		tag = `
			INSERT INTO votes (video_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`
	} else {
		tag = `
			INSERT INTO votes (video_id, ip_hash)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`
	}
	identity := userID
	if identity == "" {
		identity = ipHash
	}
	res, err := tx.Exec(ctx, tag, videoID, identity)
	if err != nil {
		return 0, err
	}
	if res.RowsAffected() == 0 {
		return 0, ErrDuplicateSignal
	}

	// Wake the rank worker so cached standings get invalidated.
	_, err = tx.Exec(ctx, `SELECT pg_notify('vote_changes', $1)`, videoID)
	if err != nil {
		return 0, err
	}

	err = tx.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM votes WHERE video_id = $1)
		     + (SELECT COALESCE(SUM(quantity), 0) FROM paid_votes WHERE video_id = $1)`,
		videoID).Scan(&voteCount)
	if err != nil {
		return 0, err
	}

	err = tx.Commit(ctx)
	return voteCount, err
}

// CountForVideo returns the free-vote count for a single video.
func (r *VoteRepo) CountForVideo(ctx context.Context, videoID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM votes WHERE video_id = $1`, videoID).Scan(&count)
	return count, err
}
