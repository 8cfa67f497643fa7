package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type JudgeRepo struct {
	pool *pgxpool.Pool
}

func NewJudgeRepo(pool *pgxpool.Pool) *JudgeRepo {
	return &JudgeRepo{pool: pool}
}

// UpsertScore stores a judge's (creativity, quality) rating for a video,
// replacing any earlier rating from the same judge. Returns whether an
// existing row was updated rather than created.
func (r *JudgeRepo) UpsertScore(ctx context.Context, videoID, judgeID string, creativity, quality int) (updated bool, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM videos WHERE video_id = $1`, videoID).Scan(&status)
	if err != nil {
		return false, err
	}
	if status != "approved" {
		return false, ErrNotEligible
	}

	// Check whether this judge already scored the video.
	var existing int
	err = tx.QueryRow(ctx, `
		SELECT creativity FROM judge_scores WHERE video_id = $1 AND judge_id = $2`,
		videoID, judgeID).Scan(&existing)
	isNew := err == pgx.ErrNoRows
	if err != nil && !isNew {
		return false, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO judge_scores (video_id, judge_id, creativity, quality)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (video_id, judge_id) DO UPDATE
		SET creativity = EXCLUDED.creativity, quality = EXCLUDED.quality, updated_at = NOW()`,
		videoID, judgeID, creativity, quality)
	if err != nil {
		return false, err
	}

	_, err = tx.Exec(ctx, `SELECT pg_notify('vote_changes', $1)`, videoID)
	if err != nil {
		return false, err
	}

	return !isNew, tx.Commit(ctx)
}

// ScoreAverages returns the judge count and mean sub-scores for a video.
// Zero values when no judge has scored it yet.
func (r *JudgeRepo) ScoreAverages(ctx context.Context, videoID string) (count int, avgCreativity, avgQuality float64, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(AVG(creativity), 0),
		       COALESCE(AVG(quality), 0)
		FROM judge_scores
		WHERE video_id = $1`,
		videoID).Scan(&count, &avgCreativity, &avgQuality)
	return count, avgCreativity, avgQuality, err
}
