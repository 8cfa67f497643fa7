package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omega1entertainment/KOSCOCO-sub001/internal/model"
)

type LeaderboardRepo struct {
	pool *pgxpool.Pool
}

func NewLeaderboardRepo(pool *pgxpool.Pool) *LeaderboardRepo {
	return &LeaderboardRepo{pool: pool}
}

// FetchSignals reads the raw per-video aggregates for every approved video in
// scope: free-vote counts, paid quantities, and judge score sums. The rows
// come back in (created_at, video_id) order so the in-memory ranking has a
// stable input regardless of ledger insertion order.
func (r *LeaderboardRepo) FetchSignals(ctx context.Context, scope model.Scope) ([]model.VideoSignals, error) {
	query := `
		SELECT v.video_id, v.title, v.owner_id, v.created_at,
		       COALESCE(fv.free_votes, 0),
		       COALESCE(pv.paid_votes, 0),
		       COALESCE(js.judge_count, 0),
		       COALESCE(js.creativity_sum, 0),
		       COALESCE(js.quality_sum, 0)
		FROM videos v
		LEFT JOIN (
			SELECT video_id, COUNT(*) AS free_votes
			FROM votes GROUP BY video_id
		) fv ON fv.video_id = v.video_id
		LEFT JOIN (
			SELECT video_id, SUM(quantity) AS paid_votes
			FROM paid_votes GROUP BY video_id
		) pv ON pv.video_id = v.video_id
		LEFT JOIN (
			SELECT video_id, COUNT(*) AS judge_count,
			       SUM(creativity) AS creativity_sum,
			       SUM(quality) AS quality_sum
			FROM judge_scores GROUP BY video_id
		) js ON js.video_id = v.video_id
		WHERE v.status = 'approved'
		  AND ($1::bigint IS NULL OR v.category_id = $1)
		  AND ($2::bigint IS NULL OR v.phase_id = $2)
		ORDER BY v.created_at ASC, v.video_id ASC`

	rows, err := r.pool.Query(ctx, query, scope.CategoryID, scope.PhaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signals []model.VideoSignals
	for rows.Next() {
		var s model.VideoSignals
		err := rows.Scan(
			&s.VideoID, &s.Title, &s.OwnerID, &s.CreatedAt,
			&s.FreeVotes, &s.PaidVotes,
			&s.JudgeCount, &s.CreativitySum, &s.QualitySum,
		)
		if err != nil {
			return nil, err
		}
		signals = append(signals, s)
	}
	return signals, rows.Err()
}

// ActiveScopes lists every distinct (category, phase) pair that currently
// holds at least one approved video. Used by the leaderboard warmer.
func (r *LeaderboardRepo) ActiveScopes(ctx context.Context) ([]model.Scope, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT category_id, phase_id
		FROM videos
		WHERE status = 'approved'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scopes []model.Scope
	for rows.Next() {
		var categoryID, phaseID int64
		if err := rows.Scan(&categoryID, &phaseID); err != nil {
			return nil, err
		}
		scopes = append(scopes, model.Scope{CategoryID: &categoryID, PhaseID: &phaseID})
	}
	return scopes, rows.Err()
}
