package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omega1entertainment/KOSCOCO-sub001/internal/model"
)

type StatsRepo struct {
	pool *pgxpool.Pool
}

func NewStatsRepo(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// GetStats returns platform-wide totals plus per-category approved video counts.
func (r *StatsRepo) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM videos),
			(SELECT COUNT(*) FROM videos WHERE status = 'approved'),
			(SELECT COUNT(*) FROM votes),
			(SELECT COALESCE(SUM(quantity), 0) FROM paid_votes),
			(SELECT COUNT(*) FROM judge_scores)`

	var stats model.StatsResponse
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalVideos, &stats.ApprovedVideos,
		&stats.FreeVotes, &stats.PaidVotes, &stats.JudgeScores,
	)
	if err != nil {
		return nil, err
	}

	catQuery := `
		SELECT c.name, COUNT(v.video_id)
		FROM categories c
		JOIN videos v ON v.category_id = c.category_id AND v.status = 'approved'
		GROUP BY c.name
		ORDER BY COUNT(v.video_id) DESC`

	rows, err := r.pool.Query(ctx, catQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats.VideosByCategory = make(map[string]int)
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		stats.VideosByCategory[name] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &stats, nil
}
