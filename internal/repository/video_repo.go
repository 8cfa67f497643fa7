package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omega1entertainment/KOSCOCO-sub001/internal/model"
)

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

// FindByVideoID returns a single catalog entry. pgx.ErrNoRows when unknown.
func (r *VideoRepo) FindByVideoID(ctx context.Context, videoID string) (*model.Video, error) {
	query := `
		SELECT video_id, owner_id, title, category_id, phase_id, status,
		       created_at, last_updated
		FROM videos
		WHERE video_id = $1`

	var v model.Video
	err := r.pool.QueryRow(ctx, query, videoID).Scan(
		&v.VideoID, &v.OwnerID, &v.Title, &v.CategoryID, &v.PhaseID,
		&v.Status, &v.CreatedAt, &v.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
