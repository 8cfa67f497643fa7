package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omega1entertainment/KOSCOCO-sub001/internal/model"
)

// ErrPaymentConflict is returned when a webhook replays a known transaction
// id with a different video or quantity than the stored record.
var ErrPaymentConflict = errors.New("payment transaction conflicts with stored record")

type PaidVoteRepo struct {
	pool *pgxpool.Pool
}

func NewPaidVoteRepo(pool *pgxpool.Pool) *PaidVoteRepo {
	return &PaidVoteRepo{pool: pool}
}

// Confirm credits a paid-vote quantity for a completed payment. The insert is
// exactly-once per transaction id: a gateway retry finds the existing row and
// is acknowledged as a replay instead of double-crediting. The stored row's
// quantity is immutable.
func (r *PaidVoteRepo) Confirm(ctx context.Context, txID uuid.UUID, videoID string, quantity int) (*model.PaidVote, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM videos WHERE video_id = $1`, videoID).Scan(&status)
	if err != nil {
		return nil, false, err
	}
	if status != "approved" {
		return nil, false, ErrNotEligible
	}

	res, err := tx.Exec(ctx, `
		INSERT INTO paid_votes (transaction_id, video_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (transaction_id) DO NOTHING`,
		txID, videoID, quantity)
	if err != nil {
		return nil, false, err
	}

	replay := res.RowsAffected() == 0

	var pv model.PaidVote
	err = tx.QueryRow(ctx, `
		SELECT transaction_id, video_id, quantity, created_at
		FROM paid_votes WHERE transaction_id = $1`,
		txID).Scan(&pv.TransactionID, &pv.VideoID, &pv.Quantity, &pv.CreatedAt)
	if err != nil {
		return nil, false, err
	}

	if replay {
		if pv.VideoID != videoID || pv.Quantity != quantity {
			return nil, false, ErrPaymentConflict
		}
		// Nothing changed; no notification needed.
		return &pv, true, tx.Commit(ctx)
	}

	_, err = tx.Exec(ctx, `SELECT pg_notify('vote_changes', $1)`, videoID)
	if err != nil {
		return nil, false, err
	}

	return &pv, false, tx.Commit(ctx)
}

// QuantityForVideo returns the summed paid-vote quantity for a single video.
func (r *PaidVoteRepo) QuantityForVideo(ctx context.Context, videoID string) (int, error) {
	var quantity int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0) FROM paid_votes WHERE video_id = $1`,
		videoID).Scan(&quantity)
	return quantity, err
}
