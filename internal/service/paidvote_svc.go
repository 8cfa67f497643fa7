package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/omega1entertainment/KOSCOCO-sub001/internal/model"
	"github.com/omega1entertainment/KOSCOCO-sub001/internal/repository"
)

// ErrInvalidQuantity is returned when a payment confirmation carries a
// non-positive vote quantity.
var ErrInvalidQuantity = errors.New("paid vote quantity must be positive")

type PaidVoteService struct {
	repo  *repository.PaidVoteRepo
	cache *CacheService
}

func NewPaidVoteService(repo *repository.PaidVoteRepo, cache *CacheService) *PaidVoteService {
	return &PaidVoteService{repo: repo, cache: cache}
}

// Confirm credits the purchased votes for a completed payment. Gateway
// retries of the same transaction are acknowledged without double-crediting.
func (s *PaidVoteService) Confirm(ctx context.Context, txID uuid.UUID, req model.PaidVoteRequest) (*model.PaidVoteResponse, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	pv, replay, err := s.repo.Confirm(ctx, txID, req.VideoID, req.Quantity)
	if err != nil {
		return nil, err
	}

	if !replay && s.cache != nil {
		if err := s.cache.InvalidateVideo(ctx, req.VideoID); err != nil {
			log.Printf("cache: invalidate video error: %v", err)
		}
	}

	return &model.PaidVoteResponse{
		Success:       true,
		TransactionID: pv.TransactionID.String(),
		VideoID:       pv.VideoID,
		Quantity:      pv.Quantity,
		Replay:        replay,
	}, nil
}
