package service

import (
	"context"
	"log"

	"github.com/omega1entertainment/KOSCOCO-sub001/internal/model"
	"github.com/omega1entertainment/KOSCOCO-sub001/internal/repository"
	"github.com/omega1entertainment/KOSCOCO-sub001/pkg/hash"
)

type VoteService struct {
	repo   *repository.VoteRepo
	cache  *CacheService
	ipSalt string
}

func NewVoteService(repo *repository.VoteRepo, cache *CacheService, ipSalt string) *VoteService {
	return &VoteService{repo: repo, cache: cache, ipSalt: ipSalt}
}

// Submit records a free vote. The voter identity is the hashed user id when
// the caller is authenticated, otherwise a salted hash of the request IP —
// one or the other, never both for the same vote event.
func (s *VoteService) Submit(ctx context.Context, req model.VoteRequest, ip string) (*model.VoteResponse, error) {
	var ipHash string
	if req.UserID == "" {
		ipHash = hash.HashIP(ip, s.ipSalt)
	}

	voteCount, err := s.repo.SubmitVote(ctx, req.VideoID, req.UserID, ipHash)
	if err != nil {
		return nil, err
	}

	// Leaderboard invalidation is handled async by RankWorker via
	// LISTEN/NOTIFY. Invalidate the video breakdown so the next read
	// re-fetches from the ledgers.
	if s.cache != nil {
		if err := s.cache.InvalidateVideo(ctx, req.VideoID); err != nil {
			log.Printf("cache: invalidate video error: %v", err)
		}
	}

	return &model.VoteResponse{
		Success:   true,
		VideoID:   req.VideoID,
		VoteCount: voteCount,
	}, nil
}
