package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/omega1entertainment/KOSCOCO-sub001/internal/model"
	"github.com/omega1entertainment/KOSCOCO-sub001/internal/repository"
)

type VideoService struct {
	videos    *repository.VideoRepo
	votes     *repository.VoteRepo
	paidVotes *repository.PaidVoteRepo
	judges    *repository.JudgeRepo
	cache     *CacheService
}

func NewVideoService(videos *repository.VideoRepo, votes *repository.VoteRepo,
	paidVotes *repository.PaidVoteRepo, judges *repository.JudgeRepo, cache *CacheService) *VideoService {
	return &VideoService{
		videos:    videos,
		votes:     votes,
		paidVotes: paidVotes,
		judges:    judges,
		cache:     cache,
	}
}

// Lookup returns a video with its current signal breakdown.
// Uses cache-aside: check Redis first, fall back to the ledgers, then
// populate the cache.
func (s *VideoService) Lookup(ctx context.Context, videoID string) (*model.VideoResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.GetVideo(ctx, videoID)
		if err != nil {
			log.Printf("cache: video get error: %v", err)
		} else if cached != nil {
			var resp model.VideoResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	v, err := s.videos.FindByVideoID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	freeVotes, err := s.votes.CountForVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	paidVotes, err := s.paidVotes.QuantityForVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	judgeCount, avgCreativity, avgQuality, err := s.judges.ScoreAverages(ctx, videoID)
	if err != nil {
		return nil, err
	}

	resp := &model.VideoResponse{
		VideoID:       v.VideoID,
		OwnerID:       v.OwnerID,
		Title:         v.Title,
		CategoryID:    v.CategoryID,
		PhaseID:       v.PhaseID,
		Status:        v.Status,
		FreeVotes:     freeVotes,
		PaidVotes:     paidVotes,
		VoteCount:     freeVotes + paidVotes,
		AvgCreativity: avgCreativity,
		AvgQuality:    avgQuality,
		JudgeCount:    judgeCount,
		CreatedAt:     v.CreatedAt,
		LastUpdated:   v.LastUpdated,
	}

	if s.cache != nil {
		if err := s.cache.SetVideo(ctx, videoID, resp); err != nil {
			log.Printf("cache: video set error: %v", err)
		}
	}

	return resp, nil
}
