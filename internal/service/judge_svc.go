package service

import (
	"context"
	"errors"
	"log"

	"github.com/omega1entertainment/KOSCOCO-sub001/internal/model"
	"github.com/omega1entertainment/KOSCOCO-sub001/internal/repository"
)

// ErrScoreOutOfRange is returned when a judge sub-score falls outside [0,10].
var ErrScoreOutOfRange = errors.New("judge score out of range")

type JudgeService struct {
	repo  *repository.JudgeRepo
	cache *CacheService
}

func NewJudgeService(repo *repository.JudgeRepo, cache *CacheService) *JudgeService {
	return &JudgeService{repo: repo, cache: cache}
}

// ValidateScore checks a single sub-score against the closed [0,10] range.
func ValidateScore(n int) error {
	if n < model.MinJudgeScore || n > model.MaxJudgeScore {
		return ErrScoreOutOfRange
	}
	return nil
}

// Score stores or revises a judge's rating for a video. Revision replaces the
// prior row; a judge never holds two rows for the same video.
func (s *JudgeService) Score(ctx context.Context, req model.JudgeScoreRequest) (*model.JudgeScoreResponse, error) {
	if err := ValidateScore(req.Creativity); err != nil {
		return nil, err
	}
	if err := ValidateScore(req.Quality); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpsertScore(ctx, req.VideoID, req.JudgeID, req.Creativity, req.Quality)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateVideo(ctx, req.VideoID); err != nil {
			log.Printf("cache: invalidate video error: %v", err)
		}
	}

	return &model.JudgeScoreResponse{
		Success:    true,
		VideoID:    req.VideoID,
		JudgeID:    req.JudgeID,
		Creativity: req.Creativity,
		Quality:    req.Quality,
		Updated:    updated,
	}, nil
}
