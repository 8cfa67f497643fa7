package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/omega1entertainment/KOSCOCO-sub001/internal/model"
	"github.com/omega1entertainment/KOSCOCO-sub001/internal/repository"
)

// ErrInvalidScope is returned for malformed leaderboard filters (zero or
// negative ids). A well-formed id that matches nothing is not an error; it
// yields an empty leaderboard.
var ErrInvalidScope = errors.New("invalid leaderboard scope")

// Overall score weighting: public votes 60%, judge creativity 30%, judge
// quality 10%. Each signal is normalized to a 0–100 sub-scale first, so a
// video maxing every axis scores exactly 100.
const (
	voteWeight       = 0.60
	creativityWeight = 0.30
	qualityWeight    = 0.10
)

// LeaderboardService computes ranked standings for a competition scope.
type LeaderboardService struct {
	repo  *repository.LeaderboardRepo
	cache *CacheService
}

func NewLeaderboardService(repo *repository.LeaderboardRepo, cache *CacheService) *LeaderboardService {
	return &LeaderboardService{repo: repo, cache: cache}
}

// ValidateScope rejects non-positive filter ids. Nil means "no filter".
func ValidateScope(scope model.Scope) error {
	if scope.CategoryID != nil && *scope.CategoryID <= 0 {
		return ErrInvalidScope
	}
	if scope.PhaseID != nil && *scope.PhaseID <= 0 {
		return ErrInvalidScope
	}
	return nil
}

// ComputeStandings folds raw per-video signals into a ranked leaderboard.
// The computation is pure: same input, byte-identical output.
//
//	voteCount     = freeVotes + paidVotes
//	normalized    = voteCount / max(voteCount in scope)   (0 if max is 0)
//	avgCreativity = creativitySum / judgeCount            (0 if unscored)
//	avgQuality    = qualitySum / judgeCount               (0 if unscored)
//	overall       = 60*normalized + 30*(avgCreativity/10) + 10*(avgQuality/10)
//
// Ordering: overall desc, voteCount desc, createdAt asc, videoId asc. Ranks
// are 1-based and strictly increasing — full ties still get distinct ranks.
func ComputeStandings(signals []model.VideoSignals) []model.LeaderboardEntry {
	entries := make([]model.LeaderboardEntry, 0, len(signals))
	if len(signals) == 0 {
		return entries
	}

	maxVotes := 0
	for _, s := range signals {
		if s.VoteCount() > maxVotes {
			maxVotes = s.VoteCount()
		}
	}

	type ranked struct {
		entry     model.LeaderboardEntry
		createdAt time.Time
	}

	rankedEntries := make([]ranked, 0, len(signals))
	for _, s := range signals {
		var avgCreativity, avgQuality float64
		if s.JudgeCount > 0 {
			avgCreativity = float64(s.CreativitySum) / float64(s.JudgeCount)
			avgQuality = float64(s.QualitySum) / float64(s.JudgeCount)
		}

		var normalized float64
		if maxVotes > 0 {
			normalized = float64(s.VoteCount()) / float64(maxVotes)
		}

		overall := voteWeight*normalized*100 +
			creativityWeight*(avgCreativity/float64(model.MaxJudgeScore))*100 +
			qualityWeight*(avgQuality/float64(model.MaxJudgeScore))*100

		rankedEntries = append(rankedEntries, ranked{
			entry: model.LeaderboardEntry{
				VideoID:       s.VideoID,
				Title:         s.Title,
				OwnerID:       s.OwnerID,
				VoteCount:     s.VoteCount(),
				AvgCreativity: avgCreativity,
				AvgQuality:    avgQuality,
				OverallScore:  overall,
			},
			createdAt: s.CreatedAt,
		})
	}

	sort.Slice(rankedEntries, func(i, j int) bool {
		a, b := rankedEntries[i], rankedEntries[j]
		if a.entry.OverallScore != b.entry.OverallScore {
			return a.entry.OverallScore > b.entry.OverallScore
		}
		if a.entry.VoteCount != b.entry.VoteCount {
			return a.entry.VoteCount > b.entry.VoteCount
		}
		if !a.createdAt.Equal(b.createdAt) {
			return a.createdAt.Before(b.createdAt)
		}
		return a.entry.VideoID < b.entry.VideoID
	})

	for i := range rankedEntries {
		rankedEntries[i].entry.Rank = i + 1
		entries = append(entries, rankedEntries[i].entry)
	}
	return entries
}

// Standings returns the ranked leaderboard for a scope.
// Uses cache-aside: check Redis first, fall back to a live query, then
// populate the cache. The ledgers are never written.
func (s *LeaderboardService) Standings(ctx context.Context, scope model.Scope) (*model.LeaderboardResponse, error) {
	if err := ValidateScope(scope); err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.GetLeaderboard(ctx, scope)
		if err != nil {
			log.Printf("cache: leaderboard get error: %v", err)
		} else if cached != nil {
			var resp model.LeaderboardResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	resp, err := s.compute(ctx, scope)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetLeaderboard(ctx, scope, resp); err != nil {
			log.Printf("cache: leaderboard set error: %v", err)
		}
	}

	return resp, nil
}

// Refresh recomputes a scope and overwrites its cache entry regardless of
// freshness. Used by the warmer.
func (s *LeaderboardService) Refresh(ctx context.Context, scope model.Scope) error {
	if err := ValidateScope(scope); err != nil {
		return err
	}

	resp, err := s.compute(ctx, scope)
	if err != nil {
		return err
	}

	if s.cache != nil {
		return s.cache.SetLeaderboard(ctx, scope, resp)
	}
	return nil
}

func (s *LeaderboardService) compute(ctx context.Context, scope model.Scope) (*model.LeaderboardResponse, error) {
	signals, err := s.repo.FetchSignals(ctx, scope)
	if err != nil {
		return nil, err
	}

	entries := ComputeStandings(signals)
	return &model.LeaderboardResponse{
		Entries:     entries,
		TotalVideos: len(entries),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}
