package service

import (
	"context"
	"log"
	"time"

	"github.com/omega1entertainment/KOSCOCO-sub001/internal/model"
	"github.com/omega1entertainment/KOSCOCO-sub001/internal/repository"
)

// LeaderboardWarmer is a periodic background job that pre-computes the
// standings for every active (category, phase) scope into cache, so the
// first viewer after an invalidation doesn't pay for the aggregate query.
type LeaderboardWarmer struct {
	repo     *repository.LeaderboardRepo
	lbSvc    *LeaderboardService
	interval time.Duration
	stopCh   chan struct{}
}

// NewLeaderboardWarmer creates a warmer that ticks every interval.
func NewLeaderboardWarmer(repo *repository.LeaderboardRepo, lbSvc *LeaderboardService, interval time.Duration) *LeaderboardWarmer {
	return &LeaderboardWarmer{
		repo:     repo,
		lbSvc:    lbSvc,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic warm loop. It runs one tick immediately, then
// every interval.
func (w *LeaderboardWarmer) Start(ctx context.Context) {
	log.Printf("leaderboard-warmer: starting (interval=%s)", w.interval)

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("leaderboard-warmer: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("leaderboard-warmer: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the warmer to stop.
func (w *LeaderboardWarmer) Stop() {
	close(w.stopCh)
}

// tick runs one cycle: refresh the unscoped leaderboard plus every active scope.
func (w *LeaderboardWarmer) tick(ctx context.Context) {
	start := time.Now()

	scopes, err := w.repo.ActiveScopes(ctx)
	if err != nil {
		log.Printf("leaderboard-warmer: error listing scopes: %v", err)
		return
	}

	// The unscoped board is the most viewed one.
	scopes = append(scopes, model.Scope{})

	warmed := 0
	for _, scope := range scopes {
		if err := w.lbSvc.Refresh(ctx, scope); err != nil {
			log.Printf("leaderboard-warmer: refresh error: %v", err)
			continue
		}
		warmed++
	}

	elapsed := time.Since(start)
	log.Printf("leaderboard-warmer: tick complete — %d scopes warmed (%s)",
		warmed, elapsed.Round(time.Millisecond))
}
