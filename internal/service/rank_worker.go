package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RankWorker listens for PostgreSQL NOTIFY on the 'vote_changes' channel and
// batches cache invalidation. Standings are always a live query over the
// ledgers, so nothing is recomputed here — the worker just drops stale
// derived copies. If 50 votes hit video X in 5 seconds, one flush handles it.
type RankWorker struct {
	pool    *pgxpool.Pool
	cache   *CacheService
	batchMs time.Duration

	mu      sync.Mutex
	pending map[string]struct{} // video IDs with changed signals
}

// NewRankWorker creates a cache invalidation worker.
func NewRankWorker(pool *pgxpool.Pool, cache *CacheService) *RankWorker {
	return &RankWorker{
		pool:    pool,
		cache:   cache,
		batchMs: 5 * time.Second,
		pending: make(map[string]struct{}),
	}
}

// Start begins listening for vote_changes notifications and processing batches.
func (w *RankWorker) Start(ctx context.Context) {
	log.Printf("rank-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("rank-worker: stopping (context cancelled)")
				return
			}
			log.Printf("rank-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("rank-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on vote_changes, and
// accumulates notifications into batched windows.
func (w *RankWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN vote_changes")
	if err != nil {
		return err
	}
	log.Println("rank-worker: listening on vote_changes")

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		videoID := notification.Payload
		if videoID == "" {
			continue
		}

		w.mu.Lock()
		w.pending[videoID] = struct{}{}
		w.mu.Unlock()
	}
}

// flushLoop periodically drains the pending set.
func (w *RankWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

// flush drops the cached breakdown for each changed video, plus every cached
// leaderboard scope once per batch.
func (w *RankWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	// Swap out the pending map
	batch := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if w.cache == nil {
		return
	}

	invalidated := 0
	for videoID := range batch {
		if err := w.cache.InvalidateVideo(ctx, videoID); err != nil {
			log.Printf("rank-worker: cache invalidate error for %s: %v", videoID, err)
			continue
		}
		invalidated++
	}

	if err := w.cache.InvalidateLeaderboards(ctx); err != nil {
		log.Printf("rank-worker: leaderboard invalidate error: %v", err)
	}

	if invalidated > 0 {
		log.Printf("rank-worker: batch complete — %d videos invalidated (from %d notifications)",
			invalidated, len(batch))
	}
}
