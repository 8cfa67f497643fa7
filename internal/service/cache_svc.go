package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/omega1entertainment/KOSCOCO-sub001/internal/model"
)

// Cache TTLs. Standings are short-lived because every vote can reorder them;
// video breakdowns change less often.
const (
	LeaderboardCacheTTL = time.Minute
	VideoCacheTTL       = 5 * time.Minute
)

// CacheService provides a Redis cache-aside layer for leaderboard scopes and
// video lookups.
type CacheService struct {
	rdb    *redis.Client
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// HitCount and MissCount feed the Prometheus cache counters.
func (c *CacheService) HitCount() int64  { return c.hits.Load() }
func (c *CacheService) MissCount() int64 { return c.misses.Load() }

// GetLeaderboard retrieves cached standings for a scope. Returns nil when not
// cached or when caching is disabled.
func (c *CacheService) GetLeaderboard(ctx context.Context, scope model.Scope) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, leaderboardKey(scope)).Bytes()
	if err == redis.Nil {
		c.misses.Add(1)
		return nil, nil
	}
	if err == nil {
		c.hits.Add(1)
	}
	return data, err
}

// SetLeaderboard stores computed standings for a scope.
func (c *CacheService) SetLeaderboard(ctx context.Context, scope model.Scope, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, leaderboardKey(scope), b, LeaderboardCacheTTL).Err()
}

// InvalidateLeaderboards drops every cached scope. Standings are a live query
// over the ledgers, so after a vote lands the cheapest way to stay truthful
// is to forget all derived copies.
func (c *CacheService) InvalidateLeaderboards(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}

	iter := c.rdb.Scan(ctx, 0, "leaderboard:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// GetVideo retrieves a cached video breakdown. Returns nil if not cached.
func (c *CacheService) GetVideo(ctx context.Context, videoID string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, videoKey(videoID)).Bytes()
	if err == redis.Nil {
		c.misses.Add(1)
		return nil, nil
	}
	if err == nil {
		c.hits.Add(1)
	}
	return data, err
}

// SetVideo stores a video breakdown in cache.
func (c *CacheService) SetVideo(ctx context.Context, videoID string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, videoKey(videoID), b, VideoCacheTTL).Err()
}

// InvalidateVideo removes a video from cache (called after signal changes).
func (c *CacheService) InvalidateVideo(ctx context.Context, videoID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, videoKey(videoID)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func leaderboardKey(scope model.Scope) string {
	cat, phase := "all", "all"
	if scope.CategoryID != nil {
		cat = fmt.Sprintf("%d", *scope.CategoryID)
	}
	if scope.PhaseID != nil {
		phase = fmt.Sprintf("%d", *scope.PhaseID)
	}
	return fmt.Sprintf("leaderboard:cat:%s:phase:%s", cat, phase)
}

func videoKey(videoID string) string {
	return fmt.Sprintf("video:%s", videoID)
}
