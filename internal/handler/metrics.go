package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/omega1entertainment/KOSCOCO-sub001/internal/service"
)

// Metrics holds all Prometheus collectors for the KOSCOCO scoring backend.
var Metrics = struct {
	VotesTotal          *prometheus.CounterVec
	JudgeScoresTotal    prometheus.Counter
	RequestDuration     *prometheus.HistogramVec
	DBPoolActive        prometheus.GaugeFunc
	DBPoolIdle          prometheus.GaugeFunc
	RequestsInFlight    prometheus.Gauge
	CacheHits           prometheus.CounterFunc
	CacheMisses         prometheus.CounterFunc
	LeaderboardDuration prometheus.Histogram
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
func InitMetrics(pool *pgxpool.Pool, cache *service.CacheService) {
	Metrics.VotesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "koscoco_votes_total",
			Help: "Total votes recorded, by kind (free or paid).",
		},
		[]string{"kind"},
	)

	Metrics.JudgeScoresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "koscoco_judge_scores_total",
			Help: "Total judge score submissions, including revisions.",
		},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "koscoco_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "koscoco_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.LeaderboardDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "koscoco_leaderboard_compute_duration_seconds",
			Help:    "Duration of leaderboard standings computation, cache misses included.",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Cache counters read the live tallies kept by the cache service — the
	// service package must not import handler, so the counters pull.
	if cache != nil {
		Metrics.CacheHits = prometheus.NewCounterFunc(
			prometheus.CounterOpts{
				Name: "koscoco_cache_hits_total",
				Help: "Total Redis cache hits.",
			},
			func() float64 {
				return float64(cache.HitCount())
			},
		)

		Metrics.CacheMisses = prometheus.NewCounterFunc(
			prometheus.CounterOpts{
				Name: "koscoco_cache_misses_total",
				Help: "Total Redis cache misses.",
			},
			func() float64 {
				return float64(cache.MissCount())
			},
		)

		prometheus.MustRegister(Metrics.CacheHits)
		prometheus.MustRegister(Metrics.CacheMisses)
	}

	// DB pool gauges — read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "koscoco_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "koscoco_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.VotesTotal,
		Metrics.JudgeScoresTotal,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.LeaderboardDuration,
	)
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	switch {
	case len(path) > 12 && path[:12] == "/api/videos/":
		return "/api/videos/:videoId"
	case len(path) > 12 && path[:12] == "/api/judges/":
		return "/api/judges/:judgeId"
	default:
		return path
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
