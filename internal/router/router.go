package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/omega1entertainment/KOSCOCO-sub001/internal/handler"
	"github.com/omega1entertainment/KOSCOCO-sub001/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Leaderboard *handler.LeaderboardHandler
	Vote        *handler.VoteHandler
	Payment     *handler.PaymentHandler
	Judge       *handler.JudgeHandler
	Video       *handler.VideoHandler
	Stats       *handler.StatsHandler
	Export      *handler.ExportHandler
	Health      *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Probes and metrics (before API group, no rate limiting)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")

	// Leaderboard routes (export first so it doesn't get shadowed)
	api.Get("/leaderboard/export", h.Export.Export, middleware.NewExportRateLimiter().Handler())
	api.Get("/leaderboard", h.Leaderboard.Get, middleware.NewLeaderboardRateLimiter().Handler())

	// Vote routes
	api.Post("/votes", h.Vote.Submit, middleware.NewVoteSubmitRateLimiter().Handler())

	// Payment webhook
	api.Post("/payments/confirm", h.Payment.Confirm, middleware.NewPaymentRateLimiter().Handler())

	// Judge routes
	api.Put("/judges/scores", h.Judge.Score, middleware.NewJudgeRateLimiter().Handler())

	// Video routes
	api.Get("/videos/:videoId", h.Video.Get, middleware.NewVideoRateLimiter().Handler())

	// Stats routes
	api.Get("/stats", h.Stats.GetStats, middleware.NewStatsRateLimiter().Handler())
}
