package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/omega1entertainment/KOSCOCO-sub001/internal/config"
	"github.com/omega1entertainment/KOSCOCO-sub001/internal/db"
	"github.com/omega1entertainment/KOSCOCO-sub001/internal/handler"
	"github.com/omega1entertainment/KOSCOCO-sub001/internal/middleware"
	"github.com/omega1entertainment/KOSCOCO-sub001/internal/repository"
	"github.com/omega1entertainment/KOSCOCO-sub001/internal/router"
	"github.com/omega1entertainment/KOSCOCO-sub001/internal/service"
)

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "koscoco-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	// Repositories
	videoRepo := repository.NewVideoRepo(pool)
	voteRepo := repository.NewVoteRepo(pool)
	paidVoteRepo := repository.NewPaidVoteRepo(pool)
	judgeRepo := repository.NewJudgeRepo(pool)
	leaderboardRepo := repository.NewLeaderboardRepo(pool)
	statsRepo := repository.NewStatsRepo(pool)

	// Services
	voteSvc := service.NewVoteService(voteRepo, cache, cfg.IPHashSalt)
	paidVoteSvc := service.NewPaidVoteService(paidVoteRepo, cache)
	judgeSvc := service.NewJudgeService(judgeRepo, cache)
	leaderboardSvc := service.NewLeaderboardService(leaderboardRepo, cache)
	videoSvc := service.NewVideoService(videoRepo, voteRepo, paidVoteRepo, judgeRepo, cache)
	statsSvc := service.NewStatsService(statsRepo)

	handler.InitMetrics(pool, cache)

	// Background workers: cache invalidation on vote/score changes, and
	// periodic rewarming of active leaderboard scopes.
	rankWorker := service.NewRankWorker(pool, cache)
	go rankWorker.Start(ctx)

	warmInterval, err := time.ParseDuration(cfg.WarmInterval)
	if err != nil {
		log.Printf("invalid LEADERBOARD_WARM_INTERVAL %q, using 5m", cfg.WarmInterval)
		warmInterval = 5 * time.Minute
	}
	warmer := service.NewLeaderboardWarmer(leaderboardRepo, leaderboardSvc, warmInterval)
	go warmer.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "KOSCOCO Scoring API",
		ServerHeader: "KOSCOCO",
	})

	h := &router.Handlers{
		Leaderboard: handler.NewLeaderboardHandler(leaderboardSvc),
		Vote:        handler.NewVoteHandler(voteSvc),
		Payment:     handler.NewPaymentHandler(paidVoteSvc),
		Judge:       handler.NewJudgeHandler(judgeSvc),
		Video:       handler.NewVideoHandler(videoSvc),
		Stats:       handler.NewStatsHandler(statsSvc),
		Export:      handler.NewExportHandler(leaderboardSvc),
		Health:      handler.NewHealthHandler(pool, cache.Client()),
	}
	router.Setup(app, h, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Println("shutting down...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("KOSCOCO scoring backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
