package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"blog-backend/internal/config"
	postjob "blog-backend/internal/domains/post/job"
	postrepo "blog-backend/internal/domains/post/repository"
	infracache "blog-backend/internal/infrastructure/cache"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/internal/infrastructure/queue"
	"blog-backend/internal/shared"
	"blog-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", err)
		os.Exit(1)
	}

	logger.Init(cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db := database.NewPostgresDB(cfg.Database)
	if err := db.Connect(ctx); err != nil {
		cancel()
		logger.Error("Failed to connect to database", err)
		os.Exit(1)
	}
	cancel()
	defer db.Close()

	cacheClient := infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	postRepository := postrepo.NewPostgresRepository(db.Pool, cacheClient)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: cfg.Worker.Concurrency,
			Queues: map[string]int{
				shared.QueuePost:    6,
				shared.QueueDefault: 4,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.Handle(shared.TypeRecordPostView, postjob.NewRecordViewHandler(postRepository))
	mux.Handle(shared.TypePurgePostViews, postjob.NewPurgeViewsHandler(postRepository))

	scheduler := queue.NewScheduler(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB, cfg.Worker)
	if err := scheduler.RegisterJobs(); err != nil {
		logger.Error("Failed to register scheduled jobs", err)
		os.Exit(1)
	}
	if err := scheduler.Start(); err != nil {
		logger.Error("Failed to start scheduler", err)
		os.Exit(1)
	}
	defer scheduler.Shutdown()

	go func() {
		logger.Info("Starting worker", map[string]interface{}{
			"concurrency": cfg.Worker.Concurrency,
		})
		if err := srv.Run(mux); err != nil {
			logger.Error("Worker error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker", nil)
	srv.Shutdown()
	logger.Info("Worker stopped", nil)
}
