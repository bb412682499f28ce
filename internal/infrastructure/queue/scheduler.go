package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"blog-backend/internal/config"
	"blog-backend/internal/shared"
	"blog-backend/pkg/logger"
)

// Scheduler registers the cron-style jobs the worker runs.
type Scheduler struct {
	scheduler *asynq.Scheduler
	worker    config.WorkerConfig
}

func NewScheduler(redisAddr, redisPassword string, redisDB int, worker config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		worker:    worker,
	}
}

// RegisterJobs wires all scheduled jobs.
func (s *Scheduler) RegisterJobs() error {
	return s.registerPurgePostViewsJob()
}

// Purge raw post_views rows past the retention window.
func (s *Scheduler) registerPurgePostViewsJob() error {
	payload, err := json.Marshal(shared.PurgePostViewsPayload{
		RetentionDays: s.worker.ViewRetentionDays,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypePurgePostViews, payload)

	_, err = s.scheduler.Register(
		s.worker.PurgeViewsSchedule,
		task,
		asynq.Queue(shared.QueuePost),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register PurgePostViews job", err)
		return fmt.Errorf("register purge post views: %w", err)
	}

	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
