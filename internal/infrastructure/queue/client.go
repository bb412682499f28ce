package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"blog-backend/internal/shared"
)

// Client enqueues background tasks. It is the only producer-side touchpoint
// with asynq; domain services depend on the Enqueuer interface instead.
type Client struct {
	client *asynq.Client
}

// Enqueuer is what domain services see. Kept minimal so tests can fake it.
type Enqueuer interface {
	EnqueueRecordPostView(ctx context.Context, payload shared.RecordPostViewPayload) error
}

func NewClient(redisAddr, redisPassword string, redisDB int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

// EnqueueRecordPostView queues a best-effort view-count increment.
func (c *Client) EnqueueRecordPostView(ctx context.Context, payload shared.RecordPostViewPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal record view payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeRecordPostView, data)
	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueuePost),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue record view: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
