package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"blog-backend/internal/domains/post"
	"blog-backend/internal/shared"
	"blog-backend/pkg/logger"
)

const defaultRetentionDays = 90

// PurgeViewsHandler trims old rows out of the view log on schedule.
type PurgeViewsHandler struct {
	repo post.Repository
}

func NewPurgeViewsHandler(repo post.Repository) *PurgeViewsHandler {
	return &PurgeViewsHandler{repo: repo}
}

// ProcessTask deletes view-log rows older than the retention window.
func (h *PurgeViewsHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.PurgePostViewsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal purge payload: %w", asynq.SkipRetry)
	}

	retention := payload.RetentionDays
	if retention <= 0 {
		retention = defaultRetentionDays
	}
	cutoff := time.Now().AddDate(0, 0, -retention)

	removed, err := h.repo.PurgeViews(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge post views: %w", err)
	}

	logger.Info("Purged old post views", map[string]interface{}{
		"removed":        removed,
		"retention_days": retention,
	})
	return nil
}
