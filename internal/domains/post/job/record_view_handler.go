package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"blog-backend/internal/domains/post"
	"blog-backend/internal/shared"
	"blog-backend/pkg/logger"
)

// RecordViewHandler executes queued view-count increments against the store
// procedure.
type RecordViewHandler struct {
	repo post.Repository
}

func NewRecordViewHandler(repo post.Repository) *RecordViewHandler {
	return &RecordViewHandler{repo: repo}
}

// ProcessTask increments the view counter for one post. View counting is
// best-effort end to end, so a store failure is logged and swallowed rather
// than retried.
func (h *RecordViewHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.RecordPostViewPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal record view payload: %w", asynq.SkipRetry)
	}

	if err := h.repo.IncrementViewCount(ctx, payload.PostID, payload.ViewerIP, payload.UserAgent); err != nil {
		logger.Error("Failed to increment view count", err)
		return nil
	}

	logger.Debug("Recorded post view")
	return nil
}
