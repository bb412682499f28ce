package shared

import "github.com/google/uuid"

// Asynq task types.
const (
	TypeRecordPostView = "post:record_view"
	TypePurgePostViews = "post:purge_views"
)

// Asynq queue names.
const (
	QueueDefault = "default"
	QueuePost    = "post"
)

// RecordPostViewPayload carries one best-effort view event.
type RecordPostViewPayload struct {
	PostID    uuid.UUID `json:"post_id"`
	ViewerIP  *string   `json:"viewer_ip,omitempty"`
	UserAgent *string   `json:"user_agent,omitempty"`
}

// PurgePostViewsPayload parameterizes the scheduled view-log purge.
type PurgePostViewsPayload struct {
	RetentionDays int `json:"retention_days"`
}
