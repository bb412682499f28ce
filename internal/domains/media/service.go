package media

import "context"

// UploadResult describes a stored image.
type UploadResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Service is the business logic contract for media uploads.
type Service interface {
	// UploadImage validates and stores an image, returning its public URL.
	UploadImage(ctx context.Context, filename, contentType string, data []byte) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
}
