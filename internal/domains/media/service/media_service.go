package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"blog-backend/internal/domains/media"
	"blog-backend/internal/infrastructure/storage"
)

// Covers and avatars only; 5 MB is generous for both.
const maxUploadBytes = 5 * 1024 * 1024

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// mediaService implements media.Service on top of MinIO.
type mediaService struct {
	storage *storage.MinIOStorage
}

// NewMediaService creates a media service instance.
func NewMediaService(storage *storage.MinIOStorage) media.Service {
	return &mediaService{storage: storage}
}

func (s *mediaService) UploadImage(ctx context.Context, filename, contentType string, data []byte) (*media.UploadResult, error) {
	if len(data) == 0 {
		return nil, media.ErrEmptyFile
	}
	if len(data) > maxUploadBytes {
		return nil, media.ErrFileTooLarge
	}
	if !allowedContentTypes[strings.ToLower(contentType)] {
		return nil, media.ErrUnsupportedType
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = extensionFor(contentType)
	}
	key := fmt.Sprintf("covers/%s%s", uuid.New().String(), ext)

	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, err
	}

	return &media.UploadResult{Key: key, URL: url}, nil
}

func (s *mediaService) Delete(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
