package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrValidation = errors.New("validation error")

type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type Service struct {
	storage ObjectStorage
}

type SaveInput struct {
	// FileUniqueID is Telegram's stable identifier for the photo bytes.
	FileUniqueID string
	FileName     string
	ContentType  string
	Body         io.Reader
	Size         int64
}

func NewService(storage ObjectStorage) *Service {
	return &Service{storage: storage}
}

// SavePhoto stores a mod image and returns its object key. Keys are
// built server-side from the Telegram file unique id plus a random
// suffix, client-supplied names never reach the bucket.
func (s *Service) SavePhoto(ctx context.Context, input SaveInput) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("object storage is not configured")
	}
	if input.FileUniqueID == "" || input.Body == nil {
		return "", ErrValidation
	}

	ext := strings.ToLower(filepath.Ext(input.FileName))
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("mods/%s_%s%s", input.FileUniqueID, uuid.NewString(), ext)

	contentType := input.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	if err := s.storage.Put(ctx, key, input.Body, input.Size, contentType); err != nil {
		return "", fmt.Errorf("put photo object: %w", err)
	}

	return key, nil
}

// PhotoURL returns a short-lived signed link to a stored mod image.
func (s *Service) PhotoURL(ctx context.Context, key string) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("object storage is not configured")
	}
	if key == "" {
		return "", nil
	}

	return s.storage.PresignGet(ctx, key, signedURLTTL)
}

func (s *Service) DeletePhoto(ctx context.Context, key string) error {
	if s.storage == nil {
		return fmt.Errorf("object storage is not configured")
	}
	if key == "" {
		return nil
	}

	return s.storage.Delete(ctx, key)
}
