package file

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/pkg/id"
)

// UploadInput is one admin file upload. Size comes from the multipart header
// and is enforced before any bytes reach storage.
type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// UploadResult points at the stored object.
type UploadResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Service stores uploaded media (event images, gallery photos, resource
// files) and returns public URLs for embedding in content records.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Uploads are site media and resource documents only.
var allowedContentTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"image/webp":      {},
	"application/pdf": {},
	"audio/mpeg":      {},
	"video/mp4":       {},
}

type service struct {
	store   objectStore
	maxSize int64
}

func NewService(store objectStore, maxSize int64) Service {
	return &service{store: store, maxSize: maxSize}
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	if input.Size <= 0 || input.Size > s.maxSize {
		return nil, fmt.Errorf("file size %d outside allowed range: %w", input.Size, domain.ErrBadRequest)
	}
	if _, ok := allowedContentTypes[input.ContentType]; !ok {
		return nil, fmt.Errorf("content type %q not allowed: %w", input.ContentType, domain.ErrBadRequest)
	}

	// Key layout: uploads/2026/08/<ulid><ext>. The ULID makes the key unique;
	// the original name survives only as the extension.
	ext := strings.ToLower(path.Ext(input.Filename))
	key := fmt.Sprintf("uploads/%s/%s%s", time.Now().UTC().Format("2006/01"), id.New(), ext)

	// LimitReader backstops a lying Content-Length header.
	url, err := s.store.Upload(ctx, key, io.LimitReader(input.Reader, s.maxSize), input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("store object: %w", err)
	}
	return &UploadResult{Key: key, URL: url}, nil
}

func (s *service) Delete(ctx context.Context, key string) error {
	if !strings.HasPrefix(key, "uploads/") {
		return fmt.Errorf("key outside upload prefix: %w", domain.ErrBadRequest)
	}
	return s.store.Delete(ctx, key)
}
