package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"coverapi/internal/config"
)

// Package storage contains blob storage abstractions for S3-compatible stores and Google Cloud Storage.
// Implementations avoid local disk and rely on streaming I/O only.

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is a reusable object storage client interface.
// Methods use context and streaming readers; no local disk is used.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	// File listings and upload responses use it when no public base URL is configured.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	// URL returns the stable public URL recorded for a key.
	URL(key string) string
}

// New builds the backend selected by cfg.Backend.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Backend {
	case "", "minio":
		return NewMinIO(cfg.MinIO, cfg.PublicBaseURL)
	case "gcs":
		return NewGCS(ctx, cfg.GCS, cfg.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
