package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"coverapi/internal/config"
)

const gcsPublicHost = "https://storage.googleapis.com"

// gcsStorage implements Storage on a Google Cloud Storage bucket.
type gcsStorage struct {
	client  *gcs.Client
	bucket  string
	baseURL string
}

// NewGCS creates a Google Cloud Storage backend and checks that the bucket is reachable.
func NewGCS(ctx context.Context, cfg config.GCSConfig, publicBaseURL string) (Storage, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("gcs bucket is required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsFile) != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}

	g := &gcsStorage{client: client, bucket: cfg.Bucket, baseURL: publicBaseURL}
	if g.baseURL == "" {
		g.baseURL = joinURL(gcsPublicHost, cfg.Bucket)
	}

	if err := g.ensureBucket(ctx, cfg.ProjectID); err != nil {
		_ = client.Close()
		return nil, err
	}
	return g, nil
}

func (g *gcsStorage) ensureBucket(ctx context.Context, projectID string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := g.client.Bucket(g.bucket).Attrs(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gcs.ErrBucketNotExist) {
		return fmt.Errorf("check bucket existence: %w", err)
	}
	if strings.TrimSpace(projectID) == "" {
		return errors.New("gcs project id is required to create bucket")
	}
	if err := g.client.Bucket(g.bucket).Create(ctx, projectID, nil); err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}
	return nil
}

func (g *gcsStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	w.ContentType = opt.ContentType
	w.Metadata = opt.Metadata
	written, err := io.Copy(w, r)
	if err != nil {
		_ = w.Close()
		return ObjectInfo{}, err
	}
	if err := w.Close(); err != nil {
		return ObjectInfo{}, err
	}
	attrs := w.Attrs()
	info := ObjectInfo{
		Key:          key,
		Size:         written,
		ContentType:  opt.ContentType,
		LastModified: time.Now(),
		Metadata:     opt.Metadata,
	}
	if attrs != nil {
		info.ETag = attrs.Etag
		info.LastModified = attrs.Updated
	}
	return info, nil
}

func (g *gcsStorage) Delete(ctx context.Context, key string) error {
	return g.client.Bucket(g.bucket).Object(key).Delete(ctx)
}

// PresignGet signs a V4 GET URL. It requires credentials able to sign (service account key or IAM signBlob).
func (g *gcsStorage) PresignGet(_ context.Context, key string, expiry time.Duration) (string, error) {
	return g.client.Bucket(g.bucket).SignedURL(key, &gcs.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(expiry),
		Scheme:  gcs.SigningSchemeV4,
	})
}

func (g *gcsStorage) URL(key string) string {
	return joinURL(g.baseURL, key)
}
