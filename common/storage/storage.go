package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/soundlane/ingest/common/config"
	"github.com/soundlane/ingest/common/logger"
)

// Store uploads and deletes binary objects in a GCS bucket and resolves
// public URLs for uploaded objects. Safe for concurrent use across
// distinct keys.
type Store struct {
	bucket    *gcs.BucketHandle
	cfg       config.StorageConfig
	log       *logger.Logger
	closeFunc func() error
}

// New creates a Store bound to the configured bucket. The configuration
// is captured at construction; nothing here reads the environment.
func New(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket is required")
	}

	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	log.Info("object store ready", "bucket", cfg.Bucket, "cdn", cfg.CDNBaseURL != "")

	return &Store{
		bucket:    client.Bucket(cfg.Bucket),
		cfg:       cfg,
		log:       log,
		closeFunc: client.Close,
	}, nil
}

// Upload writes data under key and returns the public URL of the object.
// The object becomes visible atomically when the writer is closed; a
// failed upload leaves no partial object behind.
func (s *Store) Upload(ctx context.Context, data []byte, key, contentType string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("storage: object key is required")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		// Abandon the writer so no object is committed
		_ = w.Close()
		return "", fmt.Errorf("upload object %q: %w", key, err)
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("commit object %q: %w", key, err)
	}

	s.log.Info("object uploaded", "key", key, "size_bytes", len(data), "content_type", contentType)

	return s.PublicURL(key), nil
}

// Delete removes the object under key. Deleting a key that does not
// exist is not an error, so a compensation retried after a partial
// failure stays a no-op. Callers running in cleanup paths are expected
// to log the returned error rather than propagate it.
func (s *Store) Delete(ctx context.Context, key string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.bucket.Object(key).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete object %q: %w", key, err)
	}

	s.log.Info("object deleted", "key", key)
	return nil
}

// PublicURL returns the URL under which the object at key is served.
func (s *Store) PublicURL(key string) string {
	return objectURL(s.cfg.Bucket, s.cfg.CDNBaseURL, key)
}

// Close releases the underlying client
func (s *Store) Close() error {
	return s.closeFunc()
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.cfg.OperationTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}
