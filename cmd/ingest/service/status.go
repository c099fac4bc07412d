package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/soundlane/ingest/common/logger"
)

// StatusCache is a small key/value cache with expiry. Lookup misses and
// backend errors are treated the same way: fall through to the catalog.
type StatusCache interface {
	Get(ctx context.Context, key string) (string, error)
	SetWithExpiry(ctx context.Context, key, value string, expiry time.Duration) error
	Delete(ctx context.Context, key string) error
}

// SongStatus is the client-facing processing state of a submission
type SongStatus struct {
	ProcessingID  string  `json:"processing_id"`
	Title         string  `json:"title"`
	Processing    bool    `json:"processing"`
	CoverImageURL string  `json:"cover_image_url"`
	SongURL       *string `json:"song_url,omitempty"`
}

// StatusService answers processing-status polls and applies the external
// worker's finalize calls. Clients poll while the worker transcodes, so
// reads sit behind a short-TTL cache.
type StatusService struct {
	songs SongStore
	cache StatusCache
	ttl   time.Duration
	log   *logger.Logger
}

// NewStatusService creates a new status service
func NewStatusService(songs SongStore, cache StatusCache, log *logger.Logger) *StatusService {
	return &StatusService{
		songs: songs,
		cache: cache,
		ttl:   5 * time.Second,
		log:   log,
	}
}

// GetStatus returns the processing state for a submission
func (s *StatusService) GetStatus(ctx context.Context, processingID uuid.UUID) (*SongStatus, error) {
	cacheKey := statusCacheKey(processingID)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		status := &SongStatus{}
		if err := json.Unmarshal([]byte(cached), status); err == nil {
			return status, nil
		}
		// Unreadable cache entry, fall through to the catalog
		_ = s.cache.Delete(ctx, cacheKey)
	}

	song, err := s.songs.GetByProcessingID(ctx, processingID)
	if err != nil {
		return nil, err
	}

	status := &SongStatus{
		ProcessingID:  song.ProcessingID.String(),
		Title:         song.Title,
		Processing:    song.Processing,
		CoverImageURL: song.CoverImageURL,
		SongURL:       song.SongURL,
	}

	if encoded, err := json.Marshal(status); err == nil {
		if err := s.cache.SetWithExpiry(ctx, cacheKey, string(encoded), s.ttl); err != nil {
			s.log.Warn("status cache write failed", "processing_id", processingID, "error", err)
		}
	}

	return status, nil
}

// Finalize applies the external worker's completion report: set the
// processed audio URL and clear the pending flag. Idempotent, because
// the worker's notification channel is at-least-once.
func (s *StatusService) Finalize(ctx context.Context, processingID uuid.UUID, songURL string) error {
	if songURL == "" {
		return fmt.Errorf("%w: song url", ErrMissingInput)
	}

	if err := s.songs.FinalizeMedia(ctx, processingID, songURL); err != nil {
		return err
	}

	// Drop the cached pending state so polls see the result immediately
	if err := s.cache.Delete(ctx, statusCacheKey(processingID)); err != nil {
		s.log.Warn("status cache invalidation failed", "processing_id", processingID, "error", err)
	}

	s.log.Info("song finalized", "processing_id", processingID, "song_url", songURL)
	return nil
}

func statusCacheKey(processingID uuid.UUID) string {
	return "song:status:" + processingID.String()
}
