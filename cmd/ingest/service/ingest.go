package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/soundlane/ingest/cmd/ingest/models"
	"github.com/soundlane/ingest/common/logger"
)

// ArtifactStore is the slice of the object store gateway the ingestion
// flow needs. Delete must be idempotent: removing a key that was never
// written is a no-op.
type ArtifactStore interface {
	Upload(ctx context.Context, data []byte, key, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// SongStore is the slice of the catalog repository the ingestion flow needs
type SongStore interface {
	Create(ctx context.Context, song *models.Song) error
	GetByProcessingID(ctx context.Context, processingID uuid.UUID) (*models.Song, error)
	FinalizeMedia(ctx context.Context, processingID uuid.UUID, songURL string) error
}

// FileUpload is one binary payload from a submission
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// SubmitSongInput carries a full song submission
type SubmitSongInput struct {
	Title           string
	Album           string
	Language        string
	DurationSeconds int32
	ArtistName      string
	SubmittedBy     string
	Song            *FileUpload
	Cover           *FileUpload
}

// SongReceipt is returned to the caller on a successful submission.
// The processing ID is the handle for tracking the asynchronous
// transcoding work.
type SongReceipt struct {
	ProcessingID  uuid.UUID
	CoverImageURL string
}

// IngestService coordinates a song submission across the object store
// and the catalog. No transaction spans the two systems; instead each
// forward step has an explicit compensation, and the step order is fixed
// so that the catalog row always exists before the audio object does.
type IngestService struct {
	store       ArtifactStore
	songs       SongStore
	log         *logger.Logger
	stepTimeout time.Duration

	// Overridable for tests
	now   func() time.Time
	newID func() uuid.UUID
}

// NewIngestService creates a new ingest service
func NewIngestService(store ArtifactStore, songs SongStore, log *logger.Logger) *IngestService {
	return &IngestService{
		store:       store,
		songs:       songs,
		log:         log,
		stepTimeout: 60 * time.Second,
		now:         time.Now,
		newID:       uuid.New,
	}
}

// CreateSong runs the ingestion sequence:
//
//  1. upload the cover image
//  2. insert the catalog row (processing=true, no audio URL)
//  3. upload the audio object
//
// The audio object landing in the bucket is what triggers the external
// worker (via the bucket's event notification), so the row must be
// inserted before the audio is uploaded. Any failure after step 1
// deletes the cover object best-effort; a failure after step 2 leaves
// the row pending with no audio URL, which only an operator can resolve.
func (s *IngestService) CreateSong(ctx context.Context, input SubmitSongInput) (*SongReceipt, error) {
	if err := validateSubmission(input); err != nil {
		return nil, err
	}

	processingID := s.newID()
	now := s.now().UTC()
	songKey := songObjectKey(processingID.String(), input.Title, input.Song.Name)
	coverKey := coverObjectKey(now, input.Cover.Name)

	log := s.log.WithProcessingID(processingID.String())
	log.Info("song submission accepted",
		"title", input.Title,
		"song_key", songKey,
		"submitted_by", input.SubmittedBy,
	)

	// Step 1: cover image. Nothing exists yet, so a failure here needs
	// no compensation.
	coverURL, err := s.upload(ctx, input.Cover, coverKey)
	if err != nil {
		log.Error("cover upload failed", "key", coverKey, "error", err)
		return nil, fmt.Errorf("%w: cover image: %v", ErrUploadFailed, err)
	}

	// Step 2: catalog row, pending until the worker reports back
	song := &models.Song{
		ProcessingID:    processingID,
		Title:           input.Title,
		Album:           input.Album,
		Language:        input.Language,
		DurationSeconds: input.DurationSeconds,
		ArtistName:      input.ArtistName,
		CoverImageURL:   coverURL,
		SongURL:         nil,
		Processing:      true,
		CreatedBy:       input.SubmittedBy,
		CreatedAt:       now,
	}

	if err := s.createRow(ctx, song); err != nil {
		log.Error("song insert failed", "title", input.Title, "error", err)
		s.compensateCover(ctx, log, coverKey)
		return nil, err
	}

	// Step 3: audio object. Must come last: the bucket notification on
	// this object enqueues the processing ID, and the worker expects to
	// find the row it points at.
	if _, err := s.upload(ctx, input.Song, songKey); err != nil {
		// The row stays pending with no audio URL. That stuck state is
		// visible to operators; resubmission under the same title needs
		// manual cleanup first.
		log.Error("audio upload failed, row left pending", "key", songKey, "error", err)
		s.compensateCover(ctx, log, coverKey)
		return nil, fmt.Errorf("%w: audio file: %v", ErrUploadFailed, err)
	}

	log.Info("song handed off for processing", "song_key", songKey)

	return &SongReceipt{
		ProcessingID:  processingID,
		CoverImageURL: coverURL,
	}, nil
}

func (s *IngestService) upload(ctx context.Context, file *FileUpload, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.stepTimeout)
	defer cancel()

	return s.store.Upload(ctx, file.Data, key, file.ContentType)
}

func (s *IngestService) createRow(ctx context.Context, song *models.Song) error {
	ctx, cancel := context.WithTimeout(ctx, s.stepTimeout)
	defer cancel()

	return s.songs.Create(ctx, song)
}

// compensateCover deletes the cover object after a later step failed.
// The deletion error is logged and dropped: the primary failure is the
// one the caller must see, and the delete is idempotent so a leaked
// object can be removed again later. The parent context may already be
// canceled or past its deadline, so the delete gets a fresh one.
func (s *IngestService) compensateCover(ctx context.Context, log *logger.Logger, coverKey string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.stepTimeout)
	defer cancel()

	if err := s.store.Delete(ctx, coverKey); err != nil {
		log.Warn("cover cleanup failed, object may be orphaned", "key", coverKey, "error", err)
		return
	}

	log.Info("cover cleaned up after failed submission", "key", coverKey)
}

func validateSubmission(input SubmitSongInput) error {
	switch {
	case input.Title == "":
		return fmt.Errorf("%w: title", ErrMissingInput)
	case input.Album == "":
		return fmt.Errorf("%w: album", ErrMissingInput)
	case input.Language == "":
		return fmt.Errorf("%w: language", ErrMissingInput)
	case input.ArtistName == "":
		return fmt.Errorf("%w: artist", ErrMissingInput)
	case input.Song == nil || len(input.Song.Data) == 0:
		return fmt.Errorf("%w: song file", ErrMissingInput)
	case input.Cover == nil || len(input.Cover.Data) == 0:
		return fmt.Errorf("%w: cover image", ErrMissingInput)
	}
	return nil
}
