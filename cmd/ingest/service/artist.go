package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/soundlane/ingest/cmd/ingest/models"
	"github.com/soundlane/ingest/cmd/ingest/repository"
	"github.com/soundlane/ingest/common/logger"
)

// ArtistStore is the slice of the catalog repository the artist flows need
type ArtistStore interface {
	Create(ctx context.Context, artist *models.Artist) error
	Update(ctx context.Context, input repository.UpdateArtistInput) error
}

// CreateArtistInput carries a new artist profile submission
type CreateArtistInput struct {
	StageName   string
	RealName    string
	Bio         string
	SubmittedBy string
	Portrait    *FileUpload
}

// UpdateArtistInput carries an artist profile edit. Portrait is optional;
// when absent the stored image is kept.
type UpdateArtistInput struct {
	ArtistID    uuid.UUID
	StageName   string
	RealName    string
	Bio         string
	SubmittedBy string
	Portrait    *FileUpload
}

// ArtistService handles artist profile creation and edits. These are
// thin two-step flows (optional image upload, then a row write) without
// the ingestion saga's compensation: a leaked profile image has no
// correlation contract hanging off it.
type ArtistService struct {
	store   ArtifactStore
	artists ArtistStore
	log     *logger.Logger

	now   func() time.Time
	newID func() uuid.UUID
}

// NewArtistService creates a new artist service
func NewArtistService(store ArtifactStore, artists ArtistStore, log *logger.Logger) *ArtistService {
	return &ArtistService{
		store:   store,
		artists: artists,
		log:     log,
		now:     time.Now,
		newID:   uuid.New,
	}
}

// CreateArtist uploads the portrait and inserts the profile row
func (s *ArtistService) CreateArtist(ctx context.Context, input CreateArtistInput) (*models.Artist, error) {
	switch {
	case input.StageName == "":
		return nil, fmt.Errorf("%w: stage name", ErrMissingInput)
	case input.Portrait == nil || len(input.Portrait.Data) == 0:
		return nil, fmt.Errorf("%w: profile image", ErrMissingInput)
	}

	now := s.now().UTC()
	key := imageObjectKey("artists", input.SubmittedBy, now, input.Portrait.Name)

	imageURL, err := s.store.Upload(ctx, input.Portrait.Data, key, input.Portrait.ContentType)
	if err != nil {
		s.log.Error("artist image upload failed", "key", key, "error", err)
		return nil, fmt.Errorf("%w: profile image: %v", ErrUploadFailed, err)
	}

	artist := &models.Artist{
		ArtistID:        s.newID(),
		StageName:       input.StageName,
		RealName:        input.RealName,
		Bio:             input.Bio,
		ProfileImageURL: imageURL,
		CreatedBy:       input.SubmittedBy,
		CreatedAt:       now,
	}

	if err := s.artists.Create(ctx, artist); err != nil {
		return nil, err
	}

	s.log.Info("artist created", "artist_id", artist.ArtistID, "stage_name", artist.StageName)
	return artist, nil
}

// UpdateArtist edits a profile, replacing the portrait only when a new
// one was submitted
func (s *ArtistService) UpdateArtist(ctx context.Context, input UpdateArtistInput) error {
	if input.StageName == "" {
		return fmt.Errorf("%w: stage name", ErrMissingInput)
	}

	var imageURL *string
	if input.Portrait != nil && len(input.Portrait.Data) > 0 {
		key := imageObjectKey("artists", input.SubmittedBy, s.now().UTC(), input.Portrait.Name)
		url, err := s.store.Upload(ctx, input.Portrait.Data, key, input.Portrait.ContentType)
		if err != nil {
			s.log.Error("artist image upload failed", "key", key, "error", err)
			return fmt.Errorf("%w: profile image: %v", ErrUploadFailed, err)
		}
		imageURL = &url
	}

	err := s.artists.Update(ctx, repository.UpdateArtistInput{
		ArtistID:        input.ArtistID,
		StageName:       input.StageName,
		RealName:        input.RealName,
		Bio:             input.Bio,
		ProfileImageURL: imageURL,
	})
	if err != nil {
		return err
	}

	s.log.Info("artist updated", "artist_id", input.ArtistID)
	return nil
}
