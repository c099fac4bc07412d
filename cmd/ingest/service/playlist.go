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

// PlaylistStore is the slice of the catalog repository the playlist flows need
type PlaylistStore interface {
	Create(ctx context.Context, playlist *models.SystemPlaylist) error
	Update(ctx context.Context, input repository.UpdatePlaylistInput) error
}

// CreatePlaylistInput carries a new system playlist submission
type CreatePlaylistInput struct {
	Name        string
	SubmittedBy string
	Cover       *FileUpload
}

// UpdatePlaylistInput carries a playlist edit. Cover is optional; when
// absent the stored image is kept.
type UpdatePlaylistInput struct {
	PlaylistID  uuid.UUID
	Name        string
	SubmittedBy string
	Cover       *FileUpload
}

// PlaylistService handles curated playlist creation and edits
type PlaylistService struct {
	store     ArtifactStore
	playlists PlaylistStore
	log       *logger.Logger

	now   func() time.Time
	newID func() uuid.UUID
}

// NewPlaylistService creates a new playlist service
func NewPlaylistService(store ArtifactStore, playlists PlaylistStore, log *logger.Logger) *PlaylistService {
	return &PlaylistService{
		store:     store,
		playlists: playlists,
		log:       log,
		now:       time.Now,
		newID:     uuid.New,
	}
}

// CreatePlaylist uploads the cover and inserts the playlist row
func (s *PlaylistService) CreatePlaylist(ctx context.Context, input CreatePlaylistInput) (*models.SystemPlaylist, error) {
	switch {
	case input.Name == "":
		return nil, fmt.Errorf("%w: playlist name", ErrMissingInput)
	case input.Cover == nil || len(input.Cover.Data) == 0:
		return nil, fmt.Errorf("%w: cover image", ErrMissingInput)
	}

	now := s.now().UTC()
	key := imageObjectKey("system-playlists", input.SubmittedBy, now, input.Cover.Name)

	coverURL, err := s.store.Upload(ctx, input.Cover.Data, key, input.Cover.ContentType)
	if err != nil {
		s.log.Error("playlist cover upload failed", "key", key, "error", err)
		return nil, fmt.Errorf("%w: cover image: %v", ErrUploadFailed, err)
	}

	playlist := &models.SystemPlaylist{
		PlaylistID:    s.newID(),
		Name:          input.Name,
		CoverImageURL: coverURL,
		CreatedBy:     input.SubmittedBy,
		CreatedAt:     now,
	}

	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, err
	}

	s.log.Info("playlist created", "playlist_id", playlist.PlaylistID, "name", playlist.Name)
	return playlist, nil
}

// UpdatePlaylist edits a playlist, replacing the cover only when a new
// one was submitted
func (s *PlaylistService) UpdatePlaylist(ctx context.Context, input UpdatePlaylistInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: playlist name", ErrMissingInput)
	}

	var coverURL *string
	if input.Cover != nil && len(input.Cover.Data) > 0 {
		key := imageObjectKey("system-playlists", input.SubmittedBy, s.now().UTC(), input.Cover.Name)
		url, err := s.store.Upload(ctx, input.Cover.Data, key, input.Cover.ContentType)
		if err != nil {
			s.log.Error("playlist cover upload failed", "key", key, "error", err)
			return fmt.Errorf("%w: cover image: %v", ErrUploadFailed, err)
		}
		coverURL = &url
	}

	err := s.playlists.Update(ctx, repository.UpdatePlaylistInput{
		PlaylistID:    input.PlaylistID,
		Name:          input.Name,
		CoverImageURL: coverURL,
	})
	if err != nil {
		return err
	}

	s.log.Info("playlist updated", "playlist_id", input.PlaylistID)
	return nil
}
