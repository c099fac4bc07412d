package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/soundlane/ingest/cmd/ingest/models"
	"github.com/soundlane/ingest/common/db"
)

// ErrPlaylistNotFound is returned when no playlist matches the given ID
var ErrPlaylistNotFound = errors.New("playlist not found")

// PlaylistRepository handles database operations for system playlists
type PlaylistRepository struct {
	db *db.DB
}

// NewPlaylistRepository creates a new playlist repository
func NewPlaylistRepository(database *db.DB) *PlaylistRepository {
	return &PlaylistRepository{db: database}
}

// Create inserts a new system playlist
func (r *PlaylistRepository) Create(ctx context.Context, playlist *models.SystemPlaylist) error {
	query := `
		INSERT INTO system_playlist (
			playlist_id, name, cover_image_url, created_by, created_at
		) VALUES (
			$1, $2, $3, $4, $5
		)
	`

	_, err := r.db.Exec(ctx, query,
		playlist.PlaylistID,
		playlist.Name,
		playlist.CoverImageURL,
		playlist.CreatedBy,
		playlist.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	return nil
}

// UpdatePlaylistInput carries the fields an edit may change. A nil
// CoverImageURL keeps the stored cover.
type UpdatePlaylistInput struct {
	PlaylistID    uuid.UUID
	Name          string
	CoverImageURL *string
}

// Update updates a system playlist
func (r *PlaylistRepository) Update(ctx context.Context, input UpdatePlaylistInput) error {
	query := `
		UPDATE system_playlist
		SET name = $2,
		    cover_image_url = COALESCE($3, cover_image_url)
		WHERE playlist_id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		input.PlaylistID,
		input.Name,
		input.CoverImageURL,
	)

	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrPlaylistNotFound
	}

	return nil
}
