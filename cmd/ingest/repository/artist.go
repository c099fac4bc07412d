package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/soundlane/ingest/cmd/ingest/models"
	"github.com/soundlane/ingest/common/db"
)

// ErrArtistNotFound is returned when no artist matches the given ID
var ErrArtistNotFound = errors.New("artist not found")

// ArtistRepository handles database operations for artist profiles
type ArtistRepository struct {
	db *db.DB
}

// NewArtistRepository creates a new artist repository
func NewArtistRepository(database *db.DB) *ArtistRepository {
	return &ArtistRepository{db: database}
}

// Create inserts a new artist profile
func (r *ArtistRepository) Create(ctx context.Context, artist *models.Artist) error {
	query := `
		INSERT INTO artist (
			artist_id, stage_name, real_name, bio, profile_image_url,
			created_by, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err := r.db.Exec(ctx, query,
		artist.ArtistID,
		artist.StageName,
		artist.RealName,
		artist.Bio,
		artist.ProfileImageURL,
		artist.CreatedBy,
		artist.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create artist: %w", err)
	}

	return nil
}

// UpdateArtistInput carries the fields an edit may change. A nil
// ProfileImageURL keeps the stored image.
type UpdateArtistInput struct {
	ArtistID        uuid.UUID
	StageName       string
	RealName        string
	Bio             string
	ProfileImageURL *string
}

// Update updates an artist profile
func (r *ArtistRepository) Update(ctx context.Context, input UpdateArtistInput) error {
	query := `
		UPDATE artist
		SET stage_name = $2,
		    real_name = $3,
		    bio = $4,
		    profile_image_url = COALESCE($5, profile_image_url)
		WHERE artist_id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		input.ArtistID,
		input.StageName,
		input.RealName,
		input.Bio,
		input.ProfileImageURL,
	)

	if err != nil {
		return fmt.Errorf("failed to update artist: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrArtistNotFound
	}

	return nil
}
