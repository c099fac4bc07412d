package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/soundlane/ingest/cmd/ingest/models"
	"github.com/soundlane/ingest/common/db"
)

var (
	// ErrDuplicateTitle is returned when the title unique constraint fires
	ErrDuplicateTitle = errors.New("a song with this title already exists")

	// ErrSongNotFound is returned when no row matches the given identifier
	ErrSongNotFound = errors.New("song not found")
)

// uniqueViolation is the Postgres SQLSTATE for unique constraint violations
const uniqueViolation = "23505"

// SongRepository handles database operations for songs
type SongRepository struct {
	db *db.DB
}

// NewSongRepository creates a new song repository
func NewSongRepository(database *db.DB) *SongRepository {
	return &SongRepository{db: database}
}

// Create inserts a new song row. Title uniqueness violations surface as
// ErrDuplicateTitle so callers can distinguish a user-actionable conflict
// from a backend failure.
func (r *SongRepository) Create(ctx context.Context, song *models.Song) error {
	query := `
		INSERT INTO song (
			processing_id, title, album, language, duration_seconds,
			artist_name, cover_image_url, song_url, processing,
			created_by, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	_, err := r.db.Exec(ctx, query,
		song.ProcessingID,
		song.Title,
		song.Album,
		song.Language,
		song.DurationSeconds,
		song.ArtistName,
		song.CoverImageURL,
		song.SongURL,
		song.Processing,
		song.CreatedBy,
		song.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateTitle
		}
		return fmt.Errorf("failed to create song: %w", err)
	}

	return nil
}

// GetByProcessingID retrieves a song by its correlation identifier
func (r *SongRepository) GetByProcessingID(ctx context.Context, processingID uuid.UUID) (*models.Song, error) {
	query := `
		SELECT processing_id, title, album, language, duration_seconds,
		       artist_name, cover_image_url, song_url, processing,
		       created_by, created_at
		FROM song
		WHERE processing_id = $1
	`

	song := &models.Song{}
	err := r.db.QueryRow(ctx, query, processingID).Scan(
		&song.ProcessingID,
		&song.Title,
		&song.Album,
		&song.Language,
		&song.DurationSeconds,
		&song.ArtistName,
		&song.CoverImageURL,
		&song.SongURL,
		&song.Processing,
		&song.CreatedBy,
		&song.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSongNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get song: %w", err)
	}

	return song, nil
}

// FinalizeMedia records the processed audio URL and clears the pending
// flag. The statement is idempotent: the external worker may report the
// same object more than once, and setting the same URL twice is harmless.
func (r *SongRepository) FinalizeMedia(ctx context.Context, processingID uuid.UUID, songURL string) error {
	query := `
		UPDATE song
		SET song_url = $2, processing = false
		WHERE processing_id = $1
	`

	tag, err := r.db.Exec(ctx, query, processingID, songURL)
	if err != nil {
		return fmt.Errorf("failed to finalize song media: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrSongNotFound
	}

	return nil
}
