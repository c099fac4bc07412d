package models

import (
	"time"

	"github.com/google/uuid"
)

// Song represents one submitted media item in the catalog.
// Maps to: song table
//
// A row is created as soon as the cover image is stored; the audio URL
// arrives later from the external processor. The pair (Processing,
// SongURL) therefore moves through exactly two states:
//
//	Processing=true,  SongURL=nil:  pending, worker not done yet
//	Processing=false, SongURL=set:  finalized
type Song struct {
	// Correlation identifier, generated at submission time. Also embedded
	// in the audio object key so the worker can find this row.
	ProcessingID uuid.UUID `db:"processing_id" json:"processing_id"`

	Title           string `db:"title" json:"title"`
	Album           string `db:"album" json:"album"`
	Language        string `db:"language" json:"language"`
	DurationSeconds int32  `db:"duration_seconds" json:"duration_seconds"`

	// Attributed creator name as submitted, not a foreign key
	ArtistName string `db:"artist_name" json:"artist_name"`

	// Set synchronously at creation
	CoverImageURL string `db:"cover_image_url" json:"cover_image_url"`

	// Set by the external processor once transcoding finishes
	SongURL *string `db:"song_url" json:"song_url,omitempty"`

	// True until the external processor reports back
	Processing bool `db:"processing" json:"processing"`

	// Audit fields
	CreatedBy string    `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
