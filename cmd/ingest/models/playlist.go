package models

import (
	"time"

	"github.com/google/uuid"
)

// SystemPlaylist represents a curated, service-owned playlist.
// Maps to: system_playlist table
type SystemPlaylist struct {
	PlaylistID    uuid.UUID `db:"playlist_id" json:"playlist_id"`
	Name          string    `db:"name" json:"name"`
	CoverImageURL string    `db:"cover_image_url" json:"cover_image_url"`
	CreatedBy     string    `db:"created_by" json:"created_by"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
