package models

import (
	"time"

	"github.com/google/uuid"
)

// Artist represents a creator profile.
// Maps to: artist table
type Artist struct {
	ArtistID        uuid.UUID `db:"artist_id" json:"artist_id"`
	StageName       string    `db:"stage_name" json:"stage_name"`
	RealName        string    `db:"real_name" json:"real_name"`
	Bio             string    `db:"bio" json:"bio"`
	ProfileImageURL string    `db:"profile_image_url" json:"profile_image_url"`
	CreatedBy       string    `db:"created_by" json:"created_by"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
