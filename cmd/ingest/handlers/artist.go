package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/soundlane/ingest/cmd/ingest/middleware"
	"github.com/soundlane/ingest/cmd/ingest/repository"
	"github.com/soundlane/ingest/cmd/ingest/service"
	"github.com/soundlane/ingest/common/bootstrap"
)

// ArtistHandler handles artist profile requests
type ArtistHandler struct {
	components *bootstrap.Components
	artists    *service.ArtistService
}

// NewArtistHandler creates a new artist handler
func NewArtistHandler(components *bootstrap.Components, artists *service.ArtistService) *ArtistHandler {
	return &ArtistHandler{
		components: components,
		artists:    artists,
	}
}

// CreateArtist creates an artist profile from a multipart form
// POST /api/v1/artists
func (h *ArtistHandler) CreateArtist(c echo.Context) error {
	username := middleware.GetUsername(c)

	portrait, err := readFormFile(c, "coverImage")
	if err != nil {
		return c.JSON(http.StatusBadRequest, submissionResult{Error: "profile image is required"})
	}

	input := service.CreateArtistInput{
		StageName:   c.FormValue("stageName"),
		RealName:    c.FormValue("realName"),
		Bio:         c.FormValue("bio"),
		SubmittedBy: username,
		Portrait:    portrait,
	}

	artist, err := h.artists.CreateArtist(c.Request().Context(), input)
	if err != nil {
		return h.artistError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success":   true,
		"error":     "",
		"artist_id": artist.ArtistID,
	})
}

// UpdateArtist edits an artist profile; the image is optional
// PUT /api/v1/artists/:id
func (h *ArtistHandler) UpdateArtist(c echo.Context) error {
	username := middleware.GetUsername(c)

	artistID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid artist_id format")
	}

	// An absent or empty file part means "keep the current image"
	portrait, err := readFormFile(c, "coverImage")
	if err != nil {
		portrait = nil
	}

	input := service.UpdateArtistInput{
		ArtistID:    artistID,
		StageName:   c.FormValue("stageName"),
		RealName:    c.FormValue("realName"),
		Bio:         c.FormValue("bio"),
		SubmittedBy: username,
		Portrait:    portrait,
	}

	if err := h.artists.UpdateArtist(c.Request().Context(), input); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "artist not found")
		}
		return h.artistError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"error":   "",
	})
}

func (h *ArtistHandler) artistError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrMissingInput):
		return c.JSON(http.StatusBadRequest, submissionResult{Error: err.Error()})
	case errors.Is(err, service.ErrUploadFailed):
		return c.JSON(http.StatusBadGateway, submissionResult{Error: service.ErrUploadFailed.Error()})
	default:
		h.components.Logger.Error("artist request failed", "error", err)
		return c.JSON(http.StatusInternalServerError, submissionResult{Error: "failed to save artist"})
	}
}
