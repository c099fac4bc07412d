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

// PlaylistHandler handles system playlist requests
type PlaylistHandler struct {
	components *bootstrap.Components
	playlists  *service.PlaylistService
}

// NewPlaylistHandler creates a new playlist handler
func NewPlaylistHandler(components *bootstrap.Components, playlists *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{
		components: components,
		playlists:  playlists,
	}
}

// CreatePlaylist creates a system playlist from a multipart form
// POST /api/v1/playlists
func (h *PlaylistHandler) CreatePlaylist(c echo.Context) error {
	username := middleware.GetUsername(c)

	cover, err := readFormFile(c, "coverImage")
	if err != nil {
		return c.JSON(http.StatusBadRequest, submissionResult{Error: "cover image is required"})
	}

	input := service.CreatePlaylistInput{
		Name:        c.FormValue("playlistName"),
		SubmittedBy: username,
		Cover:       cover,
	}

	playlist, err := h.playlists.CreatePlaylist(c.Request().Context(), input)
	if err != nil {
		return h.playlistError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success":     true,
		"error":       "",
		"playlist_id": playlist.PlaylistID,
	})
}

// UpdatePlaylist edits a system playlist; the cover is optional
// PUT /api/v1/playlists/:id
func (h *PlaylistHandler) UpdatePlaylist(c echo.Context) error {
	username := middleware.GetUsername(c)

	playlistID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid playlist_id format")
	}

	// An absent or empty file part means "keep the current cover"
	cover, err := readFormFile(c, "coverImage")
	if err != nil {
		cover = nil
	}

	input := service.UpdatePlaylistInput{
		PlaylistID:  playlistID,
		Name:        c.FormValue("playlistName"),
		SubmittedBy: username,
		Cover:       cover,
	}

	if err := h.playlists.UpdatePlaylist(c.Request().Context(), input); err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "playlist not found")
		}
		return h.playlistError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"error":   "",
	})
}

func (h *PlaylistHandler) playlistError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrMissingInput):
		return c.JSON(http.StatusBadRequest, submissionResult{Error: err.Error()})
	case errors.Is(err, service.ErrUploadFailed):
		return c.JSON(http.StatusBadGateway, submissionResult{Error: service.ErrUploadFailed.Error()})
	default:
		h.components.Logger.Error("playlist request failed", "error", err)
		return c.JSON(http.StatusInternalServerError, submissionResult{Error: "failed to save playlist"})
	}
}
