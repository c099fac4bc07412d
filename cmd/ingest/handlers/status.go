package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/soundlane/ingest/cmd/ingest/repository"
	"github.com/soundlane/ingest/cmd/ingest/service"
	"github.com/soundlane/ingest/common/bootstrap"
)

// StatusHandler answers processing-status polls and the external
// worker's finalize callback
type StatusHandler struct {
	components *bootstrap.Components
	status     *service.StatusService
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(components *bootstrap.Components, status *service.StatusService) *StatusHandler {
	return &StatusHandler{
		components: components,
		status:     status,
	}
}

// GetSongStatus returns the processing state of a submission
// GET /api/v1/songs/:processingId/status
func (h *StatusHandler) GetSongStatus(c echo.Context) error {
	processingID, err := parseIDParam(c, "processingId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid processing_id format")
	}

	status, err := h.status.GetStatus(c.Request().Context(), processingID)
	if err != nil {
		if errors.Is(err, repository.ErrSongNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "song not found")
		}
		h.components.Logger.Error("status lookup failed", "processing_id", processingID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get song status")
	}

	return c.JSON(http.StatusOK, status)
}

// finalizeRequest is the worker's completion report
type finalizeRequest struct {
	SongURL string `json:"song_url"`
}

// FinalizeSong applies the external worker's completion report
// PUT /internal/v1/songs/:processingId/media
func (h *StatusHandler) FinalizeSong(c echo.Context) error {
	processingID, err := parseIDParam(c, "processingId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid processing_id format")
	}

	var req finalizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.status.Finalize(c.Request().Context(), processingID, req.SongURL); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingInput):
			return echo.NewHTTPError(http.StatusBadRequest, "song_url is required")
		case errors.Is(err, repository.ErrSongNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "song not found")
		default:
			h.components.Logger.Error("finalize failed", "processing_id", processingID, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to finalize song")
		}
	}

	return c.NoContent(http.StatusNoContent)
}
