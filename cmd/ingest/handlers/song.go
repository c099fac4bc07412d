package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/soundlane/ingest/cmd/ingest/middleware"
	"github.com/soundlane/ingest/cmd/ingest/repository"
	"github.com/soundlane/ingest/cmd/ingest/service"
	"github.com/soundlane/ingest/common/bootstrap"
)

// SongHandler handles song submission requests
type SongHandler struct {
	components *bootstrap.Components
	ingest     *service.IngestService
}

// NewSongHandler creates a new song handler
func NewSongHandler(components *bootstrap.Components, ingest *service.IngestService) *SongHandler {
	return &SongHandler{
		components: components,
		ingest:     ingest,
	}
}

// submissionResult is the single result shape every submission gets:
// exactly one of success or error is populated.
type submissionResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	SongID  string `json:"song_id,omitempty"`
}

// SubmitSong accepts a multipart song submission
// POST /api/v1/songs
func (h *SongHandler) SubmitSong(c echo.Context) error {
	username := middleware.GetUsername(c)

	songFile, err := readFormFile(c, "song")
	if err != nil {
		return c.JSON(http.StatusBadRequest, submissionResult{Error: "song file is required"})
	}
	coverFile, err := readFormFile(c, "coverImage")
	if err != nil {
		return c.JSON(http.StatusBadRequest, submissionResult{Error: "cover image is required"})
	}

	// Duration is advisory metadata from the upload form; an unparsable
	// value degrades to zero rather than rejecting the submission
	duration, _ := strconv.Atoi(c.FormValue("duration"))

	input := service.SubmitSongInput{
		Title:           c.FormValue("title"),
		Album:           c.FormValue("album"),
		Language:        c.FormValue("language"),
		DurationSeconds: int32(duration),
		ArtistName:      c.FormValue("artist"),
		SubmittedBy:     username,
		Song:            songFile,
		Cover:           coverFile,
	}

	receipt, err := h.ingest.CreateSong(c.Request().Context(), input)
	if err != nil {
		return h.submissionError(c, err)
	}

	return c.JSON(http.StatusCreated, submissionResult{
		Success: true,
		SongID:  receipt.ProcessingID.String(),
	})
}

func (h *SongHandler) submissionError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrMissingInput):
		return c.JSON(http.StatusBadRequest, submissionResult{Error: err.Error()})
	case errors.Is(err, repository.ErrDuplicateTitle):
		return c.JSON(http.StatusConflict, submissionResult{Error: repository.ErrDuplicateTitle.Error()})
	case errors.Is(err, service.ErrUploadFailed):
		return c.JSON(http.StatusBadGateway, submissionResult{Error: service.ErrUploadFailed.Error()})
	default:
		h.components.Logger.Error("song submission failed", "error", err)
		return c.JSON(http.StatusInternalServerError, submissionResult{Error: "failed to create song"})
	}
}

// readFormFile pulls one file out of the multipart form and buffers it.
// Uploads are size-capped by echo's body limit middleware, so buffering
// in memory is acceptable here.
func readFormFile(c echo.Context, field string) (*service.FileUpload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}

	return bufferUpload(fileHeader)
}

func bufferUpload(fileHeader *multipart.FileHeader) (*service.FileUpload, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &service.FileUpload{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// parseIDParam parses a UUID path parameter shared by several handlers
func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}
