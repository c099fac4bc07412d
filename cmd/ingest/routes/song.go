package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/soundlane/ingest/cmd/ingest/container"
	"github.com/soundlane/ingest/cmd/ingest/handlers"
	"github.com/soundlane/ingest/cmd/ingest/middleware"
)

// Submission throttles: uploads carry whole files, so the windows are
// tighter than typical API limits. The global cap backstops the
// per-caller one against many distinct callers arriving at once.
const (
	songSubmitLimit       = 10
	songSubmitWindowSec   = 60
	songSubmitGlobalLimit = 120
)

// RegisterSongRoutes registers song submission and status routes
func RegisterSongRoutes(e *echo.Echo, c *container.Container) {
	songHandler := handlers.NewSongHandler(c.Components, c.IngestService)
	statusHandler := handlers.NewStatusHandler(c.Components, c.StatusService)

	// Submission requires an attributable caller
	songs := e.Group("/api/v1/songs")
	songs.Use(middleware.ExtractUsernameStrict())
	{
		songs.POST("", songHandler.SubmitSong,
			middleware.GlobalRateLimitMiddleware(c.RateLimiter, songSubmitGlobalLimit),
			middleware.UserRateLimitMiddleware(c.RateLimiter, songSubmitLimit, songSubmitWindowSec))
		songs.GET("/:processingId/status", statusHandler.GetSongStatus)
	}
}
