package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/soundlane/ingest/cmd/ingest/container"
	"github.com/soundlane/ingest/cmd/ingest/handlers"
	"github.com/soundlane/ingest/cmd/ingest/middleware"
)

// RegisterInternalRoutes registers service-to-service routes. These are
// called by the external media worker, never by end users.
func RegisterInternalRoutes(e *echo.Echo, c *container.Container) {
	statusHandler := handlers.NewStatusHandler(c.Components, c.StatusService)

	internal := e.Group("/internal/v1/songs")
	internal.Use(middleware.RequireInternalToken(c.Components.Config.Service.InternalToken))
	{
		internal.PUT("/:processingId/media", statusHandler.FinalizeSong)
	}
}
