package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/soundlane/ingest/cmd/ingest/container"
	"github.com/soundlane/ingest/cmd/ingest/handlers"
	"github.com/soundlane/ingest/cmd/ingest/middleware"
)

// RegisterArtistRoutes registers artist profile routes
func RegisterArtistRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewArtistHandler(c.Components, c.ArtistService)

	artists := e.Group("/api/v1/artists")
	artists.Use(middleware.ExtractUsernameStrict())
	{
		artists.POST("", h.CreateArtist)
		artists.PUT("/:id", h.UpdateArtist)
	}
}
