package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/soundlane/ingest/cmd/ingest/container"
	"github.com/soundlane/ingest/cmd/ingest/handlers"
	"github.com/soundlane/ingest/cmd/ingest/middleware"
)

// RegisterPlaylistRoutes registers system playlist routes
func RegisterPlaylistRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewPlaylistHandler(c.Components, c.PlaylistService)

	playlists := e.Group("/api/v1/playlists")
	playlists.Use(middleware.ExtractUsernameStrict())
	{
		playlists.POST("", h.CreatePlaylist)
		playlists.PUT("/:id", h.UpdatePlaylist)
	}
}
