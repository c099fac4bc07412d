package main

import (
	"context"
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/soundlane/ingest/cmd/ingest/container"
	"github.com/soundlane/ingest/cmd/ingest/routes"
	"github.com/soundlane/ingest/common/bootstrap"
)

// Upload requests carry whole audio files; anything past this is
// rejected before the handler buffers it.
const maxUploadSize = "64M"

func main() {
	ctx := context.Background()

	// Bootstrap common components (DB, logger, object store, telemetry)
	components, err := bootstrap.Setup(ctx, "ingest")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap ingest: %v\n", err)
		os.Exit(1)
	}
	defer components.Shutdown(ctx)

	// Initialize service container (singleton pattern - all services created once)
	serviceContainer, err := container.NewContainer(components)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize service container: %v\n", err)
		os.Exit(1)
	}
	defer serviceContainer.Close()

	// Initialize Echo server
	e := setupEcho()

	// Setup middleware
	setupMiddleware(e)

	// Setup health check
	setupHealthCheck(e, serviceContainer)

	// Register all routes
	registerRoutes(e, serviceContainer)

	// Start server
	startServer(e, components)
}

// setupEcho initializes the Echo server with basic configuration
func setupEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	return e
}

// setupMiddleware configures all middleware for the Echo server
func setupMiddleware(e *echo.Echo) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit(maxUploadSize))
}

// setupHealthCheck registers the health check endpoint
func setupHealthCheck(e *echo.Echo, c *container.Container) {
	e.GET("/health", func(ec echo.Context) error {
		if err := c.Components.Health(ec.Request().Context()); err != nil {
			return ec.JSON(503, map[string]string{
				"status":  "degraded",
				"service": "ingest",
				"error":   err.Error(),
			})
		}
		return ec.JSON(200, map[string]string{
			"status":  "ok",
			"service": "ingest",
		})
	})
}

// registerRoutes registers all application routes using the service container
func registerRoutes(e *echo.Echo, serviceContainer *container.Container) {
	routes.RegisterSongRoutes(e, serviceContainer)
	routes.RegisterArtistRoutes(e, serviceContainer)
	routes.RegisterPlaylistRoutes(e, serviceContainer)
	routes.RegisterInternalRoutes(e, serviceContainer)
}

// startServer starts the Echo server on the configured port
func startServer(e *echo.Echo, components *bootstrap.Components) {
	port := components.Config.Service.Port
	components.Logger.Info("Starting ingest", "port", port)

	if err := e.Start(fmt.Sprintf(":%d", port)); err != nil {
		components.Logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
