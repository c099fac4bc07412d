package container

import (
	"github.com/soundlane/ingest/cmd/ingest/repository"
	"github.com/soundlane/ingest/cmd/ingest/service"
	"github.com/soundlane/ingest/common/bootstrap"
	"github.com/soundlane/ingest/common/ratelimit"
	rediscommon "github.com/soundlane/ingest/common/redis"
)

// Container holds all initialized services and repositories (singleton pattern)
type Container struct {
	// Components
	Components  *bootstrap.Components
	Redis       *rediscommon.Client
	RateLimiter *ratelimit.RateLimiter

	// Repositories
	SongRepo     *repository.SongRepository
	ArtistRepo   *repository.ArtistRepository
	PlaylistRepo *repository.PlaylistRepository

	// Services
	IngestService   *service.IngestService
	StatusService   *service.StatusService
	ArtistService   *service.ArtistService
	PlaylistService *service.PlaylistService
}

// NewContainer initializes all services and repositories once
func NewContainer(components *bootstrap.Components) (*Container, error) {
	redisClient := rediscommon.New(components.Config, components.Logger)
	rateLimiter := ratelimit.NewRateLimiter(redisClient.GetUnderlying(), components.Logger)

	// Initialize repositories
	songRepo := repository.NewSongRepository(components.DB)
	artistRepo := repository.NewArtistRepository(components.DB)
	playlistRepo := repository.NewPlaylistRepository(components.DB)

	// Initialize services (bottom-up: dependencies first)
	ingestService := service.NewIngestService(components.Store, songRepo, components.Logger)
	statusService := service.NewStatusService(songRepo, redisClient, components.Logger)
	artistService := service.NewArtistService(components.Store, artistRepo, components.Logger)
	playlistService := service.NewPlaylistService(components.Store, playlistRepo, components.Logger)

	return &Container{
		Components:      components,
		Redis:           redisClient,
		RateLimiter:     rateLimiter,
		SongRepo:        songRepo,
		ArtistRepo:      artistRepo,
		PlaylistRepo:    playlistRepo,
		IngestService:   ingestService,
		StatusService:   statusService,
		ArtistService:   artistService,
		PlaylistService: playlistService,
	}, nil
}

// Close releases container-owned resources not managed by bootstrap
func (c *Container) Close() error {
	return c.Redis.Close()
}
