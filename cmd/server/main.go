package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/directions"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQL, Redis, ORS/Google) behind ports and starts the HTTP server.
func main() {
	config.LoadDotEnv()
	obs.SetupLogger(config.Get("LOG_FORMAT", ""), config.Get("LOG_LEVEL", ""))

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func run(ctx context.Context, cfg config.Config) error {
	conn, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Schema creation is idempotent, so local runs need no separate dbtool step.
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return err
	}

	provider, err := newDirectionsProvider(ctx, cfg, conn)
	if err != nil {
		return err
	}

	repo := repositories.NewSQLTripRepository(conn, cfg.DBDriver)
	app := api.NewRouter(repo, provider, services.PlanOptions{
		Policy:        cfg.Policy,
		Interpolation: cfg.InterpolationFunc,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ":"+cfg.Port).Msg("server listening")
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

type profiled interface {
	ports.DirectionsProvider
	Profile() string
}

// newDirectionsProvider builds the configured provider and, unless caching is
// disabled, wraps it with the configured directions cache.
func newDirectionsProvider(ctx context.Context, cfg config.Config, conn *sql.DB) (ports.DirectionsProvider, error) {
	var (
		provider profiled
		err      error
	)

	switch cfg.DirectionsProvider {
	case "google":
		provider, err = directions.NewGoogleDirectionsProvider(cfg.GoogleMapsAPIKey)
	case "ors":
		provider, err = directions.NewORSDirectionsProvider(cfg.ORSAPIKey, cfg.ORSBaseURL, cfg.ORSProfile)
	default:
		err = fmt.Errorf("unknown directions provider %q", cfg.DirectionsProvider)
	}
	if err != nil {
		return nil, err
	}

	var directionsCache ports.DirectionsCache
	switch cfg.CacheBackend {
	case "none":
		log.Info().Str("provider", provider.Profile()).Msg("directions cache disabled")
		return provider, nil
	case "sql":
		directionsCache = cache.NewSQLDirectionsCache(conn, cfg.DBDriver, cfg.CacheTTL)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		directionsCache = cache.NewRedisDirectionsCache(client, cfg.CacheTTL)
	default:
		return nil, errors.New("unknown cache backend " + cfg.CacheBackend)
	}

	log.Info().
		Str("provider", provider.Profile()).
		Str("cache", cfg.CacheBackend).
		Dur("ttl", cfg.CacheTTL).
		Msg("directions provider ready")

	return directions.NewCachedDirectionsProvider(provider, directionsCache, provider.Profile()), nil
}
