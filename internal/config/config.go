package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/geo"
)

// Config is the service configuration read from the environment (and .env).
type Config struct {
	Port string

	DBDriver    string
	DatabaseURL string

	DirectionsProvider string
	ORSAPIKey          string
	ORSBaseURL         string
	ORSProfile         string
	GoogleMapsAPIKey   string

	CacheBackend  string
	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Interpolation     string
	InterpolationFunc geo.Interpolation
	Policy            domain.DutyPolicy

	LogFormat string
	LogLevel  string
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// LoadDotEnv loads .env into the process environment if present.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found (using environment variables)")
	}
}

// Load reads .env and the environment and validates the result.
func Load() (Config, error) {
	LoadDotEnv()
	return FromEnv()
}

// FromEnv builds a Config from the current environment without reading .env.
func FromEnv() (Config, error) {
	var errs []error

	cfg := Config{
		Port:               Get("PORT", "8080"),
		DBDriver:           strings.ToLower(Get("DB_DRIVER", "sqlite")),
		DatabaseURL:        Get("DATABASE_URL", "data/trips.db"),
		DirectionsProvider: strings.ToLower(Get("DIRECTIONS_PROVIDER", "ors")),
		ORSAPIKey:          Get("ORS_API_KEY", ""),
		ORSBaseURL:         Get("ORS_BASE_URL", ""),
		ORSProfile:         Get("ORS_PROFILE", ""),
		GoogleMapsAPIKey:   Get("GOOGLE_MAPS_API_KEY", ""),
		CacheBackend:       strings.ToLower(Get("CACHE_BACKEND", "sql")),
		RedisAddr:          Get("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      Get("REDIS_PASSWORD", ""),
		Interpolation:      strings.ToLower(Get("INTERPOLATION", "linear")),
		LogFormat:          Get("LOG_FORMAT", "console"),
		LogLevel:           strings.ToLower(Get("LOG_LEVEL", "info")),
	}

	switch cfg.DBDriver {
	case "sqlite", "pgx":
	case "postgres":
		cfg.DBDriver = "pgx"
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be sqlite or pgx, got %q", cfg.DBDriver))
	}

	switch cfg.DirectionsProvider {
	case "ors":
		if cfg.ORSAPIKey == "" {
			errs = append(errs, errors.New("ORS_API_KEY is required when DIRECTIONS_PROVIDER=ors"))
		}
	case "google":
		if cfg.GoogleMapsAPIKey == "" {
			errs = append(errs, errors.New("GOOGLE_MAPS_API_KEY is required when DIRECTIONS_PROVIDER=google"))
		}
	default:
		errs = append(errs, fmt.Errorf("DIRECTIONS_PROVIDER must be ors or google, got %q", cfg.DirectionsProvider))
	}

	switch cfg.CacheBackend {
	case "redis", "sql", "none":
	default:
		errs = append(errs, fmt.Errorf("CACHE_BACKEND must be redis, sql or none, got %q", cfg.CacheBackend))
	}

	ttl, err := time.ParseDuration(Get("CACHE_TTL", "24h"))
	if err != nil || ttl < 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must be a non-negative duration: %q", Get("CACHE_TTL", "24h")))
	}
	cfg.CacheTTL = ttl

	redisDB, err := strconv.Atoi(Get("REDIS_DB", "0"))
	if err != nil {
		errs = append(errs, fmt.Errorf("REDIS_DB must be an integer: %w", err))
	}
	cfg.RedisDB = redisDB

	cfg.InterpolationFunc, err = geo.ParseInterpolation(cfg.Interpolation)
	if err != nil {
		errs = append(errs, fmt.Errorf("INTERPOLATION: %w", err))
	}

	policy, err := PolicyFromEnv()
	if err != nil {
		errs = append(errs, err)
	}
	cfg.Policy = policy

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// PolicyFromEnv overlays duty policy overrides on domain.DefaultDutyPolicy.
func PolicyFromEnv() (domain.DutyPolicy, error) {
	p := domain.DefaultDutyPolicy()

	fields := []struct {
		key string
		dst *float64
	}{
		{"DAILY_DRIVING_LIMIT_HOURS", &p.DailyDrivingLimitHours},
		{"PICKUP_HOURS", &p.PickupHours},
		{"DROPOFF_HOURS", &p.DropoffHours},
		{"REST_HOURS", &p.RestHours},
		{"FUEL_INTERVAL_MILES", &p.FuelIntervalMiles},
	}

	var errs []error
	for _, f := range fields {
		raw := Get(f.key, "")
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s must be a number: %w", f.key, err))
			continue
		}
		*f.dst = v
	}
	if err := errors.Join(errs...); err != nil {
		return domain.DutyPolicy{}, err
	}

	if err := p.Validate(); err != nil {
		return domain.DutyPolicy{}, err
	}
	return p, nil
}
