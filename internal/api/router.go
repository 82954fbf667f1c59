package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns the Fiber app.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.TripRepository, provider ports.DirectionsProvider, opts services.PlanOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "trip-planner-service",
		DisableStartupMessage: true,
		ErrorHandler:          handlers.ErrorHandler,
		// Timeouts are tuned for cold-cache planning (external API latency).
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	app.Use(requestID())
	app.Use(requestLogger())
	app.Use(recover.New())

	tripHandler := &handlers.TripHandler{
		Repo:     repo,
		Provider: provider,
		Options:  opts,
	}

	app.Get("/health", handlers.Health)

	trips := app.Group("/api/trips")
	trips.Post("/plan", tripHandler.Plan)
	trips.Get("/", tripHandler.List)
	trips.Get("/:id", tripHandler.Get)

	return app
}
