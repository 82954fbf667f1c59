package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"trip-planner-service/internal/platform/obs"
)

const requestIDHeader = "X-Request-ID"

// requestID tags each request with an id (taken from X-Request-ID when the
// caller supplies one) and carries it in the user context for timing logs.
func requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.Clone(c.Get(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals("req_id", id)
		c.Set(requestIDHeader, id)
		c.SetUserContext(obs.WithRequestID(c.UserContext(), id))

		return c.Next()
	}
}

// requestLogger logs end-to-end request duration and response size.
// Errors returned by the chain are rendered first so the logged status is final.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		code := c.Response().StatusCode()
		reqID, _ := c.Locals("req_id").(string)

		event := log.Info()
		switch {
		case code >= fiber.StatusInternalServerError:
			event = log.Error()
		case code >= fiber.StatusBadRequest:
			event = log.Warn()
		}

		event.
			Str("req_id", reqID).
			Str("method", c.Method()).
			Str("path", c.OriginalURL()).
			Int("status", code).
			Int("bytes", len(c.Response().Body())).
			Int64("dur_ms", time.Since(start).Milliseconds()).
			Msg("HTTP request")

		return nil
	}
}
