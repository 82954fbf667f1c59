package obs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// WithRequestID attaches a request id used to correlate timing logs.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestID(ctx context.Context) string {
	reqID, _ := ctx.Value(RequestIDKey).(string)
	return reqID
}

// Time logs the duration of an operation when the returned func is deferred.
//
//	defer obs.Time(ctx, "ors.GetDirections")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		event := log.Debug()
		if errp != nil && *errp != nil {
			event = log.Warn().Err(*errp)
		}

		event.
			Str("req_id", reqID).
			Str("op", name).
			Int64("dur_ms", time.Since(start).Milliseconds()).
			Msg("operation timing")
	}
}
