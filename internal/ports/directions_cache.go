package ports

import "context"

// Port: key/value store for serialized directions results.
type DirectionsCache interface {
	// Return the cached payload and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, payload []byte) error
}
