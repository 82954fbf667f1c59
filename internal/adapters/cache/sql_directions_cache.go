package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/obs"
)

// SQLDirectionsCache is a SQL-backed cache for directions payloads keyed by
// waypoint list. Entries older than TTL are treated as misses; a zero TTL
// keeps entries forever.
type SQLDirectionsCache struct {
	DB     *sql.DB
	Driver string
	TTL    time.Duration

	now func() time.Time
}

func NewSQLDirectionsCache(conn *sql.DB, driver string, ttl time.Duration) *SQLDirectionsCache {
	return &SQLDirectionsCache{DB: conn, Driver: driver, TTL: ttl, now: time.Now}
}

// Fetch the cached payload for key. A missing or expired entry is a miss, not an error.
func (s *SQLDirectionsCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "directions.cache.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("directions cache: db is nil")
	}
	if key == "" {
		return nil, false, errors.New("get directions cache: key must not be empty")
	}

	q := db.Rebind(s.Driver, `
	SELECT payload, expires_at
	FROM directions_cache
	WHERE cache_key = ?;
	`)

	var (
		payload   string
		expiresAt int64
	)
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get directions cache: query directions_cache table: %w", err)
	}

	if expiresAt > 0 && s.clock().Unix() >= expiresAt {
		return nil, false, nil
	}

	return []byte(payload), true, nil
}

// Store payload under key, replacing any previous entry.
func (s *SQLDirectionsCache) Put(ctx context.Context, key string, payload []byte) (err error) {
	defer obs.Time(ctx, "directions.cache.sql.Put")(&err)

	if s.DB == nil {
		return errors.New("directions cache: db is nil")
	}
	if key == "" {
		return errors.New("insert directions cache: key must not be empty")
	}

	var expiresAt int64
	if s.TTL > 0 {
		expiresAt = s.clock().Add(s.TTL).Unix()
	}

	q := db.Rebind(s.Driver, `
	INSERT INTO directions_cache (cache_key, payload, expires_at)
	VALUES (?, ?, ?)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = excluded.payload,
		expires_at = excluded.expires_at;
	`)

	if _, err := s.DB.ExecContext(ctx, q, key, string(payload), expiresAt); err != nil {
		return fmt.Errorf("insert directions cache key=%q: %w", key, err)
	}

	return nil
}

func (s *SQLDirectionsCache) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}
