package maxima

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/gapp/internal/ir"
	"github.com/roach88/gapp/internal/store"
)

// Cache is the result store used by CachedConnection.
// *store.Store implements it.
type Cache interface {
	LookupResult(ctx context.Context, key string) (store.Result, bool, error)
	PutResult(ctx context.Context, r store.Result) error
}

var _ Cache = (*store.Store)(nil)

// IDGenerator produces run IDs.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run IDs.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// CachedConnection answers repeated requests from a Cache and forwards
// misses to the wrapped connection. Failed calls are not cached.
//
// All results stored through one CachedConnection share its run ID.
type CachedConnection struct {
	conn   Connection
	cache  Cache
	runID  string
	logger *slog.Logger
}

var _ Connection = (*CachedConnection)(nil)

// NewCachedConnection wraps conn. A nil ids uses UUIDv7Generator.
func NewCachedConnection(conn Connection, cache Cache, ids IDGenerator) *CachedConnection {
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	return &CachedConnection{
		conn:   conn,
		cache:  cache,
		runID:  ids.Generate(),
		logger: slog.Default(),
	}
}

// RunID returns the run ID recorded with new results.
func (c *CachedConnection) RunID() string {
	return c.runID
}

// Optimize returns the cached output for lines if present; otherwise it
// runs the wrapped connection and stores the output.
func (c *CachedConnection) Optimize(ctx context.Context, lines []string) ([]string, error) {
	key := ir.RequestKey(lines)

	cached, ok, err := c.cache.LookupResult(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("cache lookup: %w", err)
	}
	recordCacheLookup(ctx, ok)
	if ok {
		c.logger.Debug("optimizer cache hit",
			slog.String("key", key),
			slog.String("run_id", cached.RunID),
		)
		return slices.Clone(cached.Response), nil
	}

	start := time.Now()
	out, err := c.conn.Optimize(ctx, lines)
	if err != nil {
		return nil, err
	}

	err = c.cache.PutResult(ctx, store.Result{
		Key:      key,
		RunID:    c.runID,
		Request:  slices.Clone(lines),
		Response: slices.Clone(out),
		Duration: time.Since(start),
	})
	if err != nil {
		return nil, fmt.Errorf("cache store: %w", err)
	}
	return out, nil
}
