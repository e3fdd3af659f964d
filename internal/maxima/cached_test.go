package maxima

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gapp/internal/ir"
	"github.com/roach88/gapp/internal/store"
	"github.com/roach88/gapp/internal/testutil"
)

// countingConnection labels each input line as a result and counts calls.
type countingConnection struct {
	calls atomic.Int32
	err   error
}

func (c *countingConnection) Optimize(_ context.Context, lines []string) ([]string, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = "(%o" + string(rune('1'+i)) + ") " + l
	}
	return out, nil
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCachedConnectionHit(t *testing.T) {
	s := openStore(t)
	inner := &countingConnection{}
	c := NewCachedConnection(inner, s, testutil.NewFixedIDGenerator("run-42"))
	ctx := context.Background()
	lines := []string{"ratsimp(a*b+a*c);"}

	first, err := c.Optimize(ctx, lines)
	require.NoError(t, err)
	second, err := c.Optimize(ctx, lines)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), inner.calls.Load(), "second call must be served from the cache")

	stored, ok, err := s.LookupResult(ctx, ir.RequestKey(lines))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "run-42", stored.RunID)
	assert.Equal(t, lines, stored.Request)
	assert.Equal(t, first, stored.Response)
}

func TestCachedConnectionDistinctRequests(t *testing.T) {
	inner := &countingConnection{}
	c := NewCachedConnection(inner, openStore(t), testutil.NewFixedIDGenerator(""))
	ctx := context.Background()

	_, err := c.Optimize(ctx, []string{"a;"})
	require.NoError(t, err)
	_, err = c.Optimize(ctx, []string{"b;"})
	require.NoError(t, err)
	_, err = c.Optimize(ctx, []string{"a;", "b;"})
	require.NoError(t, err)

	assert.Equal(t, int32(3), inner.calls.Load())
}

func TestCachedConnectionDoesNotCacheFailures(t *testing.T) {
	s := openStore(t)
	inner := &countingConnection{err: &Error{Op: "start", Command: "maxima", Err: errors.New("not found")}}
	c := NewCachedConnection(inner, s, nil)
	ctx := context.Background()

	_, err := c.Optimize(ctx, []string{"a;"})
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = c.Optimize(ctx, []string{"a;"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(2), inner.calls.Load())

	all, err := s.ListResults(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCachedConnectionReturnsCopies(t *testing.T) {
	c := NewCachedConnection(&countingConnection{}, openStore(t), nil)
	ctx := context.Background()

	first, err := c.Optimize(ctx, []string{"a;"})
	require.NoError(t, err)
	cached, err := c.Optimize(ctx, []string{"a;"})
	require.NoError(t, err)
	cached[0] = "mutated"

	again, err := c.Optimize(ctx, []string{"a;"})
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestCachedConnectionDefaultRunID(t *testing.T) {
	c := NewCachedConnection(&countingConnection{}, openStore(t), nil)

	id, err := uuid.Parse(c.RunID())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestCachedConnectionHitReturnsExactBytes(t *testing.T) {
	s := openStore(t)
	echo := NewProcessConnection(testutil.EchoCAS(t), WithTempDir(t.TempDir()), WithLogger(quietLogger()))
	c := NewCachedConnection(echo, s, testutil.NewFixedIDGenerator("run-bytes"))
	ctx := context.Background()

	// Decomposed e-acute and a Latin-1 byte.
	lines := []string{"e\u0301;", "x\xe9;"}

	miss, err := c.Optimize(ctx, lines)
	require.NoError(t, err)
	require.Equal(t, lines, miss)

	_, ok, err := s.LookupResult(ctx, ir.RequestKey(lines))
	require.NoError(t, err)
	require.True(t, ok, "miss must populate the cache")

	hit, err := c.Optimize(ctx, lines)
	require.NoError(t, err)
	assert.Equal(t, miss, hit)
	for i := range miss {
		assert.Equal(t, []byte(miss[i]), []byte(hit[i]), "line %d", i)
	}
}
