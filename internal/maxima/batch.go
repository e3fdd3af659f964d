package maxima

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// OptimizeAll runs every request through conn with at most limit calls in
// flight and returns the outputs in request order. A limit below 1 runs
// the requests one at a time.
//
// The first failure cancels the remaining calls and is returned wrapped
// with the index of the failing request.
func OptimizeAll(ctx context.Context, conn Connection, requests [][]string, limit int) ([][]string, error) {
	if limit < 1 {
		limit = 1
	}
	results := make([][]string, len(requests))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, lines := range requests {
		i, lines := i, lines
		g.Go(func() error {
			out, err := conn.Optimize(gCtx, lines)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
