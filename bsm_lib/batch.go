package bsm

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// EvaluateBatch prices independent points. With workers > 1 the slice is
// split into contiguous chunks priced concurrently; results keep input
// order either way and equal points[i].Evaluate() exactly. A cancelled ctx
// stops the remaining chunks and its error is returned.
func EvaluateBatch(ctx context.Context, points []Params, workers int) ([]Result, error) {
	results := make([]Result, len(points))
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || len(points) < 2 {
		for i, p := range points {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = p.Evaluate()
		}
		return results, nil
	}

	chunk := (len(points) + workers - 1) / workers
	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(points); start += chunk {
		lo, hi := start, start+chunk
		if hi > len(points) {
			hi = len(points)
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				results[i] = points[i].Evaluate()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
