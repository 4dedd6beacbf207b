package project

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// fanOut runs fn for every item with at most limit calls in flight.
// The returned error is the first failure in submission order. Once a call has
// failed, items that have not started yet are skipped; running calls finish.
func fanOut[T any](ctx context.Context, limit int, items []T, fn func(ctx context.Context, i int, item T) error) error {
	if len(items) == 0 {
		return nil
	}

	errs := make([]error, len(items))
	var failed atomic.Bool

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, item := range items {
		g.Go(func() error {
			if failed.Load() {
				return nil
			}
			if err := fn(ctx, i, item); err != nil {
				errs[i] = err
				failed.Store(true)
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
