package project

import "context"

// FanOut exposes fanOut for testing.
func FanOut[T any](ctx context.Context, limit int, items []T, fn func(ctx context.Context, i int, item T) error) error {
	return fanOut(ctx, limit, items, fn)
}
