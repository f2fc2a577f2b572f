package stream

import (
	"context"

	"github.com/pkg/errors"
)

type ReducerContext[L, R, A any] func(ctx context.Context, acc A, left L, right R) (A, error)

// Reduce folds every pair of the source into a single accumulator. A
// reducer error stops the fold and discards the partial result, unless it
// is ErrSkip, which drops the pair.
func Reduce[L, R, A any](
	ctx context.Context,
	source Source[L, R],
	reducer ReducerContext[L, R, A],
	initial A,
) (A, error) {
	feedCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	acc := initial

	for p := range source.Pairs(feedCtx) {
		next, err := reducer(ctx, acc, p.Left, p.Right)
		if err != nil {
			if errors.Is(err, ErrSkip) {
				continue
			}

			return initial, errors.Wrap(err, "reduce failed")
		}

		acc = next
	}

	if err := ctx.Err(); err != nil {
		return initial, errors.Wrap(err, "reduce interrupted")
	}

	return acc, nil
}
