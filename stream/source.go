package stream

import (
	"context"

	"github.com/denismitr/m2m"
)

type sliceSource[L, R any] []m2m.Pair[L, R]

// Slice adapts a pair slice into a Source. The slice is not copied.
func Slice[L, R any](pairs []m2m.Pair[L, R]) Source[L, R] {
	return sliceSource[L, R](pairs)
}

func (ss sliceSource[L, R]) Pairs(ctx context.Context) <-chan m2m.Pair[L, R] {
	resultCh := make(chan m2m.Pair[L, R])

	go func() {
		defer close(resultCh)

		for i := range ss {
			select {
			case resultCh <- ss[i]:
			case <-ctx.Done():
				return
			}
		}
	}()

	return resultCh
}

type mapSource[L comparable, R any] map[L][]R

// Map adapts an adjacency map into a Source. Pairs come out grouped by
// left value but the group order is not deterministic.
func Map[L comparable, R any](adjacency map[L][]R) Source[L, R] {
	return mapSource[L, R](adjacency)
}

func (ms mapSource[L, R]) Pairs(ctx context.Context) <-chan m2m.Pair[L, R] {
	resultCh := make(chan m2m.Pair[L, R])

	go func() {
		defer close(resultCh)

		for left, rights := range ms {
			for i := range rights {
				select {
				case resultCh <- m2m.Pair[L, R]{Left: left, Right: rights[i]}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return resultCh
}
