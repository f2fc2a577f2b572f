package m2m

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

// Pair couples one left value with one right value.
type Pair[L, R any] struct {
	Left  L
	Right R
}

type lexPairs[L, R constraints.Ordered] []Pair[L, R]

func (lp lexPairs[L, R]) Len() int {
	return len(lp)
}

func (lp lexPairs[L, R]) Swap(i, j int) {
	lp[i], lp[j] = lp[j], lp[i]
}

func (lp lexPairs[L, R]) Less(i, j int) bool {
	if lp[i].Left != lp[j].Left {
		return lp[i].Left < lp[j].Left
	}
	return lp[i].Right < lp[j].Right
}

func sortPairs[L, R constraints.Ordered](pairs []Pair[L, R]) {
	sort.Sort(lexPairs[L, R](pairs))
}

// dedupPairs removes adjacent duplicates in place. Input must be sorted.
func dedupPairs[L, R comparable](pairs []Pair[L, R]) []Pair[L, R] {
	if len(pairs) < 2 {
		return pairs
	}

	kept := 1
	for i := 1; i < len(pairs); i++ {
		if pairs[i] != pairs[kept-1] {
			pairs[kept] = pairs[i]
			kept++
		}
	}

	return pairs[:kept]
}

func containsPair[L, R comparable](pairs []Pair[L, R], left L, right R) bool {
	for i := range pairs {
		if pairs[i].Left == left && pairs[i].Right == right {
			return true
		}
	}
	return false
}

func containsLeft[L, R comparable](pairs []Pair[L, R], left L) bool {
	for i := range pairs {
		if pairs[i].Left == left {
			return true
		}
	}
	return false
}

func containsRight[L, R comparable](pairs []Pair[L, R], right R) bool {
	for i := range pairs {
		if pairs[i].Right == right {
			return true
		}
	}
	return false
}

func collectRights[L, R comparable](pairs []Pair[L, R], left L) []R {
	var rights []R
	for i := range pairs {
		if pairs[i].Left == left {
			rights = append(rights, pairs[i].Right)
		}
	}
	return rights
}

func collectLefts[L, R comparable](pairs []Pair[L, R], right R) []L {
	var lefts []L
	for i := range pairs {
		if pairs[i].Right == right {
			lefts = append(lefts, pairs[i].Left)
		}
	}
	return lefts
}

// removeLeft filters pairs in place, reporting the right values of the
// dropped pairs in their stored order.
func removeLeft[L, R comparable](pairs []Pair[L, R], left L) ([]Pair[L, R], []R) {
	var removed []R
	kept := pairs[:0]
	for _, p := range pairs {
		if p.Left == left {
			removed = append(removed, p.Right)
		} else {
			kept = append(kept, p)
		}
	}
	return kept, removed
}

func removeRight[L, R comparable](pairs []Pair[L, R], right R) ([]Pair[L, R], []L) {
	var removed []L
	kept := pairs[:0]
	for _, p := range pairs {
		if p.Right == right {
			removed = append(removed, p.Left)
		} else {
			kept = append(kept, p)
		}
	}
	return kept, removed
}

func retainPairs[L, R any](pairs []Pair[L, R], keep func(left L, right R) bool) []Pair[L, R] {
	kept := pairs[:0]
	for _, p := range pairs {
		if keep(p.Left, p.Right) {
			kept = append(kept, p)
		}
	}
	return kept
}

// distinct sorts values ascending and removes duplicates in place.
func distinct[T constraints.Ordered](values []T) []T {
	if len(values) < 2 {
		return values
	}

	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	kept := 1
	for i := 1; i < len(values); i++ {
		if values[i] != values[kept-1] {
			values[kept] = values[i]
			kept++
		}
	}

	return values[:kept]
}

func formatPairs[L, R any](pairs []Pair[L, R]) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "(%v, %v)", p.Left, p.Right)
	}
	b.WriteByte(']')
	return b.String()
}
