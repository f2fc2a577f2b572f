package m2m

import (
	"context"

	"golang.org/x/exp/constraints"
)

type (
	// M2M is a many-to-many collection of unique left-right pairs backed by
	// a single slice kept sorted by left, then right. The zero value is
	// ready to use. It is not safe for concurrent use.
	M2M[L, R constraints.Ordered] struct {
		pairs []Pair[L, R]
	}

	PredicateFn[L, R any] func(left L, right R) (keep bool)
	ForEachFn[L, R any]   func(left L, right R)
	UpdateFn[T any]       func(v *T)
)

func New[L, R constraints.Ordered]() *M2M[L, R] {
	return &M2M[L, R]{}
}

// From builds a collection from the given pairs, dropping duplicates.
// The input slice is not retained.
func From[L, R constraints.Ordered](pairs []Pair[L, R]) *M2M[L, R] {
	owned := make([]Pair[L, R], len(pairs))
	copy(owned, pairs)
	sortPairs(owned)
	return &M2M[L, R]{pairs: dedupPairs(owned)}
}

// FromMap builds a collection from an adjacency map of left values to
// their rights.
func FromMap[L, R constraints.Ordered](adjacency map[L][]R) *M2M[L, R] {
	var pairs []Pair[L, R]
	for left, rights := range adjacency {
		for _, right := range rights {
			pairs = append(pairs, Pair[L, R]{Left: left, Right: right})
		}
	}

	sortPairs(pairs)
	return &M2M[L, R]{pairs: dedupPairs(pairs)}
}

// Insert is idempotent and returns true if the pair was not yet present.
func (m *M2M[L, R]) Insert(left L, right R) (inserted bool) {
	if containsPair(m.pairs, left, right) {
		return false
	}

	m.pairs = append(m.pairs, Pair[L, R]{Left: left, Right: right})
	sortPairs(m.pairs)
	return true
}

// Remove drops every pair with the given left value and returns their
// rights in stored order, or false when no pair matched.
func (m *M2M[L, R]) Remove(left L) ([]R, bool) {
	kept, removed := removeLeft(m.pairs, left)
	if len(removed) == 0 {
		return nil, false
	}

	m.pairs = kept
	return removed, true
}

// RemoveRight is the mirror of Remove for the right component.
func (m *M2M[L, R]) RemoveRight(right R) ([]L, bool) {
	kept, removed := removeRight(m.pairs, right)
	if len(removed) == 0 {
		return nil, false
	}

	m.pairs = kept
	return removed, true
}

func (m *M2M[L, R]) Clear() {
	m.pairs = m.pairs[:0]
}

func (m *M2M[L, R]) Len() int {
	return len(m.pairs)
}

func (m *M2M[L, R]) IsEmpty() bool {
	return len(m.pairs) == 0
}

func (m *M2M[L, R]) Contains(left L, right R) bool {
	return containsPair(m.pairs, left, right)
}

func (m *M2M[L, R]) ContainsLeft(left L) bool {
	return containsLeft(m.pairs, left)
}

func (m *M2M[L, R]) ContainsRight(right R) bool {
	return containsRight(m.pairs, right)
}

// RightsOf returns the rights paired with the given left value in stored
// order, or false when there are none.
func (m *M2M[L, R]) RightsOf(left L) ([]R, bool) {
	rights := collectRights(m.pairs, left)
	if len(rights) == 0 {
		return nil, false
	}

	return rights, true
}

func (m *M2M[L, R]) LeftsOf(right R) ([]L, bool) {
	lefts := collectLefts(m.pairs, right)
	if len(lefts) == 0 {
		return nil, false
	}

	return lefts, true
}

// UpdateRights applies update to the right component of every pair with the
// given left value and returns false when no pair matched. The collection
// does not re-sort or deduplicate afterwards; an update that breaks ordering
// or uniqueness is on the caller.
func (m *M2M[L, R]) UpdateRights(left L, update UpdateFn[R]) (found bool) {
	for i := range m.pairs {
		if m.pairs[i].Left == left {
			update(&m.pairs[i].Right)
			found = true
		}
	}

	return found
}

// UpdateLefts is the mirror of UpdateRights for the left component.
func (m *M2M[L, R]) UpdateLefts(right R, update UpdateFn[L]) (found bool) {
	for i := range m.pairs {
		if m.pairs[i].Right == right {
			update(&m.pairs[i].Left)
			found = true
		}
	}

	return found
}

// Lefts returns every distinct left value in ascending order, or false
// when the collection is empty.
func (m *M2M[L, R]) Lefts() ([]L, bool) {
	if len(m.pairs) == 0 {
		return nil, false
	}

	lefts := make([]L, len(m.pairs))
	for i := range m.pairs {
		lefts[i] = m.pairs[i].Left
	}

	return distinct(lefts), true
}

func (m *M2M[L, R]) Rights() ([]R, bool) {
	if len(m.pairs) == 0 {
		return nil, false
	}

	rights := make([]R, len(m.pairs))
	for i := range m.pairs {
		rights[i] = m.pairs[i].Right
	}

	return distinct(rights), true
}

func (m *M2M[L, R]) Retain(keep PredicateFn[L, R]) {
	m.pairs = retainPairs(m.pairs, keep)
}

func (m *M2M[L, R]) Reject(drop PredicateFn[L, R]) {
	m.pairs = retainPairs(m.pairs, func(left L, right R) bool {
		return !drop(left, right)
	})
}

func (m *M2M[L, R]) ForEach(f ForEachFn[L, R]) {
	for i := range m.pairs {
		f(m.pairs[i].Left, m.pairs[i].Right)
	}
}

// AsSlice exposes the backing slice. Mutations through it are visible to
// the collection and bypass its invariants.
func (m *M2M[L, R]) AsSlice() []Pair[L, R] {
	return m.pairs
}

// ToPairs returns an independent snapshot of the stored pairs.
func (m *M2M[L, R]) ToPairs() []Pair[L, R] {
	snapshot := make([]Pair[L, R], len(m.pairs))
	copy(snapshot, m.pairs)
	return snapshot
}

func (m *M2M[L, R]) ToMap() map[L][]R {
	result := make(map[L][]R)
	for i := range m.pairs {
		result[m.pairs[i].Left] = append(result[m.pairs[i].Left], m.pairs[i].Right)
	}

	return result
}

func (m *M2M[L, R]) Clone() *M2M[L, R] {
	return &M2M[L, R]{pairs: m.ToPairs()}
}

// Flip returns a new collection with every pair inverted, so (left, right)
// becomes (right, left).
func (m *M2M[L, R]) Flip() *M2M[R, L] {
	flipped := make([]Pair[R, L], len(m.pairs))
	for i := range m.pairs {
		flipped[i] = Pair[R, L]{Left: m.pairs[i].Right, Right: m.pairs[i].Left}
	}

	sortPairs(flipped)
	return &M2M[R, L]{pairs: flipped}
}

func (m *M2M[L, R]) Pairs(ctx context.Context) <-chan Pair[L, R] {
	resultCh := make(chan Pair[L, R])

	go func() {
		defer close(resultCh)

		for i := range m.pairs {
			select {
			case resultCh <- m.pairs[i]:
			case <-ctx.Done():
				return
			}
		}
	}()

	return resultCh
}

func (m *M2M[L, R]) String() string {
	return formatPairs(m.pairs)
}
