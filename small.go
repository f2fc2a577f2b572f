package m2m

import (
	"context"

	"golang.org/x/exp/constraints"
)

// SmallCapacity is the number of pairs a SmallM2M holds inline before it
// spills to the heap.
const SmallCapacity = 8

// SmallM2M behaves like M2M but keeps up to SmallCapacity pairs in an
// inline buffer. Once it spills to the heap it stays there, even if it
// later shrinks back under the threshold. The zero value is ready to use.
// It is not safe for concurrent use.
type SmallM2M[L, R constraints.Ordered] struct {
	buf   [SmallCapacity]Pair[L, R]
	n     int
	spill []Pair[L, R]
}

func NewSmall[L, R constraints.Ordered]() *SmallM2M[L, R] {
	return &SmallM2M[L, R]{}
}

// SmallFrom builds a small-buffer collection from the given pairs,
// dropping duplicates. The input slice is not retained.
func SmallFrom[L, R constraints.Ordered](pairs []Pair[L, R]) *SmallM2M[L, R] {
	owned := make([]Pair[L, R], len(pairs))
	copy(owned, pairs)
	sortPairs(owned)
	owned = dedupPairs(owned)

	s := &SmallM2M[L, R]{}
	s.adopt(owned)
	return s
}

// pairs returns the active backing region, inline or spilled.
func (s *SmallM2M[L, R]) pairs() []Pair[L, R] {
	if s.spill != nil {
		return s.spill
	}
	return s.buf[:s.n]
}

// commit records the surviving prefix after an in-place rewrite of the
// active region.
func (s *SmallM2M[L, R]) commit(kept []Pair[L, R]) {
	if s.spill != nil {
		s.spill = kept
		return
	}
	s.n = len(kept)
}

func (s *SmallM2M[L, R]) adopt(pairs []Pair[L, R]) {
	if len(pairs) <= SmallCapacity {
		s.n = copy(s.buf[:], pairs)
		return
	}
	s.spill = pairs
}

// Insert is idempotent and returns true if the pair was not yet present.
func (s *SmallM2M[L, R]) Insert(left L, right R) (inserted bool) {
	if containsPair(s.pairs(), left, right) {
		return false
	}

	p := Pair[L, R]{Left: left, Right: right}
	switch {
	case s.spill != nil:
		s.spill = append(s.spill, p)
		sortPairs(s.spill)
	case s.n < SmallCapacity:
		s.buf[s.n] = p
		s.n++
		sortPairs(s.buf[:s.n])
	default:
		// inline buffer full, spill to the heap
		s.spill = make([]Pair[L, R], s.n, 2*SmallCapacity)
		copy(s.spill, s.buf[:s.n])
		s.spill = append(s.spill, p)
		sortPairs(s.spill)
	}

	return true
}

// Remove drops every pair with the given left value and returns their
// rights in stored order, or false when no pair matched.
func (s *SmallM2M[L, R]) Remove(left L) ([]R, bool) {
	kept, removed := removeLeft(s.pairs(), left)
	if len(removed) == 0 {
		return nil, false
	}

	s.commit(kept)
	return removed, true
}

func (s *SmallM2M[L, R]) Clear() {
	if s.spill != nil {
		s.spill = s.spill[:0]
		return
	}
	s.n = 0
}

func (s *SmallM2M[L, R]) Len() int {
	return len(s.pairs())
}

func (s *SmallM2M[L, R]) IsEmpty() bool {
	return len(s.pairs()) == 0
}

func (s *SmallM2M[L, R]) Contains(left L, right R) bool {
	return containsPair(s.pairs(), left, right)
}

func (s *SmallM2M[L, R]) ContainsLeft(left L) bool {
	return containsLeft(s.pairs(), left)
}

func (s *SmallM2M[L, R]) ContainsRight(right R) bool {
	return containsRight(s.pairs(), right)
}

func (s *SmallM2M[L, R]) RightsOf(left L) ([]R, bool) {
	rights := collectRights(s.pairs(), left)
	if len(rights) == 0 {
		return nil, false
	}

	return rights, true
}

func (s *SmallM2M[L, R]) LeftsOf(right R) ([]L, bool) {
	lefts := collectLefts(s.pairs(), right)
	if len(lefts) == 0 {
		return nil, false
	}

	return lefts, true
}

func (s *SmallM2M[L, R]) Lefts() ([]L, bool) {
	ps := s.pairs()
	if len(ps) == 0 {
		return nil, false
	}

	lefts := make([]L, len(ps))
	for i := range ps {
		lefts[i] = ps[i].Left
	}

	return distinct(lefts), true
}

func (s *SmallM2M[L, R]) Rights() ([]R, bool) {
	ps := s.pairs()
	if len(ps) == 0 {
		return nil, false
	}

	rights := make([]R, len(ps))
	for i := range ps {
		rights[i] = ps[i].Right
	}

	return distinct(rights), true
}

func (s *SmallM2M[L, R]) Retain(keep PredicateFn[L, R]) {
	s.commit(retainPairs(s.pairs(), keep))
}

func (s *SmallM2M[L, R]) Reject(drop PredicateFn[L, R]) {
	s.commit(retainPairs(s.pairs(), func(left L, right R) bool {
		return !drop(left, right)
	}))
}

func (s *SmallM2M[L, R]) ForEach(f ForEachFn[L, R]) {
	for _, p := range s.pairs() {
		f(p.Left, p.Right)
	}
}

// AsSlice exposes the active backing region. The view is valid until the
// next mutation.
func (s *SmallM2M[L, R]) AsSlice() []Pair[L, R] {
	return s.pairs()
}

// ToPairs returns an independent snapshot of the stored pairs.
func (s *SmallM2M[L, R]) ToPairs() []Pair[L, R] {
	ps := s.pairs()
	snapshot := make([]Pair[L, R], len(ps))
	copy(snapshot, ps)
	return snapshot
}

// Flip returns a new collection with every pair inverted, so (left, right)
// becomes (right, left).
func (s *SmallM2M[L, R]) Flip() *SmallM2M[R, L] {
	ps := s.pairs()
	flipped := make([]Pair[R, L], len(ps))
	for i := range ps {
		flipped[i] = Pair[R, L]{Left: ps[i].Right, Right: ps[i].Left}
	}
	sortPairs(flipped)

	out := &SmallM2M[R, L]{}
	out.adopt(flipped)
	return out
}

func (s *SmallM2M[L, R]) Pairs(ctx context.Context) <-chan Pair[L, R] {
	resultCh := make(chan Pair[L, R])

	go func() {
		defer close(resultCh)

		for _, p := range s.pairs() {
			select {
			case resultCh <- p:
			case <-ctx.Done():
				return
			}
		}
	}()

	return resultCh
}

func (s *SmallM2M[L, R]) String() string {
	return formatPairs(s.pairs())
}
