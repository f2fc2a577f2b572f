package m2m

import (
	"context"

	"github.com/denismitr/dll"
)

// OrderedM2M is a many-to-many collection of unique left-right pairs that
// iterates in insertion order. Every pair is indexed, so membership checks
// are constant time. Use NewOrdered, the zero value is not ready. It is
// not safe for concurrent use.
type OrderedM2M[L, R comparable] struct {
	index map[Pair[L, R]]*dll.Element[Pair[L, R]]
	list  *dll.DoublyLinkedList[Pair[L, R]]
}

func NewOrdered[L, R comparable]() *OrderedM2M[L, R] {
	return &OrderedM2M[L, R]{
		index: make(map[Pair[L, R]]*dll.Element[Pair[L, R]]),
		list:  dll.New[Pair[L, R]](),
	}
}

// OrderedFrom builds an insertion-ordered collection from the given pairs.
// The first occurrence of a duplicate wins its position.
func OrderedFrom[L, R comparable](pairs []Pair[L, R]) *OrderedM2M[L, R] {
	om := NewOrdered[L, R]()
	for i := range pairs {
		om.Insert(pairs[i].Left, pairs[i].Right)
	}
	return om
}

// Insert is idempotent and returns true if the pair was not yet present.
func (om *OrderedM2M[L, R]) Insert(left L, right R) (inserted bool) {
	p := Pair[L, R]{Left: left, Right: right}
	if _, found := om.index[p]; found {
		return false
	}

	newEl := dll.NewElement(p)
	om.index[p] = newEl
	om.list.PushTail(newEl)
	return true
}

// Remove drops every pair with the given left value and returns their
// rights in insertion order, or false when no pair matched.
func (om *OrderedM2M[L, R]) Remove(left L) ([]R, bool) {
	var removed []R

	curr := om.list.Head()
	for curr != nil {
		next := curr.Next()
		p := curr.Value()
		if p.Left == left {
			removed = append(removed, p.Right)
			delete(om.index, p)
			om.list.Remove(curr)
		}
		curr = next
	}

	if len(removed) == 0 {
		return nil, false
	}

	return removed, true
}

// RemoveRight is the mirror of Remove for the right component.
func (om *OrderedM2M[L, R]) RemoveRight(right R) ([]L, bool) {
	var removed []L

	curr := om.list.Head()
	for curr != nil {
		next := curr.Next()
		p := curr.Value()
		if p.Right == right {
			removed = append(removed, p.Left)
			delete(om.index, p)
			om.list.Remove(curr)
		}
		curr = next
	}

	if len(removed) == 0 {
		return nil, false
	}

	return removed, true
}

func (om *OrderedM2M[L, R]) Clear() {
	om.index = nil
	om.index = make(map[Pair[L, R]]*dll.Element[Pair[L, R]])
	om.list = nil
	om.list = dll.New[Pair[L, R]]()
}

func (om *OrderedM2M[L, R]) Len() int {
	return len(om.index)
}

func (om *OrderedM2M[L, R]) IsEmpty() bool {
	return len(om.index) == 0
}

func (om *OrderedM2M[L, R]) Contains(left L, right R) bool {
	_, found := om.index[Pair[L, R]{Left: left, Right: right}]
	return found
}

func (om *OrderedM2M[L, R]) ContainsLeft(left L) bool {
	curr := om.list.Head()
	for curr != nil {
		if curr.Value().Left == left {
			return true
		}
		curr = curr.Next()
	}
	return false
}

func (om *OrderedM2M[L, R]) ContainsRight(right R) bool {
	curr := om.list.Head()
	for curr != nil {
		if curr.Value().Right == right {
			return true
		}
		curr = curr.Next()
	}
	return false
}

// RightsOf returns the rights paired with the given left value in
// insertion order, or false when there are none.
func (om *OrderedM2M[L, R]) RightsOf(left L) ([]R, bool) {
	var rights []R

	curr := om.list.Head()
	for curr != nil {
		if p := curr.Value(); p.Left == left {
			rights = append(rights, p.Right)
		}
		curr = curr.Next()
	}

	if len(rights) == 0 {
		return nil, false
	}

	return rights, true
}

func (om *OrderedM2M[L, R]) LeftsOf(right R) ([]L, bool) {
	var lefts []L

	curr := om.list.Head()
	for curr != nil {
		if p := curr.Value(); p.Right == right {
			lefts = append(lefts, p.Left)
		}
		curr = curr.Next()
	}

	if len(lefts) == 0 {
		return nil, false
	}

	return lefts, true
}

// Lefts returns every distinct left value in first-encounter order, or
// false when the collection is empty.
func (om *OrderedM2M[L, R]) Lefts() ([]L, bool) {
	if len(om.index) == 0 {
		return nil, false
	}

	seen := make(map[L]struct{})
	var lefts []L

	curr := om.list.Head()
	for curr != nil {
		p := curr.Value()
		if _, ok := seen[p.Left]; !ok {
			seen[p.Left] = struct{}{}
			lefts = append(lefts, p.Left)
		}
		curr = curr.Next()
	}

	return lefts, true
}

func (om *OrderedM2M[L, R]) Rights() ([]R, bool) {
	if len(om.index) == 0 {
		return nil, false
	}

	seen := make(map[R]struct{})
	var rights []R

	curr := om.list.Head()
	for curr != nil {
		p := curr.Value()
		if _, ok := seen[p.Right]; !ok {
			seen[p.Right] = struct{}{}
			rights = append(rights, p.Right)
		}
		curr = curr.Next()
	}

	return rights, true
}

func (om *OrderedM2M[L, R]) Retain(keep PredicateFn[L, R]) {
	curr := om.list.Head()
	for curr != nil {
		next := curr.Next()
		p := curr.Value()
		if !keep(p.Left, p.Right) {
			delete(om.index, p)
			om.list.Remove(curr)
		}
		curr = next
	}
}

func (om *OrderedM2M[L, R]) Reject(drop PredicateFn[L, R]) {
	om.Retain(func(left L, right R) bool {
		return !drop(left, right)
	})
}

func (om *OrderedM2M[L, R]) ForEach(f ForEachFn[L, R]) {
	curr := om.list.Head()
	for curr != nil {
		f(curr.Value().Left, curr.Value().Right)
		curr = curr.Next()
	}
}

// ToPairs returns a snapshot of the stored pairs in insertion order.
func (om *OrderedM2M[L, R]) ToPairs() []Pair[L, R] {
	pairs := make([]Pair[L, R], 0, len(om.index))

	curr := om.list.Head()
	for curr != nil {
		pairs = append(pairs, curr.Value())
		curr = curr.Next()
	}

	return pairs
}

func (om *OrderedM2M[L, R]) ToMap() map[L][]R {
	result := make(map[L][]R)

	curr := om.list.Head()
	for curr != nil {
		p := curr.Value()
		result[p.Left] = append(result[p.Left], p.Right)
		curr = curr.Next()
	}

	return result
}

func (om *OrderedM2M[L, R]) Clone() *OrderedM2M[L, R] {
	result := NewOrdered[L, R]()

	curr := om.list.Head()
	for curr != nil {
		p := curr.Value()
		result.Insert(p.Left, p.Right)
		curr = curr.Next()
	}

	return result
}

// Flip returns a new collection with every pair inverted, keeping the
// insertion order of the originals.
func (om *OrderedM2M[L, R]) Flip() *OrderedM2M[R, L] {
	result := NewOrdered[R, L]()

	curr := om.list.Head()
	for curr != nil {
		p := curr.Value()
		result.Insert(p.Right, p.Left)
		curr = curr.Next()
	}

	return result
}

func (om *OrderedM2M[L, R]) Pairs(ctx context.Context) <-chan Pair[L, R] {
	resultCh := make(chan Pair[L, R])

	go func() {
		defer close(resultCh)

		curr := om.list.Head()
		for curr != nil {
			select {
			case resultCh <- curr.Value():
			case <-ctx.Done():
				return
			}

			curr = curr.Next()
		}
	}()

	return resultCh
}

func (om *OrderedM2M[L, R]) String() string {
	return formatPairs(om.ToPairs())
}
