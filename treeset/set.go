// Package treeset implements an ordered set on top of the llrb tree.
package treeset // import "jsouthworth.net/go/ordered/treeset"

import (
	"fmt"
	"iter"
	"strings"

	"jsouthworth.net/go/ordered"
	"jsouthworth.net/go/ordered/llrb"
	"jsouthworth.net/go/seq"
)

// Set is a mutable set whose elements are kept in ascending order.
type Set[K any] struct {
	backingMap *llrb.Tree[K, struct{}]
}

// Empty returns a new empty set. Options are the same as for the
// trees, most usefully ordered.Compare.
func Empty[K any](options ...ordered.Option[K]) *Set[K] {
	return &Set[K]{
		backingMap: llrb.Empty[K, struct{}](options...),
	}
}

// New returns a set holding elems, ordered with the default
// comparison.
func New[K any](elems ...K) *Set[K] {
	out := Empty[K]()
	for _, elem := range elems {
		out.Add(elem)
	}
	return out
}

// FromSeq builds a set from a sequence whose elements are all of type K.
func FromSeq[K any](coll seq.Sequence, options ...ordered.Option[K]) *Set[K] {
	out := Empty[K](options...)
	for s := coll; s != nil; s = s.Next() {
		out.Add(s.First().(K))
	}
	return out
}

// Add adds an element to the set and reports whether it was new.
func (s *Set[K]) Add(elem K) bool {
	return s.backingMap.Insert(elem, struct{}{})
}

// Contains returns true if the element is in the set, false otherwise.
func (s *Set[K]) Contains(elem K) bool {
	return s.backingMap.Contains(elem)
}

// Delete removes an element from the set. Removing an element that is
// not present fails with ordered.ErrNotFound.
func (s *Set[K]) Delete(elem K) error {
	if _, err := s.backingMap.Delete(elem); err != nil {
		return fmt.Errorf("treeset: %w", err)
	}
	return nil
}

// Min returns the smallest element.
func (s *Set[K]) Min() (K, bool) {
	elem, _, ok := s.backingMap.Min()
	return elem, ok
}

// Max returns the largest element.
func (s *Set[K]) Max() (K, bool) {
	elem, _, ok := s.backingMap.Max()
	return elem, ok
}

// Length returns the number of elements in the set.
func (s *Set[K]) Length() int {
	return s.backingMap.Len()
}

// Range calls do for each element in ascending order until do
// returns false.
func (s *Set[K]) Range(do func(elem K) bool) {
	s.backingMap.Range(func(elem K, _ struct{}) bool {
		return do(elem)
	})
}

// All returns an iterator over the elements in ascending order.
func (s *Set[K]) All() iter.Seq[K] {
	return s.Range
}

// String returns a string serialization of the set.
func (s *Set[K]) String() string {
	var b strings.Builder
	fmt.Fprint(&b, "{ ")
	s.Range(func(elem K) bool {
		fmt.Fprintf(&b, "%v ", elem)
		return true
	})
	fmt.Fprint(&b, "}")
	return b.String()
}

// Apply takes an arbitrary number of arguments and reports whether
// the first one is in the set. Apply allows a set to be called as a
// function by the 'dyn' library.
func (s *Set[K]) Apply(args ...interface{}) interface{} {
	elem, ok := args[0].(K)
	return ok && s.Contains(elem)
}

// Seq returns a lazy sequence of the set's elements.
func (s *Set[K]) Seq() seq.Sequence {
	mSeq := s.backingMap.Seq()
	if mSeq == nil {
		return nil
	}
	return &setSeq[K]{mSeq: mSeq}
}

// Equal tests if two sets hold the same elements. Equal implements
// the Equaler which allows for deep comparisons when there are sets
// of sets.
func (s *Set[K]) Equal(o interface{}) bool {
	other, ok := o.(*Set[K])
	if !ok {
		return false
	}
	return s.backingMap.Equal(other.backingMap)
}

// Validate checks the invariants of the backing tree.
func (s *Set[K]) Validate() error {
	return s.backingMap.Validate()
}

type setSeq[K any] struct {
	mSeq seq.Sequence
}

func (s *setSeq[K]) First() interface{} {
	return s.mSeq.First().(ordered.Entry[K, struct{}]).Key
}

func (s *setSeq[K]) Next() seq.Sequence {
	next := s.mSeq.Next()
	if next == nil {
		return nil
	}
	return &setSeq[K]{mSeq: next}
}

func (s *setSeq[K]) String() string {
	return seq.ConvertToString(s)
}
