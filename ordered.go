package ordered

import (
	"fmt"
	"iter"

	"jsouthworth.net/go/dyn"
	"jsouthworth.net/go/seq"
)

// Entry is a key and its associated value.
type Entry[K, V any] struct {
	Key   K
	Value V
}

func (e Entry[K, V]) String() string {
	return fmt.Sprintf("[%v %v]", e.Key, e.Value)
}

// Map is the ordered map API shared by every tree variant.
type Map[K, V any] interface {
	// Insert associates value with key, overwriting any previous
	// value. It reports whether a new entry was added.
	Insert(key K, value V) bool
	// Delete removes key and returns the value it held.
	Delete(key K) (V, error)
	// Search returns the value stored for key.
	Search(key K) (V, bool)
	Contains(key K) bool
	Min() (K, V, bool)
	Max() (K, V, bool)
	DeleteMin() (K, V, error)
	DeleteMax() (K, V, error)
	Len() int
	Height() int
	// Range calls do for each entry in ascending key order until do
	// returns false.
	Range(do func(key K, value V) bool)
	All() iter.Seq2[K, V]
	// Seq returns a lazy sequence of Entry values, or nil if the map
	// is empty.
	Seq() seq.Sequence
	// Validate checks every structural invariant of the tree.
	Validate() error
	String() string
}

type options[K any] struct {
	compare func(k1, k2 K) int
}

// Option is a type that allows changes to pluggable parts of a tree.
type Option[K any] func(*options[K])

// Compare is an option that replaces the default key comparison,
// which is dyn.Compare. cmp must define a total order: negative when
// k1 < k2, zero when equal, positive when k1 > k2.
func Compare[K any](cmp func(k1, k2 K) int) Option[K] {
	return func(o *options[K]) {
		o.compare = cmp
	}
}

// Comparator resolves options into the key comparison a tree uses.
func Comparator[K any](opts ...Option[K]) func(k1, k2 K) int {
	o := options[K]{
		compare: dynCompare[K],
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o.compare
}

func dynCompare[K any](k1, k2 K) int {
	return dyn.Compare(k1, k2)
}
