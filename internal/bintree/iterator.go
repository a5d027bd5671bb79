package bintree

import "jsouthworth.net/go/ordered"

const errExhausted = ordered.Error("iterator exhausted")

// Iterator walks a tree in order using an explicit stack of the
// ancestors whose keys have not been produced yet.
//
// The iterator remembers the tree version it was created at. Any use
// after the tree has been mutated panics with ordered.ErrModified.
type Iterator[K, V, M any] struct {
	stack   []*Node[K, V, M]
	version *int
	want    int
}

// MakeIterator returns an iterator positioned before the smallest key
// of root. version points at the owning tree's mutation counter.
func MakeIterator[K, V, M any](root *Node[K, V, M], version *int) Iterator[K, V, M] {
	i := Iterator[K, V, M]{
		version: version,
		want:    *version,
	}
	i.pushLeft(root)
	return i
}

func (i *Iterator[K, V, M]) pushLeft(n *Node[K, V, M]) {
	for n != nil {
		i.stack = append(i.stack, n)
		n = n.Left
	}
}

func (i *Iterator[K, V, M]) ensureUnmodified() {
	if *i.version != i.want {
		panic(ordered.ErrModified)
	}
}

// HasNext reports whether Next will produce another entry.
func (i *Iterator[K, V, M]) HasNext() bool {
	i.ensureUnmodified()
	return len(i.stack) > 0
}

// Next returns the next entry in ascending key order.
func (i *Iterator[K, V, M]) Next() (K, V) {
	i.ensureUnmodified()
	if len(i.stack) == 0 {
		panic(errExhausted)
	}
	last := len(i.stack) - 1
	n := i.stack[last]
	i.stack[last] = nil
	i.stack = i.stack[:last]
	i.pushLeft(n.Right)
	return n.Key, n.Value
}
