package bst // import "jsouthworth.net/go/ordered/bst"

import (
	"fmt"
	"io"
	"iter"

	"jsouthworth.net/go/ordered"
	"jsouthworth.net/go/ordered/internal/bintree"
	"jsouthworth.net/go/seq"
)

type meta struct{}

// Tree is a mutable ordered map backed by a plain binary search tree.
// The zero value is not usable; create trees with Empty or New.
type Tree[K, V any] struct {
	root    *bintree.Node[K, V, meta]
	size    int
	version int
	cmp     func(k1, k2 K) int
}

var _ ordered.Map[int, int] = (*Tree[int, int])(nil)

// Empty returns a new tree without entries.
func Empty[K, V any](options ...ordered.Option[K]) *Tree[K, V] {
	return &Tree[K, V]{
		cmp: ordered.Comparator(options...),
	}
}

// New returns a tree seeded with a single entry.
func New[K, V any](key K, value V, options ...ordered.Option[K]) *Tree[K, V] {
	t := Empty[K, V](options...)
	t.Insert(key, value)
	return t
}

// Insert associates value with key. An existing key has its value
// overwritten and Insert returns false.
func (t *Tree[K, V]) Insert(key K, value V) bool {
	link := &t.root
	for *link != nil {
		n := *link
		c := t.cmp(key, n.Key)
		switch {
		case c < 0:
			link = &n.Left
		case c > 0:
			link = &n.Right
		default:
			n.Value = value
			return false
		}
	}
	*link = &bintree.Node[K, V, meta]{Key: key, Value: value}
	t.size++
	t.version++
	return true
}

// Delete removes key from the tree and returns its value. A node with
// two children takes the entry of its in-order successor, which is
// then spliced out of the right subtree.
func (t *Tree[K, V]) Delete(key K) (V, error) {
	link := &t.root
	for *link != nil {
		n := *link
		c := t.cmp(key, n.Key)
		switch {
		case c < 0:
			link = &n.Left
		case c > 0:
			link = &n.Right
		default:
			value := n.Value
			t.unlink(link)
			return value, nil
		}
	}
	var zero V
	return zero, fmt.Errorf("bst: delete %v: %w", key, ordered.ErrNotFound)
}

// unlink removes the node *link points at.
func (t *Tree[K, V]) unlink(link **bintree.Node[K, V, meta]) {
	n := *link
	switch {
	case n.Left == nil:
		*link = n.Right
	case n.Right == nil:
		*link = n.Left
	default:
		succ := &n.Right
		for (*succ).Left != nil {
			succ = &(*succ).Left
		}
		s := *succ
		n.Key, n.Value = s.Key, s.Value
		*succ = s.Right
	}
	t.size--
	t.version++
}

// DeleteMin removes the entry with the smallest key.
func (t *Tree[K, V]) DeleteMin() (K, V, error) {
	if t.root == nil {
		var (
			key   K
			value V
		)
		return key, value, fmt.Errorf("bst: delete min: %w", ordered.ErrEmptyTree)
	}
	link := &t.root
	for (*link).Left != nil {
		link = &(*link).Left
	}
	n := *link
	t.unlink(link)
	return n.Key, n.Value, nil
}

// DeleteMax removes the entry with the largest key.
func (t *Tree[K, V]) DeleteMax() (K, V, error) {
	if t.root == nil {
		var (
			key   K
			value V
		)
		return key, value, fmt.Errorf("bst: delete max: %w", ordered.ErrEmptyTree)
	}
	link := &t.root
	for (*link).Right != nil {
		link = &(*link).Right
	}
	n := *link
	t.unlink(link)
	return n.Key, n.Value, nil
}

// Search returns the value associated with key.
func (t *Tree[K, V]) Search(key K) (V, bool) {
	n, ok := bintree.Find(t.root, key, t.cmp)
	if !ok {
		var zero V
		return zero, false
	}
	return n.Value, true
}

// Contains reports whether key is in the tree.
func (t *Tree[K, V]) Contains(key K) bool {
	_, ok := bintree.Find(t.root, key, t.cmp)
	return ok
}

// Min returns the entry with the smallest key, if any.
func (t *Tree[K, V]) Min() (K, V, bool) {
	return entryOf(bintree.Min(t.root))
}

// Max returns the entry with the largest key, if any.
func (t *Tree[K, V]) Max() (K, V, bool) {
	return entryOf(bintree.Max(t.root))
}

func entryOf[K, V any](n *bintree.Node[K, V, meta]) (K, V, bool) {
	if n == nil {
		var (
			key   K
			value V
		)
		return key, value, false
	}
	return n.Key, n.Value, true
}

// Len returns the number of entries in the tree.
func (t *Tree[K, V]) Len() int {
	return t.size
}

// Height returns the number of nodes on the longest path from the root.
func (t *Tree[K, V]) Height() int {
	return bintree.Height(t.root)
}

// Iterator provides an in-order iterator over the tree. It panics with
// ordered.ErrModified if the tree is mutated while it is in use.
func (t *Tree[K, V]) Iterator() Iterator[K, V] {
	return Iterator[K, V]{
		impl: bintree.MakeIterator(t.root, &t.version),
	}
}

// Range calls do for every entry in ascending key order until do
// returns false.
func (t *Tree[K, V]) Range(do func(key K, value V) bool) {
	it := t.Iterator()
	for cont := true; cont && it.HasNext(); {
		cont = do(it.Next())
	}
}

// All returns an iterator over the entries in ascending key order.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return t.Range
}

// Seq returns a lazy sequence of ordered.Entry values. Unlike an
// Iterator it does not detect mutation: a sequence is only valid until
// the tree is next modified, and using it afterwards gives undefined
// results.
func (t *Tree[K, V]) Seq() seq.Sequence {
	return bintree.Sequence(t.root)
}

// Validate checks the ordering invariant and the cached size.
func (t *Tree[K, V]) Validate() error {
	count, err := bintree.CheckOrder(t.root, t.cmp)
	if err != nil {
		return fmt.Errorf("bst: %w", err)
	}
	if count != t.size {
		return fmt.Errorf("bst: size is %d but tree holds %d nodes", t.size, count)
	}
	return nil
}

// Equal tests whether o is an ordered map holding the same entries.
func (t *Tree[K, V]) Equal(o interface{}) bool {
	other, ok := o.(ordered.Map[K, V])
	if !ok {
		return false
	}
	return bintree.Equal(t.cmp, t.Len(), t.All(), other.Len(), other.All())
}

// Dotdump writes the tree as a graphviz script.
func (t *Tree[K, V]) Dotdump(w io.Writer) error {
	return bintree.Dot[K, V, meta](w, "bst", t.root, nil)
}

// String returns a string representation of the tree's entries.
func (t *Tree[K, V]) String() string {
	return bintree.Format(t.All())
}

// Iterator is an in-order iterator over a Tree. Iterators are not
// safe for concurrent access.
type Iterator[K, V any] struct {
	impl bintree.Iterator[K, V, meta]
}

// HasNext reports whether there are entries left.
func (i *Iterator[K, V]) HasNext() bool {
	return i.impl.HasNext()
}

// Next returns the next entry.
func (i *Iterator[K, V]) Next() (K, V) {
	return i.impl.Next()
}
