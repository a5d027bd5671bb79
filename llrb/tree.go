package llrb // import "jsouthworth.net/go/ordered/llrb"

import (
	"fmt"
	"io"
	"iter"

	"jsouthworth.net/go/ordered"
	"jsouthworth.net/go/ordered/internal/bintree"
	"jsouthworth.net/go/seq"
)

// Tree is a mutable ordered map backed by a left-leaning red-black
// tree. The zero value is not usable; create trees with Empty or New.
type Tree[K, V any] struct {
	root    *node[K, V]
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

// Insert associates value with key. New keys enter the tree as red
// leaves and the path back to the root is rebalanced; the root is
// always black afterwards.
func (t *Tree[K, V]) Insert(key K, value V) bool {
	var added bool
	t.root, added = t.insert(t.root, key, value)
	t.root.Meta = black
	if added {
		t.size++
		t.version++
	}
	return added
}

func (t *Tree[K, V]) insert(n *node[K, V], key K, value V) (*node[K, V], bool) {
	if n == nil {
		return &node[K, V]{Key: key, Value: value, Meta: red}, true
	}
	var added bool
	c := t.cmp(key, n.Key)
	switch {
	case c < 0:
		n.Left, added = t.insert(n.Left, key, value)
	case c > 0:
		n.Right, added = t.insert(n.Right, key, value)
	default:
		n.Value = value
		return n, false
	}
	return balance(n), added
}

// Delete removes key from the tree and returns its value. The key is
// looked up first: the top-down pass reshapes the tree as it descends
// and must not run for a key that is not there.
func (t *Tree[K, V]) Delete(key K) (V, error) {
	n, ok := bintree.Find(t.root, key, t.cmp)
	if !ok {
		var zero V
		return zero, fmt.Errorf("llrb: delete %v: %w", key, ordered.ErrNotFound)
	}
	value := n.Value
	if !isRed(t.root.Left) && !isRed(t.root.Right) {
		t.root.Meta = red
	}
	t.root = t.delete(t.root, key)
	t.settle()
	return value, nil
}

func (t *Tree[K, V]) delete(n *node[K, V], key K) *node[K, V] {
	if t.cmp(key, n.Key) < 0 {
		if !isRed(n.Left) && !isRed(n.Left.Left) {
			n = moveRedLeft(n)
		}
		n.Left = t.delete(n.Left, key)
		return balance(n)
	}
	if isRed(n.Left) {
		n = rotateRight(n)
	}
	if t.cmp(key, n.Key) == 0 && n.Leaf() {
		return nil
	}
	if !isRed(n.Right) && !isRed(n.Right.Left) {
		n = moveRedRight(n)
	}
	if t.cmp(key, n.Key) == 0 {
		var succ *node[K, V]
		n.Right, succ = deleteMin(n.Right)
		n.Key, n.Value = succ.Key, succ.Value
	} else {
		n.Right = t.delete(n.Right, key)
	}
	return balance(n)
}

// settle finishes a removal: the root goes back to black.
func (t *Tree[K, V]) settle() {
	if t.root != nil {
		t.root.Meta = black
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
		return key, value, fmt.Errorf("llrb: delete min: %w", ordered.ErrEmptyTree)
	}
	if !isRed(t.root.Left) && !isRed(t.root.Right) {
		t.root.Meta = red
	}
	var removed *node[K, V]
	t.root, removed = deleteMin(t.root)
	t.settle()
	return removed.Key, removed.Value, nil
}

// DeleteMax removes the entry with the largest key.
func (t *Tree[K, V]) DeleteMax() (K, V, error) {
	if t.root == nil {
		var (
			key   K
			value V
		)
		return key, value, fmt.Errorf("llrb: delete max: %w", ordered.ErrEmptyTree)
	}
	if !isRed(t.root.Left) && !isRed(t.root.Right) {
		t.root.Meta = red
	}
	var removed *node[K, V]
	t.root, removed = deleteMax(t.root)
	t.settle()
	return removed.Key, removed.Value, nil
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
	n := bintree.Min(t.root)
	if n == nil {
		var (
			key   K
			value V
		)
		return key, value, false
	}
	return n.Key, n.Value, true
}

// Max returns the entry with the largest key, if any.
func (t *Tree[K, V]) Max() (K, V, bool) {
	n := bintree.Max(t.root)
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

// Validate checks ordering, the colour rules, black balance and the
// cached size.
func (t *Tree[K, V]) Validate() error {
	count, err := bintree.CheckOrder(t.root, t.cmp)
	if err != nil {
		return fmt.Errorf("llrb: %w", err)
	}
	if count != t.size {
		return fmt.Errorf("llrb: size is %d but tree holds %d nodes", t.size, count)
	}
	if isRed(t.root) {
		return fmt.Errorf("llrb: root %v is red", t.root.Key)
	}
	if _, err := checkColors(t.root); err != nil {
		return fmt.Errorf("llrb: %w", err)
	}
	return nil
}

// BlackHeight returns the number of black nodes on every path from
// the root to a missing child.
func (t *Tree[K, V]) BlackHeight() int {
	h := 0
	for n := t.root; n != nil; n = n.Left {
		if n.Meta == black {
			h++
		}
	}
	return h
}

// Equal tests whether o is an ordered map holding the same entries.
func (t *Tree[K, V]) Equal(o interface{}) bool {
	other, ok := o.(ordered.Map[K, V])
	if !ok {
		return false
	}
	return bintree.Equal(t.cmp, t.Len(), t.All(), other.Len(), other.All())
}

// Dotdump writes the tree as a graphviz script. Red nodes and the red
// links leading into them are drawn in red.
func (t *Tree[K, V]) Dotdump(w io.Writer) error {
	return bintree.Dot(w, "llrb", t.root, func(n *node[K, V]) string {
		if n.Meta == red {
			return "color=red"
		}
		return ""
	})
}

// String returns a string representation of the tree's entries.
func (t *Tree[K, V]) String() string {
	return bintree.Format(t.All())
}

// Iterator is an in-order iterator over a Tree. Iterators are not
// safe for concurrent access.
type Iterator[K, V any] struct {
	impl bintree.Iterator[K, V, color]
}

// HasNext reports whether there are entries left.
func (i *Iterator[K, V]) HasNext() bool {
	return i.impl.HasNext()
}

// Next returns the next entry.
func (i *Iterator[K, V]) Next() (K, V) {
	return i.impl.Next()
}
