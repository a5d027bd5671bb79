package avl // import "jsouthworth.net/go/ordered/avl"

import (
	"fmt"
	"io"
	"iter"

	"jsouthworth.net/go/ordered"
	"jsouthworth.net/go/ordered/internal/bintree"
	"jsouthworth.net/go/seq"
)

// Tree is a mutable ordered map backed by an AVL tree. The zero value
// is not usable; create trees with Empty or New.
type Tree[K, V any] struct {
	root    *bintree.Node[K, V, int]
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

// Insert associates value with key, rebalancing every ancestor of the
// new node on the way back up. Overwriting the value of an existing
// key leaves the shape of the tree untouched and returns false.
func (t *Tree[K, V]) Insert(key K, value V) bool {
	var added bool
	t.root, added = t.insert(t.root, key, value)
	if added {
		t.size++
		t.version++
	}
	return added
}

func (t *Tree[K, V]) insert(n *bintree.Node[K, V, int], key K, value V) (*bintree.Node[K, V, int], bool) {
	if n == nil {
		return &bintree.Node[K, V, int]{Key: key, Value: value, Meta: 1}, true
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
	return rebalance(n), added
}

// Delete removes key from the tree and returns its value.
func (t *Tree[K, V]) Delete(key K) (V, error) {
	var (
		value V
		found bool
	)
	t.root, value, found = t.delete(t.root, key)
	if !found {
		return value, fmt.Errorf("avl: delete %v: %w", key, ordered.ErrNotFound)
	}
	t.size--
	t.version++
	return value, nil
}

func (t *Tree[K, V]) delete(n *bintree.Node[K, V, int], key K) (*bintree.Node[K, V, int], V, bool) {
	var (
		value V
		found bool
	)
	if n == nil {
		return nil, value, false
	}
	c := t.cmp(key, n.Key)
	switch {
	case c < 0:
		n.Left, value, found = t.delete(n.Left, key)
	case c > 0:
		n.Right, value, found = t.delete(n.Right, key)
	default:
		value, found = n.Value, true
		switch {
		case n.Left == nil:
			return n.Right, value, true
		case n.Right == nil:
			return n.Left, value, true
		}
		var pred *bintree.Node[K, V, int]
		n.Left, pred = deleteMax(n.Left)
		n.Key, n.Value = pred.Key, pred.Value
	}
	if !found {
		return n, value, false
	}
	return rebalance(n), value, true
}

// DeleteMin removes the entry with the smallest key.
func (t *Tree[K, V]) DeleteMin() (K, V, error) {
	if t.root == nil {
		var (
			key   K
			value V
		)
		return key, value, fmt.Errorf("avl: delete min: %w", ordered.ErrEmptyTree)
	}
	var removed *bintree.Node[K, V, int]
	t.root, removed = deleteMin(t.root)
	t.size--
	t.version++
	return removed.Key, removed.Value, nil
}

// DeleteMax removes the entry with the largest key.
func (t *Tree[K, V]) DeleteMax() (K, V, error) {
	if t.root == nil {
		var (
			key   K
			value V
		)
		return key, value, fmt.Errorf("avl: delete max: %w", ordered.ErrEmptyTree)
	}
	var removed *bintree.Node[K, V, int]
	t.root, removed = deleteMax(t.root)
	t.size--
	t.version++
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
	return entryOf(bintree.Min(t.root))
}

// Max returns the entry with the largest key, if any.
func (t *Tree[K, V]) Max() (K, V, bool) {
	return entryOf(bintree.Max(t.root))
}

func entryOf[K, V any](n *bintree.Node[K, V, int]) (K, V, bool) {
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

// Height returns the height of the tree; it is read from the root
// rather than recomputed.
func (t *Tree[K, V]) Height() int {
	return height(t.root)
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

// Validate checks ordering, the stored heights, the balance of every
// node and the cached size.
func (t *Tree[K, V]) Validate() error {
	count, err := bintree.CheckOrder(t.root, t.cmp)
	if err != nil {
		return fmt.Errorf("avl: %w", err)
	}
	if count != t.size {
		return fmt.Errorf("avl: size is %d but tree holds %d nodes", t.size, count)
	}
	if _, err := checkBalance(t.root); err != nil {
		return fmt.Errorf("avl: %w", err)
	}
	return nil
}

func checkBalance[K, V any](n *bintree.Node[K, V, int]) (int, error) {
	if n == nil {
		return 0, nil
	}
	lh, err := checkBalance(n.Left)
	if err != nil {
		return 0, err
	}
	rh, err := checkBalance(n.Right)
	if err != nil {
		return 0, err
	}
	h := 1 + max(lh, rh)
	if n.Meta != h {
		return 0, fmt.Errorf("node %v records height %d, actual %d", n.Key, n.Meta, h)
	}
	if rh-lh > 1 || lh-rh > 1 {
		return 0, fmt.Errorf("node %v is unbalanced: left %d, right %d", n.Key, lh, rh)
	}
	return h, nil
}

// Equal tests whether o is an ordered map holding the same entries.
func (t *Tree[K, V]) Equal(o interface{}) bool {
	other, ok := o.(ordered.Map[K, V])
	if !ok {
		return false
	}
	return bintree.Equal(t.cmp, t.Len(), t.All(), other.Len(), other.All())
}

// Dotdump writes the tree as a graphviz script, labelling each node
// with its height.
func (t *Tree[K, V]) Dotdump(w io.Writer) error {
	return bintree.Dot(w, "avl", t.root, func(n *bintree.Node[K, V, int]) string {
		return fmt.Sprintf("xlabel=\"h=%d\"", n.Meta)
	})
}

// String returns a string representation of the tree's entries.
func (t *Tree[K, V]) String() string {
	return bintree.Format(t.All())
}

// Iterator is an in-order iterator over a Tree. Iterators are not
// safe for concurrent access.
type Iterator[K, V any] struct {
	impl bintree.Iterator[K, V, int]
}

// HasNext reports whether there are entries left.
func (i *Iterator[K, V]) HasNext() bool {
	return i.impl.HasNext()
}

// Next returns the next entry.
func (i *Iterator[K, V]) Next() (K, V) {
	return i.impl.Next()
}
