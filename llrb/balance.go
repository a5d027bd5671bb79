package llrb

import (
	"fmt"

	"jsouthworth.net/go/ordered"
	"jsouthworth.net/go/ordered/internal/bintree"
)

// recolor keeps the black height of a rotated subtree: the promoted
// node takes the colour of the node it replaces and the demoted node
// becomes red.
type recolor[K, V any] struct{}

func (recolor[K, V]) Rotated(demoted, promoted *node[K, V]) {
	promoted.Meta = demoted.Meta
	demoted.Meta = red
}

// isRed treats a missing child as black.
func isRed[K, V any](n *node[K, V]) bool {
	return n != nil && n.Meta == red
}

func rotateLeft[K, V any](n *node[K, V]) *node[K, V] {
	return bintree.RotateLeft(n, recolor[K, V]{})
}

func rotateRight[K, V any](n *node[K, V]) *node[K, V] {
	return bintree.RotateRight(n, recolor[K, V]{})
}

// flipColors splits or merges a 4-node. Both children must exist and
// share a colour.
func flipColors[K, V any](n *node[K, V]) {
	if n.Left == nil || n.Right == nil {
		panic(ordered.InvariantError{
			Op:  "flipColors",
			Msg: fmt.Sprintf("node %v is missing a child", n.Key),
		})
	}
	if n.Left.Meta != n.Right.Meta {
		panic(ordered.InvariantError{
			Op: "flipColors",
			Msg: fmt.Sprintf("children of %v have colours %s and %s",
				n.Key, n.Left.Meta, n.Right.Meta),
		})
	}
	n.Meta = n.Meta.flip()
	n.Left.Meta = n.Left.Meta.flip()
	n.Right.Meta = n.Right.Meta.flip()
}

// balance restores the left-leaning invariants at n on the way back up
// from an insert or delete.
func balance[K, V any](n *node[K, V]) *node[K, V] {
	if !isRed(n.Left) && isRed(n.Right) {
		n = rotateLeft(n)
	}
	if isRed(n.Left) && isRed(n.Left.Left) {
		n = rotateRight(n)
	}
	if isRed(n.Left) && isRed(n.Right) {
		flipColors(n)
	}
	return n
}

// moveRedLeft assumes n is red and both n.Left and n.Left.Left are
// black; it makes n.Left or one of its children red.
func moveRedLeft[K, V any](n *node[K, V]) *node[K, V] {
	flipColors(n)
	if isRed(n.Right.Left) {
		n.Right = rotateRight(n.Right)
		n = rotateLeft(n)
		flipColors(n)
	}
	return n
}

// moveRedRight assumes n is red and both n.Right and n.Right.Left are
// black; it makes n.Right or one of its children red.
func moveRedRight[K, V any](n *node[K, V]) *node[K, V] {
	flipColors(n)
	if isRed(n.Left.Left) {
		n = rotateRight(n)
		flipColors(n)
	}
	return n
}

func deleteMin[K, V any](n *node[K, V]) (root, removed *node[K, V]) {
	if n.Left == nil {
		return nil, n
	}
	if !isRed(n.Left) && !isRed(n.Left.Left) {
		n = moveRedLeft(n)
	}
	n.Left, removed = deleteMin(n.Left)
	return balance(n), removed
}

func deleteMax[K, V any](n *node[K, V]) (root, removed *node[K, V]) {
	if isRed(n.Left) {
		n = rotateRight(n)
	}
	if n.Right == nil {
		return nil, n
	}
	if !isRed(n.Right) && !isRed(n.Right.Left) {
		n = moveRedRight(n)
	}
	n.Right, removed = deleteMax(n.Right)
	return balance(n), removed
}

// checkColors returns the black height of n, or an error describing
// the first colour rule it finds broken.
func checkColors[K, V any](n *node[K, V]) (int, error) {
	if n == nil {
		return 0, nil
	}
	if isRed(n.Right) {
		return 0, fmt.Errorf("red right link below %v", n.Key)
	}
	if isRed(n) && isRed(n.Left) {
		return 0, fmt.Errorf("two red links in a row at %v", n.Key)
	}
	lb, err := checkColors(n.Left)
	if err != nil {
		return 0, err
	}
	rb, err := checkColors(n.Right)
	if err != nil {
		return 0, err
	}
	if lb != rb {
		return 0, fmt.Errorf("black height below %v differs: left %d, right %d", n.Key, lb, rb)
	}
	if n.Meta == black {
		lb++
	}
	return lb, nil
}
