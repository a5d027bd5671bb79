package avl

import "jsouthworth.net/go/ordered/internal/bintree"

// Node metadata is the height of the subtree rooted at the node; a
// missing subtree has height 0 and a leaf height 1.

type heights[K, V any] struct{}

func (heights[K, V]) Rotated(demoted, promoted *bintree.Node[K, V, int]) {
	updateHeight(demoted)
	updateHeight(promoted)
}

func height[K, V any](n *bintree.Node[K, V, int]) int {
	if n == nil {
		return 0
	}
	return n.Meta
}

func updateHeight[K, V any](n *bintree.Node[K, V, int]) {
	n.Meta = 1 + max(height(n.Left), height(n.Right))
}

func balanceFactor[K, V any](n *bintree.Node[K, V, int]) int {
	return height(n.Right) - height(n.Left)
}

// rebalance restores the AVL invariant at n, whose subtrees are
// assumed to be valid AVL trees differing in height by at most two,
// and returns the new subtree root.
func rebalance[K, V any](n *bintree.Node[K, V, int]) *bintree.Node[K, V, int] {
	updateHeight(n)
	switch balanceFactor(n) {
	case 2:
		if balanceFactor(n.Right) < 0 {
			n.Right = bintree.RotateRight(n.Right, heights[K, V]{})
		}
		return bintree.RotateLeft(n, heights[K, V]{})
	case -2:
		if balanceFactor(n.Left) > 0 {
			n.Left = bintree.RotateLeft(n.Left, heights[K, V]{})
		}
		return bintree.RotateRight(n, heights[K, V]{})
	}
	return n
}

func deleteMin[K, V any](n *bintree.Node[K, V, int]) (root, removed *bintree.Node[K, V, int]) {
	if n.Left == nil {
		return n.Right, n
	}
	n.Left, removed = deleteMin(n.Left)
	return rebalance(n), removed
}

func deleteMax[K, V any](n *bintree.Node[K, V, int]) (root, removed *bintree.Node[K, V, int]) {
	if n.Right == nil {
		return n.Left, n
	}
	n.Right, removed = deleteMax(n.Right)
	return rebalance(n), removed
}
