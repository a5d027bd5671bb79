// Package bintree implements the parts of a binary search tree that do
// not depend on a balancing strategy: the node cell, rotations, search,
// iteration and structural checks. The tree packages supply their own
// per-node metadata and rebalancing on top of it.
package bintree

// Node is a single tree cell. Left and Right are owned exclusively by
// the node; no node is ever reachable through two links. Meta carries
// the variant's balancing state (height, colour or nothing).
type Node[K, V, M any] struct {
	Key   K
	Value V
	Left  *Node[K, V, M]
	Right *Node[K, V, M]
	Meta  M
}

// Leaf reports whether n has no children.
func (n *Node[K, V, M]) Leaf() bool {
	return n.Left == nil && n.Right == nil
}
