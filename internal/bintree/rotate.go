package bintree

import "jsouthworth.net/go/ordered"

// Fixer re-derives balancing metadata after a rotation. demoted is the
// former subtree root, now a child of promoted. The rotation itself
// knows nothing about heights or colours.
type Fixer[K, V, M any] interface {
	Rotated(demoted, promoted *Node[K, V, M])
}

// RotateLeft makes n.Right the root of the subtree and returns it.
//
//	  n              x
//	 / \            / \
//	a   x    =>    n   c
//	   / \        / \
//	  b   c      a   b
func RotateLeft[K, V, M any, F Fixer[K, V, M]](n *Node[K, V, M], fix F) *Node[K, V, M] {
	x := n.Right
	if x == nil {
		panic(ordered.InvariantError{Op: "rotateLeft", Msg: "missing right child"})
	}
	n.Right = x.Left
	x.Left = n
	fix.Rotated(n, x)
	return x
}

// RotateRight is the mirror image of RotateLeft; n.Left becomes the
// root of the subtree.
func RotateRight[K, V, M any, F Fixer[K, V, M]](n *Node[K, V, M], fix F) *Node[K, V, M] {
	x := n.Left
	if x == nil {
		panic(ordered.InvariantError{Op: "rotateRight", Msg: "missing left child"})
	}
	n.Left = x.Right
	x.Right = n
	fix.Rotated(n, x)
	return x
}
