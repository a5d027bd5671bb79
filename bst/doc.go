// Package bst implements an unbalanced binary search tree. The shape
// of the tree depends on insertion order, so a sorted sequence of
// inserts degrades it to a list. Every mutation is iterative, so a
// degenerate tree costs time but not stack.
package bst
