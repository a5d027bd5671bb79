// Package avl implements a height balanced binary search tree. After
// every insert and delete the heights of the two subtrees of any node
// differ by at most one, so lookups are O(log n) regardless of the
// order keys arrive in.
//
// A node with two children is deleted by promoting its in-order
// predecessor, the largest key of its left subtree.
package avl
