// Package llrb implements a left-leaning red-black tree: a binary
// encoding of a 2-3 tree in which a 3-node is a black node with a red
// left child. Red links never lean right, no path has two red links in
// a row and every path from the root to a missing child crosses the
// same number of black nodes.
//
// Insertion and deletion follow Sedgewick's algorithms. Deletion
// pushes a red link down the search path so that the node finally
// removed is never a lone black leaf.
package llrb
