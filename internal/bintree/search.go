package bintree

// Find descends from root looking for key.
func Find[K, V, M any](root *Node[K, V, M], key K, cmp func(k1, k2 K) int) (*Node[K, V, M], bool) {
	n := root
	for n != nil {
		c := cmp(key, n.Key)
		switch {
		case c < 0:
			n = n.Left
		case c > 0:
			n = n.Right
		default:
			return n, true
		}
	}
	return nil, false
}

// Min returns the leftmost node of the subtree, or nil if it is empty.
func Min[K, V, M any](n *Node[K, V, M]) *Node[K, V, M] {
	if n == nil {
		return nil
	}
	for n.Left != nil {
		n = n.Left
	}
	return n
}

// Max returns the rightmost node of the subtree, or nil if it is empty.
func Max[K, V, M any](n *Node[K, V, M]) *Node[K, V, M] {
	if n == nil {
		return nil
	}
	for n.Right != nil {
		n = n.Right
	}
	return n
}

// Height returns the number of nodes on the longest root to leaf path.
// An empty tree has height 0. The walk is breadth first so degenerate
// trees do not grow the goroutine stack.
func Height[K, V, M any](root *Node[K, V, M]) int {
	if root == nil {
		return 0
	}
	height := 0
	level := []*Node[K, V, M]{root}
	var next []*Node[K, V, M]
	for len(level) > 0 {
		height++
		next = next[:0]
		for _, n := range level {
			if n.Left != nil {
				next = append(next, n.Left)
			}
			if n.Right != nil {
				next = append(next, n.Right)
			}
		}
		level, next = next, level
	}
	return height
}
