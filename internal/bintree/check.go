package bintree

import "fmt"

// CheckOrder verifies that an in-order walk of root yields strictly
// ascending keys and returns the number of nodes visited.
func CheckOrder[K, V, M any](root *Node[K, V, M], cmp func(k1, k2 K) int) (int, error) {
	var (
		stack []*Node[K, V, M]
		prev  *Node[K, V, M]
		count int
	)
	n := root
	for n != nil || len(stack) > 0 {
		for n != nil {
			stack = append(stack, n)
			n = n.Left
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if prev != nil && cmp(prev.Key, n.Key) >= 0 {
			return count, fmt.Errorf("keys out of order: %v is followed by %v", prev.Key, n.Key)
		}
		count++
		prev = n
		n = n.Right
	}
	return count, nil
}
