package bintree

import (
	"jsouthworth.net/go/ordered"
	"jsouthworth.net/go/seq"
)

type sequence[K, V, M any] struct {
	list seq.Sequence
}

// Sequence returns a lazy in-order sequence of ordered.Entry values
// rooted at root, or nil for an empty tree. The sequence reads live
// node links and is only valid until the tree is next mutated.
func Sequence[K, V, M any](root *Node[K, V, M]) seq.Sequence {
	if root == nil {
		return nil
	}
	return &sequence[K, V, M]{
		list: sequencePush(root, nil),
	}
}

func sequencePush[K, V, M any](n *Node[K, V, M], s seq.Sequence) seq.Sequence {
	list := s
	for n != nil {
		list = seq.Cons(n, list)
		n = n.Left
	}
	return list
}

func (s *sequence[K, V, M]) First() interface{} {
	n := s.list.First().(*Node[K, V, M])
	return ordered.Entry[K, V]{Key: n.Key, Value: n.Value}
}

func (s *sequence[K, V, M]) Next() seq.Sequence {
	n := s.list.First().(*Node[K, V, M])
	next := sequencePush(n.Right, s.list.Next())
	if next == nil {
		return nil
	}
	return &sequence[K, V, M]{list: next}
}

func (s *sequence[K, V, M]) String() string {
	return seq.ConvertToString(s)
}
