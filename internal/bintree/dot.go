package bintree

import (
	"bufio"
	"fmt"
	"io"
)

// Dot writes root as a graphviz digraph. attrs, if not nil, returns
// extra attributes for a node; they are applied to the node and to the
// edge leading into it.
func Dot[K, V, M any](w io.Writer, name string, root *Node[K, V, M], attrs func(*Node[K, V, M]) string) error {
	type item struct {
		n  *Node[K, V, M]
		id int
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "digraph %s {\n", name)
	fmt.Fprintf(bw, "  node[shape=record];\n")
	if root != nil {
		nextID := 0
		stack := []item{{n: root, id: nextID}}
		for len(stack) > 0 {
			it := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			extra := ""
			if attrs != nil {
				extra = attrs(it.n)
			}
			fmt.Fprintf(bw, "  n%d [label=\"<l>|%v|<r>\"%s];\n", it.id, it.n.Key, prefixed(extra))
			for _, child := range []struct {
				port string
				n    *Node[K, V, M]
			}{{"r", it.n.Right}, {"l", it.n.Left}} {
				if child.n == nil {
					continue
				}
				nextID++
				edge := ""
				if attrs != nil {
					edge = attrs(child.n)
				}
				fmt.Fprintf(bw, "  n%d:%s -> n%d%s;\n", it.id, child.port, nextID, bracketed(edge))
				stack = append(stack, item{n: child.n, id: nextID})
			}
		}
	}
	fmt.Fprintf(bw, "}\n")
	return bw.Flush()
}

func prefixed(attrs string) string {
	if attrs == "" {
		return ""
	}
	return ", " + attrs
}

func bracketed(attrs string) string {
	if attrs == "" {
		return ""
	}
	return " [" + attrs + "]"
}
