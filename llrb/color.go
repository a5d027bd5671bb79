package llrb

import (
	"jsouthworth.net/go/ordered"
	"jsouthworth.net/go/ordered/internal/bintree"
)

const (
	red color = iota
	black
)

type color uint8

func (c color) String() string {
	switch c {
	case red:
		return "R"
	case black:
		return "B"
	default:
		panic(ordered.InvariantError{Op: "color", Msg: "invalid color"})
	}
}

func (c color) flip() color {
	if c == red {
		return black
	}
	return red
}

type node[K, V any] = bintree.Node[K, V, color]
