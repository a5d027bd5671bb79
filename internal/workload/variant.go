package workload

import (
	"errors"
	"fmt"
	"io"

	"jsouthworth.net/go/ordered"
	"jsouthworth.net/go/ordered/avl"
	"jsouthworth.net/go/ordered/bst"
	"jsouthworth.net/go/ordered/llrb"
)

// ErrUnknownVariant is returned by NewMap for names it does not know.
var ErrUnknownVariant = errors.New("unknown tree variant")

// Dotter is implemented by every variant.
type Dotter interface {
	Dotdump(w io.Writer) error
}

// NewMap returns an empty tree of the named variant.
func NewMap(variant string) (ordered.Map[int, string], error) {
	switch variant {
	case "bst":
		return bst.Empty[int, string](), nil
	case "avl":
		return avl.Empty[int, string](), nil
	case "llrb":
		return llrb.Empty[int, string](), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
}
