package bintree

import (
	"fmt"
	"iter"
	"strings"

	"jsouthworth.net/go/dyn"
	"jsouthworth.net/go/ordered"
)

// Equal reports whether two entry sequences of the given lengths hold
// the same keys, per cmp, with dyn.Equal values.
func Equal[K, V any](cmp func(k1, k2 K) int, la int, a iter.Seq2[K, V], lb int, b iter.Seq2[K, V]) bool {
	if la != lb {
		return false
	}
	next, stop := iter.Pull2(b)
	defer stop()
	for k1, v1 := range a {
		k2, v2, ok := next()
		if !ok || cmp(k1, k2) != 0 || !dyn.Equal(v1, v2) {
			return false
		}
	}
	return true
}

// Format renders entries the way the collection String methods do.
func Format[K, V any](entries iter.Seq2[K, V]) string {
	var b strings.Builder
	fmt.Fprint(&b, "{ ")
	for k, v := range entries {
		fmt.Fprintf(&b, "%s ", ordered.Entry[K, V]{Key: k, Value: v})
	}
	fmt.Fprint(&b, "}")
	return b.String()
}
