package llrb

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	godsmap "github.com/emirpasic/gods/maps/treemap"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsouthworth.net/go/ordered"
)

func insertAll(keys ...int) *Tree[int, string] {
	t := Empty[int, string]()
	for _, k := range keys {
		t.Insert(k, fmt.Sprint(k))
	}
	return t
}

func TestInsertSplitsFourNode(t *testing.T) {
	tree := insertAll(1, 2, 3)
	require.NoError(t, tree.Validate())
	assert.Equal(t, 2, tree.root.Key)
	assert.Equal(t, black, tree.root.Meta)
	assert.Equal(t, black, tree.root.Left.Meta)
	assert.Equal(t, black, tree.root.Right.Meta)
	assert.Equal(t, 2, tree.BlackHeight())
}

func TestInsertLeansLeft(t *testing.T) {
	tree := insertAll(1, 2)
	assert.Equal(t, 2, tree.root.Key)
	assert.Equal(t, red, tree.root.Left.Meta)
	assert.Nil(t, tree.root.Right)
	require.NoError(t, tree.Validate())
}

func TestFlipColorsRejectsMismatchedChildren(t *testing.T) {
	n := &node[int, int]{
		Key:   2,
		Meta:  black,
		Left:  &node[int, int]{Key: 1, Meta: red},
		Right: &node[int, int]{Key: 3, Meta: black},
	}
	assert.Panics(t, func() { flipColors(n) })
	assert.Panics(t, func() { flipColors(&node[int, int]{Key: 1}) })
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "R", red.String())
	assert.Equal(t, "B", black.String())
	assert.Equal(t, black, red.flip())
}

func TestRandomDeletes(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	keys := r.Perm(100)
	tree := insertAll(keys...)
	require.NoError(t, tree.Validate())
	r.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	for i, k := range keys {
		v, err := tree.Delete(k)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprint(k), v)
		require.NoError(t, tree.Validate(), "after deleting %d", k)
		assert.False(t, tree.Contains(k))
		assert.Equal(t, len(keys)-i-1, tree.Len())
	}
	assert.Nil(t, tree.root)
}

func TestDeleteMissingLeavesTreeUntouched(t *testing.T) {
	tree := Empty[int, string]()
	_, err := tree.Delete(3)
	assert.ErrorIs(t, err, ordered.ErrNotFound)

	tree = insertAll(1, 2, 3, 4, 5)
	var before bytes.Buffer
	require.NoError(t, tree.Dotdump(&before))
	_, err = tree.Delete(42)
	assert.ErrorIs(t, err, ordered.ErrNotFound)
	var after bytes.Buffer
	require.NoError(t, tree.Dotdump(&after))
	assert.Equal(t, before.String(), after.String())
	require.NoError(t, tree.Validate())
}

func TestDeleteMinMax(t *testing.T) {
	tree := Empty[int, string]()
	_, _, err := tree.DeleteMin()
	assert.ErrorIs(t, err, ordered.ErrEmptyTree)
	_, _, err = tree.DeleteMax()
	assert.ErrorIs(t, err, ordered.ErrEmptyTree)

	tree = insertAll(8, 4, 12, 2, 6, 10, 14, 1, 3, 5, 7, 9, 11, 13, 15)
	for i := 1; i <= 15; i++ {
		var (
			k   int
			err error
		)
		if i%2 == 1 {
			k, _, err = tree.DeleteMin()
			require.NoError(t, err)
			assert.Equal(t, (i+1)/2, k)
		} else {
			k, _, err = tree.DeleteMax()
			require.NoError(t, err)
			assert.Equal(t, 16-i/2, k)
		}
		require.NoError(t, tree.Validate())
	}
	assert.Zero(t, tree.Len())
}

func TestInsertOverwrites(t *testing.T) {
	tree := insertAll(1, 2, 3)
	assert.False(t, tree.Insert(2, "two"))
	assert.Equal(t, 3, tree.Len())
	assert.Equal(t, "{ [1 1] [2 two] [3 3] }", tree.String())
}

func TestDotdumpColorsRedLinks(t *testing.T) {
	tree := insertAll(2, 1)
	var buf bytes.Buffer
	require.NoError(t, tree.Dotdump(&buf))
	assert.Equal(t, "digraph llrb {\n"+
		"  node[shape=record];\n"+
		"  n0 [label=\"<l>|2|<r>\"];\n"+
		"  n0:l -> n1 [color=red];\n"+
		"  n1 [label=\"<l>|1|<r>\", color=red];\n"+
		"}\n", buf.String())
}

func TestIterationFailsFast(t *testing.T) {
	tree := insertAll(1, 2, 3)
	assert.PanicsWithValue(t, ordered.ErrModified, func() {
		for k := range tree.All() {
			tree.Insert(k+100, "x")
		}
	})
}

func TestEqual(t *testing.T) {
	assert.True(t, insertAll(1, 2, 3).Equal(insertAll(3, 2, 1)))
	assert.False(t, insertAll(1, 2, 3).Equal(insertAll(1, 2)))
	assert.False(t, insertAll(1).Equal(1))
}

func TestMatchesReferenceMap(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)
	properties.Property("agrees with gods treemap", prop.ForAll(
		func(ops []int) bool {
			tree := Empty[int, int]()
			ref := godsmap.NewWithIntComparator()
			for _, op := range ops {
				key := op / 4
				if op%4 == 3 {
					_, err := tree.Delete(key)
					_, present := ref.Get(key)
					ref.Remove(key)
					if present != (err == nil) {
						return false
					}
					if tree.Validate() != nil {
						return false
					}
					continue
				}
				tree.Insert(key, op)
				ref.Put(key, op)
			}
			if tree.Len() != ref.Size() {
				return false
			}
			keys := ref.Keys()
			i := 0
			ok := true
			tree.Range(func(k, v int) bool {
				want, _ := ref.Get(k)
				ok = keys[i].(int) == k && want.(int) == v
				i++
				return ok
			})
			return ok
		},
		gen.SliceOf(gen.IntRange(0, 255)),
	))
	properties.TestingRun(t)
}

func TestProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)
	properties.Property("height is at most twice the black height", prop.ForAll(
		func(keys []int) bool {
			tree := Empty[int, int]()
			for _, k := range keys {
				tree.Insert(k, k)
			}
			bound := 2 * math.Log2(float64(tree.Len()+1))
			return tree.Validate() == nil &&
				tree.Height() <= 2*tree.BlackHeight() &&
				float64(tree.Height()) <= bound
		},
		gen.SliceOf(gen.Int()),
	))
	properties.Property("deleting 100 keys keeps every invariant", prop.ForAll(
		func(keys []int) bool {
			tree := Empty[int, int]()
			for _, k := range keys {
				tree.Insert(k, k)
			}
			for _, k := range keys {
				_, err := tree.Delete(k)
				if tree.Contains(k) || tree.Validate() != nil {
					return false
				}
				// a repeated key was removed on its first occurrence
				if err != nil && !errors.Is(err, ordered.ErrNotFound) {
					return false
				}
			}
			return tree.Len() == 0
		},
		gen.SliceOfN(100, gen.Int()),
	))
	properties.Property("DeleteMin drains in order", prop.ForAll(
		func(keys []int) bool {
			tree := Empty[int, int]()
			for _, k := range keys {
				tree.Insert(k, k)
			}
			first := true
			prev := 0
			for tree.Len() > 0 {
				k, _, err := tree.DeleteMin()
				if err != nil || tree.Validate() != nil {
					return false
				}
				if !first && prev >= k {
					return false
				}
				first, prev = false, k
			}
			return true
		},
		gen.SliceOf(gen.Int()),
	))
	properties.TestingRun(t)
}

func BenchmarkInsert(b *testing.B) {
	b.ReportAllocs()
	tree := Empty[int, int]()
	for i := 0; i < b.N; i++ {
		tree.Insert(i, i)
	}
}
