package avl

import (
	"bytes"
	"fmt"
	"math"
	"math/rand"
	"strings"
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

func TestRotations(t *testing.T) {
	tests := []struct {
		name string
		keys []int
	}{
		{"left", []int{1, 2, 3}},
		{"right", []int{3, 2, 1}},
		{"left-right", []int{3, 1, 2}},
		{"right-left", []int{1, 3, 2}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tree := insertAll(test.keys...)
			require.NoError(t, tree.Validate())
			assert.Equal(t, 2, tree.root.Key)
			assert.Equal(t, 1, tree.root.Left.Key)
			assert.Equal(t, 3, tree.root.Right.Key)
			assert.Equal(t, 2, tree.Height())
			assert.Equal(t, 1, tree.root.Left.Meta)
		})
	}
}

func TestDeletePromotesPredecessor(t *testing.T) {
	tree := insertAll(10, 5, 15, 7)
	v, err := tree.Delete(10)
	require.NoError(t, err)
	assert.Equal(t, "10", v)
	assert.Equal(t, 7, tree.root.Key)
	assert.Equal(t, "7", tree.root.Value)
	assert.Equal(t, 5, tree.root.Left.Key)
	assert.Equal(t, 15, tree.root.Right.Key)
	require.NoError(t, tree.Validate())
}

func TestDeleteRebalances(t *testing.T) {
	tree := insertAll(2, 1, 3, 4)
	_, err := tree.Delete(1)
	require.NoError(t, err)
	assert.Equal(t, 3, tree.root.Key)
	assert.Equal(t, 2, tree.Height())
	require.NoError(t, tree.Validate())
}

func TestSequentialInsertStaysShallow(t *testing.T) {
	tree := Empty[int, int]()
	for i := range 1 << 12 {
		tree.Insert(i, i)
	}
	require.NoError(t, tree.Validate())
	assert.Equal(t, 13, tree.Height())
}

func TestInsertOverwrites(t *testing.T) {
	tree := New(1, "one")
	tree.Insert(2, "two")
	before := tree.Height()
	assert.False(t, tree.Insert(1, "uno"))
	v, _ := tree.Search(1)
	assert.Equal(t, "uno", v)
	assert.Equal(t, 2, tree.Len())
	assert.Equal(t, before, tree.Height())
}

func TestDeleteMissing(t *testing.T) {
	tree := Empty[int, string]()
	_, err := tree.Delete(1)
	assert.ErrorIs(t, err, ordered.ErrNotFound)

	tree = insertAll(1, 2, 3)
	_, err = tree.Delete(4)
	assert.ErrorIs(t, err, ordered.ErrNotFound)
	assert.Equal(t, 3, tree.Len())
	require.NoError(t, tree.Validate())
}

func TestDeleteMinMax(t *testing.T) {
	tree := Empty[int, string]()
	_, _, err := tree.DeleteMin()
	assert.ErrorIs(t, err, ordered.ErrEmptyTree)
	_, _, err = tree.DeleteMax()
	assert.ErrorIs(t, err, ordered.ErrEmptyTree)

	tree = insertAll(5, 3, 8, 1, 4, 7, 9, 2, 6)
	for want := 1; want <= 4; want++ {
		k, v, err := tree.DeleteMin()
		require.NoError(t, err)
		assert.Equal(t, want, k)
		assert.Equal(t, fmt.Sprint(want), v)
		require.NoError(t, tree.Validate())
	}
	for want := 9; want >= 7; want-- {
		k, _, err := tree.DeleteMax()
		require.NoError(t, err)
		assert.Equal(t, want, k)
		require.NoError(t, tree.Validate())
	}
	assert.Equal(t, "{ [5 5] [6 6] }", tree.String())
}

func TestRandomDeletes(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	keys := r.Perm(200)
	tree := insertAll(keys...)
	r.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	for i, k := range keys {
		_, err := tree.Delete(k)
		require.NoError(t, err)
		require.NoError(t, tree.Validate(), "after deleting %d", k)
		assert.Equal(t, len(keys)-i-1, tree.Len())
	}
	assert.Zero(t, tree.Height())
}

func TestIteration(t *testing.T) {
	tree := insertAll(4, 2, 6, 1, 3, 5, 7)
	it := tree.Iterator()
	var keys []int
	for it.HasNext() {
		k, _ := it.Next()
		keys = append(keys, k)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, keys)

	count := 0
	for range tree.All() {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)

	assert.PanicsWithValue(t, ordered.ErrModified, func() {
		it := tree.Iterator()
		it.Next()
		_, _ = tree.Delete(4)
		it.Next()
	})
}

func TestEqualAcrossVariants(t *testing.T) {
	a := insertAll(1, 2, 3)
	b := insertAll(3, 1, 2)
	assert.True(t, a.Equal(b))
	_, _ = b.Delete(3)
	assert.False(t, a.Equal(b))
}

func TestDotdump(t *testing.T) {
	tree := insertAll(1, 2, 3)
	var buf bytes.Buffer
	require.NoError(t, tree.Dotdump(&buf))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph avl {"))
	assert.Contains(t, out, `n0 [label="<l>|2|<r>", xlabel="h=2"];`)
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
					continue
				}
				tree.Insert(key, op)
				ref.Put(key, op)
			}
			if tree.Len() != ref.Size() {
				return false
			}
			for _, k := range ref.Keys() {
				want, _ := ref.Get(k)
				got, ok := tree.Search(k.(int))
				if !ok || got != want.(int) {
					return false
				}
			}
			return tree.Validate() == nil
		},
		gen.SliceOf(gen.IntRange(0, 255)),
	))
	properties.TestingRun(t)
}

func TestProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)
	properties.Property("height stays logarithmic", prop.ForAll(
		func(keys []int) bool {
			tree := Empty[int, int]()
			for _, k := range keys {
				tree.Insert(k, k)
			}
			bound := 1.45 * math.Log2(float64(tree.Len()+2))
			return float64(tree.Height()) <= bound && tree.Validate() == nil
		},
		gen.SliceOf(gen.Int()),
	))
	properties.Property("iteration is sorted", prop.ForAll(
		func(keys []int) bool {
			tree := Empty[int, int]()
			for _, k := range keys {
				tree.Insert(k, k)
			}
			first := true
			prev := 0
			sorted := true
			tree.Range(func(k, _ int) bool {
				if !first && prev >= k {
					sorted = false
				}
				first, prev = false, k
				return sorted
			})
			return sorted
		},
		gen.SliceOf(gen.Int()),
	))
	properties.Property("Delete removes the key", prop.ForAll(
		func(keys []int, k int) bool {
			tree := Empty[int, int]()
			for _, key := range keys {
				tree.Insert(key, key)
			}
			tree.Insert(k, k)
			n := tree.Len()
			if _, err := tree.Delete(k); err != nil {
				return false
			}
			return !tree.Contains(k) && tree.Len() == n-1 && tree.Validate() == nil
		},
		gen.SliceOf(gen.Int()),
		gen.Int(),
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

func BenchmarkSearch(b *testing.B) {
	tree := Empty[int, int]()
	for i := range 1 << 16 {
		tree.Insert(i, i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Search(i & (1<<16 - 1))
	}
}
