package orderbook

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func treeKeys(tree *BinarySearchTree[string], descending bool) []int64 {
	var keys []int64
	for key := range tree.All(descending) {
		keys = append(keys, key)
	}
	return keys
}

func TestBST_InsertSearchDelete(t *testing.T) {
	tree := NewBinarySearchTree[string]()
	for _, key := range []int64{50, 30, 70, 20, 40, 60, 80} {
		tree.Insert(key, "v")
	}
	require.NoError(t, tree.Validate())
	assert.Equal(t, 7, tree.Len())
	assert.Equal(t, 3, tree.Height())

	_, found := tree.Search(60)
	assert.True(t, found)
	_, found = tree.Search(65)
	assert.False(t, found)

	// leaf, one child, two children, root
	assert.True(t, tree.Delete(20))
	assert.True(t, tree.Delete(30))
	assert.True(t, tree.Delete(70))
	assert.True(t, tree.Delete(50))
	assert.False(t, tree.Delete(50))

	require.NoError(t, tree.Validate())
	assert.Equal(t, []int64{40, 60, 80}, treeKeys(tree, false))
	assert.Equal(t, []int64{80, 60, 40}, treeKeys(tree, true))
}

func TestBST_TwoChildDeleteCarriesValue(t *testing.T) {
	tree := NewBinarySearchTree[string]()
	tree.Insert(50, "fifty")
	tree.Insert(30, "thirty")
	tree.Insert(70, "seventy")
	tree.Insert(60, "sixty")
	tree.Insert(65, "sixty-five")

	require.True(t, tree.Delete(50))
	value, found := tree.Search(60)
	require.True(t, found)
	assert.Equal(t, "sixty", value)
	value, _ = tree.Search(65)
	assert.Equal(t, "sixty-five", value)
	require.NoError(t, tree.Validate())
}

func TestBST_DuplicateInsertPanics(t *testing.T) {
	tree := NewBinarySearchTree[string]()
	tree.Insert(1, "a")
	assert.Panics(t, func() { tree.Insert(1, "b") })
}

func TestBST_SortedInsertDegenerates(t *testing.T) {
	tree := NewBinarySearchTree[string]()
	for key := int64(1); key <= 100; key++ {
		tree.Insert(key, "")
	}
	assert.Equal(t, 100, tree.Height())
	require.NoError(t, tree.Validate())
}

func TestBST_RandomAgainstSortedSlice(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tree := NewBinarySearchTree[string]()
	var want []int64

	for i := 0; i < 5000; i++ {
		key := rng.Int63n(500)
		pos, present := slices.BinarySearch(want, key)
		if present {
			require.True(t, tree.Delete(key))
			want = slices.Delete(want, pos, pos+1)
		} else {
			tree.Insert(key, "")
			want = slices.Insert(want, pos, key)
		}
		if i%250 == 0 {
			require.NoError(t, tree.Validate())
			require.Equal(t, want, treeKeys(tree, false))
		}
	}
	require.NoError(t, tree.Validate())
	require.Equal(t, len(want), tree.Len())
	require.Equal(t, want, treeKeys(tree, false))
}

func TestBST_EarlyExit(t *testing.T) {
	tree := NewBinarySearchTree[string]()
	for _, key := range []int64{5, 3, 8, 1, 4, 7, 9} {
		tree.Insert(key, "")
	}
	var visited []int64
	completed := tree.InOrder(true, func(key int64, _ string) bool {
		visited = append(visited, key)
		return len(visited) < 3
	})
	assert.False(t, completed)
	assert.Equal(t, []int64{9, 8, 7}, visited)
}

func TestBST_Render(t *testing.T) {
	tree := NewBinarySearchTree[string]()
	assert.Equal(t, "", tree.Render())

	tree.Insert(50, "")
	tree.Insert(30, "")
	tree.Insert(70, "")
	assert.Equal(t, "      /70\n 50\n      \\30\n", tree.Render())
}

func TestBST_ReusesFreedSlots(t *testing.T) {
	tree := NewBinarySearchTree[string]()
	for key := int64(0); key < 10; key++ {
		tree.Insert(key, "")
	}
	for key := int64(0); key < 10; key++ {
		tree.Delete(key)
	}
	for key := int64(10); key < 20; key++ {
		tree.Insert(key, "")
	}
	assert.Len(t, tree.nodes, 10)
	require.NoError(t, tree.Validate())
}
