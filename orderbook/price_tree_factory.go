package orderbook

import (
	"fmt"
	"strings"

	"book-pricer/domain"

	"github.com/pkg/errors"
)

// StoreType selects the LevelIndex implementation
type StoreType int

const (
	// MapStore red-black tree (recommended default)
	// O(log n) everything, no sparsity or balance concerns
	MapStore StoreType = iota

	// ArrayStore dense slice indexed by price
	// O(1) upsert/lookup; traversal cost grows with the spread of prices
	ArrayStore

	// TreeStore unbalanced binary search tree
	// O(depth) operations; depth is O(n) when prices arrive sorted
	TreeStore

	// BTreeStore B-tree of degree 32
	BTreeStore

	// ListStore hash map + best-first linked list of levels
	// O(1) best level and level removal; a new level walks from the best price
	ListStore
)

var storeNames = map[StoreType]string{
	MapStore:   "rbtree",
	ArrayStore: "array",
	TreeStore:  "bst",
	BTreeStore: "btree",
	ListStore:  "list",
}

// StoreTypes lists every strategy, default first
var StoreTypes = []StoreType{MapStore, ArrayStore, TreeStore, BTreeStore, ListStore}

func (t StoreType) String() string {
	if name, ok := storeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("StoreType(%d)", int(t))
}

// ParseStoreType maps a name such as "rbtree" to its StoreType
func ParseStoreType(name string) (StoreType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range storeNames {
		if n == name {
			return t, nil
		}
	}
	names := make([]string, len(StoreTypes))
	for i, t := range StoreTypes {
		names[i] = t.String()
	}
	return MapStore, errors.Errorf("unknown store %q (want one of %s)", name, strings.Join(names, ", "))
}

// NewLevelIndex creates the index for one side of the book
func NewLevelIndex(storeType StoreType, side domain.Side) LevelIndex {
	switch storeType {
	case ArrayStore:
		return NewArrayIndex(side)
	case TreeStore:
		return NewBSTIndex(side)
	case BTreeStore:
		return NewBTreeIndex(side)
	case ListStore:
		return NewListIndex(side)
	case MapStore:
		fallthrough
	default:
		return NewMapIndex(side)
	}
}
