package orderbook

import (
	"iter"

	"book-pricer/domain"

	"github.com/pkg/errors"
)

// BSTIndex stores levels in an unbalanced binary search tree
// Asks walk the tree ascending, bids walk the mirror image (right subtree first).
// Worst-case depth is O(n) when prices arrive in sorted order.
type BSTIndex struct {
	tree *BinarySearchTree[*PriceLevel]
	side domain.Side
}

// Ensure BSTIndex implements LevelIndex
var _ LevelIndex = (*BSTIndex)(nil)

// NewBSTIndex creates an empty tree index for one side
func NewBSTIndex(side domain.Side) *BSTIndex {
	return &BSTIndex{
		tree: NewBinarySearchTree[*PriceLevel](),
		side: side,
	}
}

func (b *BSTIndex) Upsert(order *domain.Order) error {
	if level, found := b.tree.Search(order.Price); found {
		return level.AddOrder(order)
	}
	level := NewPriceLevel()
	if err := level.AddOrder(order); err != nil {
		return err
	}
	b.tree.Insert(order.Price, level)
	return nil
}

func (b *BSTIndex) Reduce(price int64, orderID string, amount int64) (int64, error) {
	level, found := b.tree.Search(price)
	if !found {
		return 0, errors.Wrapf(domain.ErrLevelMissing, "no level at %d for order %s", price, orderID)
	}
	volume, err := level.ApplyReduction(orderID, amount)
	if err != nil {
		return volume, err
	}
	if level.IsEmpty() && !b.tree.Delete(price) {
		return volume, errors.Wrapf(domain.ErrLevelMissing, "level %d vanished during delete", price)
	}
	return volume, nil
}

func (b *BSTIndex) Level(price int64) *PriceLevel {
	level, _ := b.tree.Search(price)
	return level
}

func (b *BSTIndex) Levels() iter.Seq[*PriceLevel] {
	descending := b.side == domain.SideBid
	return func(yield func(*PriceLevel) bool) {
		b.tree.InOrder(descending, func(_ int64, level *PriceLevel) bool {
			return yield(level)
		})
	}
}

func (b *BSTIndex) Len() int {
	return b.tree.Len()
}

// Tree exposes the underlying tree for validation and diagnostics
func (b *BSTIndex) Tree() *BinarySearchTree[*PriceLevel] {
	return b.tree
}
