package orderbook

import (
	"iter"

	"book-pricer/domain"

	"github.com/google/btree"
	"github.com/pkg/errors"
)

const priceLevelsBTreeDegree = 32

type btreeEntry struct {
	price int64
	level *PriceLevel
}

// BTreeIndex stores levels in a B-tree ordered best price first
// Same asymptotics as MapIndex with wider, cache-friendlier nodes.
type BTreeIndex struct {
	levels *btree.BTreeG[btreeEntry]
	side   domain.Side
}

// Ensure BTreeIndex implements LevelIndex
var _ LevelIndex = (*BTreeIndex)(nil)

// NewBTreeIndex creates an empty B-tree index for one side
func NewBTreeIndex(side domain.Side) *BTreeIndex {
	less := func(a, b btreeEntry) bool {
		return isBetterPrice(side, a.price, b.price)
	}
	return &BTreeIndex{
		levels: btree.NewG(priceLevelsBTreeDegree, less),
		side:   side,
	}
}

func (b *BTreeIndex) Upsert(order *domain.Order) error {
	if entry, found := b.levels.Get(btreeEntry{price: order.Price}); found {
		return entry.level.AddOrder(order)
	}
	level := NewPriceLevel()
	if err := level.AddOrder(order); err != nil {
		return err
	}
	b.levels.ReplaceOrInsert(btreeEntry{price: order.Price, level: level})
	return nil
}

func (b *BTreeIndex) Reduce(price int64, orderID string, amount int64) (int64, error) {
	entry, found := b.levels.Get(btreeEntry{price: price})
	if !found {
		return 0, errors.Wrapf(domain.ErrLevelMissing, "no level at %d for order %s", price, orderID)
	}
	volume, err := entry.level.ApplyReduction(orderID, amount)
	if err != nil {
		return volume, err
	}
	if entry.level.IsEmpty() {
		b.levels.Delete(entry)
	}
	return volume, nil
}

func (b *BTreeIndex) Level(price int64) *PriceLevel {
	entry, _ := b.levels.Get(btreeEntry{price: price})
	return entry.level
}

func (b *BTreeIndex) Levels() iter.Seq[*PriceLevel] {
	return func(yield func(*PriceLevel) bool) {
		b.levels.Ascend(func(entry btreeEntry) bool {
			return yield(entry.level)
		})
	}
}

func (b *BTreeIndex) Len() int {
	return b.levels.Len()
}
