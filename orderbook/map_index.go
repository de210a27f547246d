package orderbook

import (
	"iter"

	"book-pricer/domain"

	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"
	"github.com/pkg/errors"
)

// MapIndex stores levels in a red-black tree ordered best price first
// O(log n) upsert/reduce with no sparse-range cost and no hand-written node
// splicing. This is the default store.
type MapIndex struct {
	levels *rbt.Tree[int64, *PriceLevel] // price -> level, best first
	side   domain.Side
}

// Ensure MapIndex implements LevelIndex
var _ LevelIndex = (*MapIndex)(nil)

// NewMapIndex creates an empty red-black tree index for one side
func NewMapIndex(side domain.Side) *MapIndex {
	return &MapIndex{
		levels: rbt.NewWith[int64, *PriceLevel](comparatorFor(side)),
		side:   side,
	}
}

func (m *MapIndex) Upsert(order *domain.Order) error {
	if level, found := m.levels.Get(order.Price); found {
		return level.AddOrder(order)
	}
	level := NewPriceLevel()
	if err := level.AddOrder(order); err != nil {
		return err
	}
	m.levels.Put(order.Price, level)
	return nil
}

func (m *MapIndex) Reduce(price int64, orderID string, amount int64) (int64, error) {
	level, found := m.levels.Get(price)
	if !found {
		return 0, errors.Wrapf(domain.ErrLevelMissing, "no level at %d for order %s", price, orderID)
	}
	volume, err := level.ApplyReduction(orderID, amount)
	if err != nil {
		return volume, err
	}
	if level.IsEmpty() {
		m.levels.Remove(price)
	}
	return volume, nil
}

func (m *MapIndex) Level(price int64) *PriceLevel {
	level, _ := m.levels.Get(price)
	return level
}

// Levels iterates the tree in comparator order, which is already best first
func (m *MapIndex) Levels() iter.Seq[*PriceLevel] {
	return func(yield func(*PriceLevel) bool) {
		it := m.levels.Iterator()
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

func (m *MapIndex) Len() int {
	return m.levels.Size()
}
