package orderbook

import (
	"iter"
	"math"

	"book-pricer/domain"

	"github.com/pkg/errors"
)

const noFrontier = math.MaxInt64

// MaxArrayPrice bounds the slice at 2^26 slots (512 MiB of pointers, $671,088.63)
// Higher prices are rejected with ErrInvalidOrder; use another store for them.
const MaxArrayPrice int64 = 1<<26 - 1

// ArrayIndex stores levels in a slice indexed directly by price in cents
// Architecture: dense array + frontier hint
//
//   - Upsert/lookup: O(1) amortized, the slice grows to cover the highest price seen
//   - Trailing empty slots are trimmed when the top level empties
//   - frontier is the lowest price that may hold a level; it only moves down on
//     insert and only moves up when the level at it empties
//
// Weakness: a wide, sparse price range makes traversal skip many nil slots, and
// memory follows the highest price seen, so prices above MaxArrayPrice are refused.
type ArrayIndex struct {
	levels   []*PriceLevel // price -> level, nil when absent
	frontier int64
	count    int
	side     domain.Side
}

// Ensure ArrayIndex implements LevelIndex
var _ LevelIndex = (*ArrayIndex)(nil)

// NewArrayIndex creates an empty array index for one side
func NewArrayIndex(side domain.Side) *ArrayIndex {
	return &ArrayIndex{
		frontier: noFrontier,
		side:     side,
	}
}

func (a *ArrayIndex) Upsert(order *domain.Order) error {
	price := order.Price
	if price < 0 {
		return errors.Wrapf(domain.ErrInvalidOrder, "order %s: negative price %d", order.ID, price)
	}
	if price > MaxArrayPrice {
		return errors.Wrapf(domain.ErrInvalidOrder, "order %s: price %d above array store limit %d", order.ID, price, MaxArrayPrice)
	}
	if int64(len(a.levels)) <= price && price < int64(cap(a.levels)) {
		// slots past len were nil'ed by trimTail
		a.levels = a.levels[:price+1]
	} else if int64(len(a.levels)) <= price {
		grown := make([]*PriceLevel, price+1, min(max(price+1, int64(2*cap(a.levels))), MaxArrayPrice+1))
		copy(grown, a.levels)
		a.levels = grown
	}

	level := a.levels[price]
	if level == nil {
		level = NewPriceLevel()
		if err := level.AddOrder(order); err != nil {
			return err
		}
		a.levels[price] = level
		a.count++
	} else if err := level.AddOrder(order); err != nil {
		return err
	}

	if price < a.frontier {
		a.frontier = price
	}
	return nil
}

func (a *ArrayIndex) Reduce(price int64, orderID string, amount int64) (int64, error) {
	level := a.Level(price)
	if level == nil {
		return 0, errors.Wrapf(domain.ErrLevelMissing, "no level at %d for order %s", price, orderID)
	}
	volume, err := level.ApplyReduction(orderID, amount)
	if err != nil {
		return volume, err
	}
	if level.IsEmpty() {
		a.levels[price] = nil
		a.count--
		a.trimTail()
		if price == a.frontier {
			a.advanceFrontier()
		}
	}
	return volume, nil
}

func (a *ArrayIndex) Level(price int64) *PriceLevel {
	if price < 0 || price >= int64(len(a.levels)) {
		return nil
	}
	return a.levels[price]
}

// Levels walks up from the frontier for asks, down to the frontier for bids
// Empty slots are skipped even inside the frontier bounds.
func (a *ArrayIndex) Levels() iter.Seq[*PriceLevel] {
	return func(yield func(*PriceLevel) bool) {
		if a.count == 0 {
			return
		}
		top := int64(len(a.levels)) - 1
		if a.side == domain.SideAsk {
			for i := a.frontier; i <= top; i++ {
				if level := a.levels[i]; level != nil && !yield(level) {
					return
				}
			}
			return
		}
		for i := top; i >= a.frontier; i-- {
			if level := a.levels[i]; level != nil && !yield(level) {
				return
			}
		}
	}
}

func (a *ArrayIndex) Len() int {
	return a.count
}

// Frontier returns the lowest price that may hold a level, false when empty
func (a *ArrayIndex) Frontier() (int64, bool) {
	if a.frontier == noFrontier {
		return 0, false
	}
	return a.frontier, true
}

// advanceFrontier moves the frontier up to the next occupied slot
func (a *ArrayIndex) advanceFrontier() {
	for i := a.frontier; i < int64(len(a.levels)); i++ {
		if a.levels[i] != nil {
			a.frontier = i
			return
		}
	}
	a.frontier = noFrontier
}

// trimTail drops trailing empty slots so the top slot is always occupied
func (a *ArrayIndex) trimTail() {
	n := len(a.levels)
	for n > 0 && a.levels[n-1] == nil {
		n--
	}
	a.levels = a.levels[:n]
}
