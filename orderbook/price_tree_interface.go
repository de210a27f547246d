package orderbook

import (
	"iter"

	"book-pricer/domain"
)

// LevelIndex owns every price level of one book side
// Implementations: dense array, unbalanced BST, red-black map, B-tree, hash list.
// At most one level exists per price and no empty level is ever yielded.
type LevelIndex interface {
	// Upsert adds the order to the level at its price, creating the level if absent
	Upsert(order *domain.Order) error

	// Reduce decrements an order at price and returns the level's new volume
	// The level is removed from the index once its volume reaches zero.
	Reduce(price int64, orderID string, amount int64) (int64, error)

	// Level returns the level at price, nil if absent
	Level(price int64) *PriceLevel

	// Levels yields non-empty levels from best to worst price
	// The sequence is lazy and restartable; stopping early costs only the levels visited.
	// The index must not be mutated while a sequence is being consumed.
	Levels() iter.Seq[*PriceLevel]

	// Len returns the number of price levels
	Len() int
}

// isBetterPrice returns true if price1 is better than price2 for the side
func isBetterPrice(side domain.Side, price1, price2 int64) bool {
	if side == domain.SideBid {
		return price1 > price2 // For bids, higher is better
	}
	return price1 < price2 // For asks, lower is better
}

// comparatorFor orders keys best-first for the side
func comparatorFor(side domain.Side) func(a, b int64) int {
	if side == domain.SideBid {
		// bids: high to low
		return func(a, b int64) int {
			if a > b {
				return -1
			} else if a < b {
				return 1
			}
			return 0
		}
	}
	// asks: low to high
	return func(a, b int64) int {
		if a < b {
			return -1
		} else if a > b {
			return 1
		}
		return 0
	}
}
