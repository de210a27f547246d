package orderbook

import (
	"slices"

	"book-pricer/domain"
)

// Snapshot is an immutable copy of the book taken between events
// It shares nothing with the live book, so it can be queried from another
// goroutine while the book keeps mutating.
type Snapshot struct {
	Timestamp uint64
	bids      []*PriceLevel // best first
	asks      []*PriceLevel // best first
}

// Snapshot copies every level of both sides
func (ob *OrderBook) Snapshot() *Snapshot {
	return &Snapshot{
		Timestamp: ob.lastTimestamp,
		bids:      copyLevels(ob.bids),
		asks:      copyLevels(ob.asks),
	}
}

func copyLevels(index LevelIndex) []*PriceLevel {
	levels := make([]*PriceLevel, 0, index.Len())
	for level := range index.Levels() {
		orders := make([]*domain.Order, len(level.orders))
		for i, order := range level.orders {
			clone := *order
			orders[i] = &clone
		}
		levels = append(levels, &PriceLevel{price: level.price, volume: level.volume, orders: orders})
	}
	return levels
}

// CostToBuy prices buying targetSize from the captured asks
func (s *Snapshot) CostToBuy(targetSize int64) (int64, bool) {
	return costToFill(slices.Values(s.asks), targetSize)
}

// CostToSell prices selling targetSize into the captured bids
func (s *Snapshot) CostToSell(targetSize int64) (int64, bool) {
	return costToFill(slices.Values(s.bids), targetSize)
}

// Depth returns every captured level, best first
func (s *Snapshot) Depth() (bids, asks []Level) {
	return snapshotLevels(s.bids), snapshotLevels(s.asks)
}

func snapshotLevels(levels []*PriceLevel) []Level {
	out := make([]Level, len(levels))
	for i, level := range levels {
		out[i] = Level{Price: level.price, Quantity: level.volume, Orders: len(level.orders)}
	}
	return out
}
