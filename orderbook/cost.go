package orderbook

import (
	"fmt"
	"iter"
	"math"
	"math/bits"
)

// costToFill walks levels best first and prices targetSize against them
// Whole levels are consumed while the remaining target exceeds them; the level
// that covers the rest is consumed partially and the walk stops there.
// Returns false when the levels run out first. A notional that does not fit in
// int64 panics rather than wrapping.
func costToFill(levels iter.Seq[*PriceLevel], targetSize int64) (int64, bool) {
	if targetSize <= 0 {
		panic(fmt.Sprintf("orderbook: cost walk with non-positive target size %d", targetSize))
	}

	var cost int64
	for level := range levels {
		price, _ := level.Price()
		volume, ok := level.Volume()
		if !ok {
			panic(fmt.Sprintf("orderbook: empty level at %d yielded by index", price))
		}
		if targetSize > volume {
			cost = addNotional(cost, price, volume)
			targetSize -= volume
			continue
		}
		cost = addNotional(cost, price, targetSize)
		return cost, true
	}
	return 0, false
}

// addNotional returns cost + price*size, panicking on int64 overflow
func addNotional(cost, price, size int64) int64 {
	hi, lo := bits.Mul64(uint64(price), uint64(size))
	if hi != 0 || lo > math.MaxInt64 || int64(lo) > math.MaxInt64-cost {
		panic(fmt.Sprintf("orderbook: notional overflow adding %d x %d to %d", size, price, cost))
	}
	return cost + int64(lo)
}
