package orderbook

import (
	"testing"

	"book-pricer/domain"

	"github.com/stretchr/testify/require"
)

func addEvent(ts uint64, id string, side domain.Side, price, size int64) *domain.Event {
	return &domain.Event{Timestamp: ts, Kind: domain.EventAdd, OrderID: id, Side: side, Price: price, Size: size}
}

func reduceEvent(ts uint64, id string, size int64) *domain.Event {
	return &domain.Event{Timestamp: ts, Kind: domain.EventReduce, OrderID: id, Size: size}
}

// forEachStore runs fn against a fresh book of every strategy
func forEachStore(t *testing.T, fn func(t *testing.T, ob *OrderBook)) {
	t.Helper()
	for _, store := range StoreTypes {
		t.Run(store.String(), func(t *testing.T) {
			fn(t, NewOrderBook(store))
		})
	}
}

func mustApply(t *testing.T, ob *OrderBook, events ...*domain.Event) {
	t.Helper()
	for _, event := range events {
		require.NoError(t, ob.Apply(event), "apply %s", event)
	}
}

func collectPrices(index LevelIndex) []int64 {
	var prices []int64
	for level := range index.Levels() {
		price, _ := level.Price()
		prices = append(prices, price)
	}
	return prices
}
