package orderbook

import (
	"fmt"
	"strings"

	"book-pricer/domain"
)

// String renders both sides best to worst for diagnostics
//
//	Ask:
//	Level:  1, Price:    44.10, Size:   100, AccuSize:   100, AccuVolume:   441000, Orders: { { id: b, size: 100 } }
func (ob *OrderBook) String() string {
	var b strings.Builder
	b.WriteString("Ask:\n")
	renderSide(&b, ob.asks)
	b.WriteString("Bid:\n")
	renderSide(&b, ob.bids)
	return b.String()
}

func renderSide(b *strings.Builder, index LevelIndex) {
	var accuSize, accuVolume int64
	ordinal := 0
	for level := range index.Levels() {
		price, _ := level.Price()
		size, _ := level.Volume()
		ordinal++
		accuSize += size
		accuVolume += size * price
		fmt.Fprintf(b, "Level: %2d, Price: %8s, Size: %5d, AccuSize: %5d, AccuVolume: %8d, Orders: %s\n",
			ordinal, domain.FormatCents(price), size, accuSize, accuVolume, renderOrders(level))
	}
}

func renderOrders(level *PriceLevel) string {
	parts := make([]string, 0, level.Len())
	for _, order := range level.orders {
		parts = append(parts, fmt.Sprintf("{ id: %s, size: %d }", order.ID, order.Size))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
