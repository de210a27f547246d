package orderbook

import (
	"fmt"
	"testing"

	"book-pricer/domain"
	"book-pricer/feed"
)

// Compares the level stores on the pricer's hot path.
// Scenario: a single equity's book, a few hundred live price levels.

func benchStream(b *testing.B, n int) []domain.Event {
	b.Helper()
	return feed.NewGenerator(feed.DefaultGeneratorOptions()).Take(n)
}

// Replay: apply every event and price both directions, as the pricer does
func BenchmarkReplay(b *testing.B) {
	events := benchStream(b, 100_000)
	for _, store := range StoreTypes {
		b.Run(store.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				ob := NewOrderBook(store)
				for j := range events {
					if err := ob.Apply(&events[j]); err != nil {
						b.Fatal(err)
					}
					ob.CostToSell(200)
					ob.CostToBuy(200)
				}
			}
			b.ReportMetric(float64(b.Elapsed().Nanoseconds())/float64(b.N*len(events)), "ns/event")
		})
	}
}

// Cost query alone against a warmed-up book
func BenchmarkCostToFill(b *testing.B) {
	events := benchStream(b, 20_000)
	for _, store := range StoreTypes {
		ob := NewOrderBook(store)
		for j := range events {
			if err := ob.Apply(&events[j]); err != nil {
				b.Fatal(err)
			}
		}
		for _, target := range []int64{200, 5000} {
			b.Run(fmt.Sprintf("%s/target=%d", store, target), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					ob.CostToBuy(target)
					ob.CostToSell(target)
				}
			})
		}
	}
}

// Sorted inserts: the unbalanced tree degrades to a list here
func BenchmarkSortedInsert(b *testing.B) {
	const levels = 1000
	for _, store := range StoreTypes {
		b.Run(store.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				index := NewLevelIndex(store, domain.SideAsk)
				for price := int64(1); price <= levels; price++ {
					_ = index.Upsert(&domain.Order{ID: "o", Price: price, Size: 1, Side: domain.SideAsk})
				}
			}
		})
	}
}

// Best price lookup only
func BenchmarkBestPrice(b *testing.B) {
	events := benchStream(b, 20_000)
	for _, store := range StoreTypes {
		ob := NewOrderBook(store)
		for j := range events {
			if err := ob.Apply(&events[j]); err != nil {
				b.Fatal(err)
			}
		}
		b.Run(store.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				ob.GetBestBid()
				ob.GetBestAsk()
			}
		})
	}
}
