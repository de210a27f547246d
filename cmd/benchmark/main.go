package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"book-pricer/config"
	"book-pricer/domain"
	"book-pricer/feed"
	"book-pricer/logger"
	"book-pricer/orderbook"
	"book-pricer/pricer"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to TOML configuration file")
	events := flag.Int("events", 0, "events to replay (overrides generator.events)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err == nil && *events > 0 {
		cfg.Generator.Events = *events
	}
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// only problems are worth logging during a timed run
	log, err := logger.NewLogger(append(cfg.LoggerOptions(), logger.WithLoggingLevel(logger.WarnLevel))...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	fmt.Println("=== Book pricer replay benchmark ===")
	fmt.Printf("Events:       %d\n", cfg.Generator.Events)
	fmt.Printf("Seed:         %d\n", cfg.Generator.Seed)
	fmt.Printf("Target size:  %d\n", cfg.TargetSize)
	fmt.Printf("GOMAXPROCS:   %d\n\n", runtime.GOMAXPROCS(0))

	// every store replays the same stream
	stream := feed.NewGenerator(cfg.Generator.Options()).Take(cfg.Generator.Events)

	var last *orderbook.OrderBook
	for _, store := range orderbook.StoreTypes {
		runtime.GC()

		book := orderbook.NewOrderBook(store)
		p, err := pricer.New(book, cfg.TargetSize, log, pricer.Options{})
		if err != nil {
			log.Error(err)
			return 1
		}
		stats, err := p.Run(context.Background(), feed.NewSliceSource(stream), &countingSink{})
		if err != nil {
			log.Error(err, logger.NewField("store", store.String()))
			return 1
		}

		bids, asks := book.GetDepth(1 << 30)
		fmt.Printf("%-7s %10.0f events/sec  %8.1f ns/event  quotes: %d  levels: %d bid / %d ask\n",
			store, stats.EventsPerSecond(),
			float64(stats.Elapsed.Nanoseconds())/float64(max(stats.Events, 1)),
			stats.Quotes, len(bids), len(asks))
		last = book
	}

	bids, asks := last.GetDepth(5)
	fmt.Println("\nBid depth (top 5):")
	for i, level := range bids {
		fmt.Printf("  %d. price: %s, size: %d, orders: %d\n",
			i+1, domain.FormatCents(level.Price), level.Quantity, level.Orders)
	}
	fmt.Println("\nAsk depth (top 5):")
	for i, level := range asks {
		fmt.Printf("  %d. price: %s, size: %d, orders: %d\n",
			i+1, domain.FormatCents(level.Price), level.Quantity, level.Orders)
	}
	return 0
}

// countingSink discards quotes; the pricer's stats count them
type countingSink struct{}

func (countingSink) Publish(domain.Quote) error { return nil }
