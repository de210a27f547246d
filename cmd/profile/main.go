package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"

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
	store := flag.String("store", "", "price-level store to profile (overrides config)")
	output := flag.String("o", "cpu.prof", "CPU profile output path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err == nil && *store != "" {
		cfg.Store = *store
	}
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	log, err := logger.NewLogger(cfg.LoggerOptions()...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	if err := profile(cfg, *output, log); err != nil {
		log.Error(err)
		return 1
	}

	fmt.Println("\nAnalyze the CPU profile:")
	fmt.Printf("  go tool pprof -http=:8080 %s\n", *output)
	fmt.Printf("  go tool pprof %s   (then: top10, list <func>)\n", *output)
	return 0
}

func profile(cfg *config.Config, output string, log *logger.Logger) error {
	// generate up front so the profile only covers pricing
	stream := feed.NewGenerator(cfg.Generator.Options()).Take(cfg.Generator.Events)
	book := orderbook.NewOrderBook(cfg.StoreType())
	p, err := pricer.New(book, cfg.TargetSize, log, pricer.Options{})
	if err != nil {
		return err
	}

	cpuFile, err := os.Create(output)
	if err != nil {
		return err
	}
	defer cpuFile.Close()

	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		return err
	}
	fmt.Printf("=== Profiling %s store: %d events -> %s ===\n", cfg.StoreType(), len(stream), output)
	stats, err := p.Run(context.Background(), feed.NewSliceSource(stream), discard{})
	pprof.StopCPUProfile()
	if err != nil {
		return err
	}

	fmt.Printf("Events:     %d\n", stats.Events)
	fmt.Printf("Quotes:     %d\n", stats.Quotes)
	fmt.Printf("Throughput: %.0f events/sec\n", stats.EventsPerSecond())
	return nil
}

type discard struct{}

func (discard) Publish(domain.Quote) error { return nil }
