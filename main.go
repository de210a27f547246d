// Command book-pricer reads order-book events on stdin and prints, on stdout,
// every change in the cost of buying or selling the target size.
//
//	book-pricer [-config pricer.toml] [-store rbtree] [-log-level info] [target-size] < feed.log
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

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
	store := flag.String("store", "", "price-level store: rbtree, array, bst, btree or list")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	debugSnapshot := flag.Bool("debug-snapshot", false, "log the whole book after every event (debug level)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [target-size] < events\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	// flags override the file and environment only when given
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "store":
			cfg.Store = *store
		case "log-level":
			cfg.LogLevel = *logLevel
		case "debug-snapshot":
			cfg.DebugSnapshot = *debugSnapshot
		}
	})
	if flag.NArg() > 1 {
		flag.Usage()
		return 2
	}
	if flag.NArg() == 1 {
		target, err := strconv.ParseInt(flag.Arg(0), 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "target size %q is not an integer\n", flag.Arg(0))
			return 2
		}
		cfg.TargetSize = target
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	log, err := logger.NewLogger(cfg.LoggerOptions()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	book := orderbook.NewOrderBook(cfg.StoreType())
	p, err := pricer.New(book, cfg.TargetSize, log, pricer.Options{DebugSnapshot: cfg.DebugSnapshot})
	if err != nil {
		log.Error(err)
		return 1
	}
	log.Info("pricer started",
		logger.NewField("target_size", cfg.TargetSize),
		logger.NewField("store", cfg.Store),
	)

	reader := feed.NewReader(os.Stdin)
	out := feed.NewWriter(os.Stdout)
	_, runErr := p.Run(ctx, reader, out)
	if err := out.Flush(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		log.Error(runErr,
			logger.NewField("line", reader.Line()),
			logger.NewField("fatal", domain.IsFatal(runErr)),
		)
		return 1
	}
	return 0
}
