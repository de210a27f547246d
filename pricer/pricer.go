package pricer

import (
	"context"
	"io"
	"time"

	"book-pricer/domain"
	"book-pricer/feed"
	"book-pricer/logger"
	"book-pricer/orderbook"

	"github.com/pkg/errors"
)

// IPricer defines the interface for an incremental book pricer
type IPricer interface {
	// Process applies one event and returns the quotes whose value changed
	Process(event *domain.Event) ([]domain.Quote, error)

	// Run drains src into the book and publishes every change to sink
	Run(ctx context.Context, src feed.Source, sink feed.Sink) (Stats, error)

	// GetOrderBook returns the order book
	GetOrderBook() *orderbook.OrderBook
}

// Options tunes diagnostics
type Options struct {
	// DebugSnapshot logs the rendered book after every event at debug level
	DebugSnapshot bool
}

// Stats summarizes a Run
type Stats struct {
	Events  int
	Quotes  int
	Elapsed time.Duration
}

// EventsPerSecond is the replay throughput
func (s Stats) EventsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Events) / s.Elapsed.Seconds()
}

// directions in the order their quotes are emitted
var directions = [2]domain.Direction{domain.DirectionSell, domain.DirectionBuy}

// Pricer keeps the cost of filling TargetSize in both directions up to date
// Architecture:
//   - Owns exactly one OrderBook; only the goroutine calling Process/Run touches it
//   - Every event is applied completely before both costs are recomputed
//   - A quote is emitted only when its value differs from the last one emitted
//     for that direction; both directions start out unavailable
type Pricer struct {
	book       *orderbook.OrderBook
	targetSize int64
	last       [len(directions)]domain.Quote
	log        logger.Interface
	opts       Options
}

// Ensure Pricer implements IPricer
var _ IPricer = (*Pricer)(nil)

// New creates a pricer over book; targetSize must be positive
func New(book *orderbook.OrderBook, targetSize int64, log logger.Interface, opts Options) (*Pricer, error) {
	if targetSize <= 0 {
		return nil, errors.Errorf("target size must be positive, got %d", targetSize)
	}
	if log == nil {
		log = logger.NewNop()
	}
	p := &Pricer{
		book:       book,
		targetSize: targetSize,
		log: log.WithFields(
			logger.NewField("target_size", targetSize),
			logger.NewField("store", book.Store().String()),
		),
		opts: opts,
	}
	for i, direction := range directions {
		p.last[i] = domain.Quote{Direction: direction, TargetSize: targetSize}
	}
	return p, nil
}

// Process applies event and recomputes the sell cost, then the buy cost
// On error the book and the last quotes are unchanged.
func (p *Pricer) Process(event *domain.Event) ([]domain.Quote, error) {
	if err := p.book.Apply(event); err != nil {
		return nil, err
	}
	if p.opts.DebugSnapshot && p.log.Enabled(logger.DebugLevel) {
		p.log.Debug("book updated",
			logger.NewField("event", event.String()),
			logger.NewField("book", p.book.String()),
		)
	}

	var quotes []domain.Quote
	for i, direction := range directions {
		cost, ok := p.book.Cost(direction, p.targetSize)
		quote := domain.Quote{
			Timestamp:  event.Timestamp,
			Direction:  direction,
			TargetSize: p.targetSize,
			Cost:       cost,
			Available:  ok,
		}
		if quote.Equal(p.last[i]) {
			continue
		}
		p.last[i] = quote
		quotes = append(quotes, quote)
	}
	return quotes, nil
}

// Run processes src until io.EOF, ctx is done, or the first error
// Stats cover the events applied before the run stopped.
func (p *Pricer) Run(ctx context.Context, src feed.Source, sink feed.Sink) (Stats, error) {
	var stats Stats
	start := time.Now()

	for {
		if err := ctx.Err(); err != nil {
			stats.Elapsed = time.Since(start)
			return stats, err
		}
		event, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.Elapsed = time.Since(start)
			return stats, err
		}

		quotes, err := p.Process(&event)
		if err != nil {
			p.log.Warn("event rejected",
				logger.NewField("event", event.String()),
				logger.NewField("fatal", domain.IsFatal(err)),
			)
			stats.Elapsed = time.Since(start)
			return stats, errors.WithMessagef(err, "event %d", stats.Events+1)
		}
		stats.Events++

		for _, quote := range quotes {
			if err := sink.Publish(quote); err != nil {
				stats.Elapsed = time.Since(start)
				return stats, errors.Wrap(err, "publish quote")
			}
			stats.Quotes++
		}
	}

	stats.Elapsed = time.Since(start)
	p.log.Info("feed drained",
		logger.NewField("events", stats.Events),
		logger.NewField("quotes", stats.Quotes),
		logger.NewField("elapsed", stats.Elapsed),
		logger.NewField("resting_orders", p.book.Len()),
	)
	return stats, nil
}

// Last returns the most recently emitted quote for direction
func (p *Pricer) Last(direction domain.Direction) domain.Quote {
	if direction == domain.DirectionSell {
		return p.last[0]
	}
	return p.last[1]
}

// GetOrderBook returns the order book
func (p *Pricer) GetOrderBook() *orderbook.OrderBook {
	return p.book
}
