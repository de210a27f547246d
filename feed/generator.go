package feed

import (
	"math/rand"

	"book-pricer/domain"

	"github.com/google/uuid"
)

// GeneratorOptions shapes a synthetic event stream
type GeneratorOptions struct {
	Seed        int64
	MidPrice    int64   // cents
	HalfSpread  int64   // prices fall in [MidPrice-HalfSpread, MidPrice+HalfSpread]
	MaxSize     int64   // add sizes fall in [1, MaxSize]
	ReduceRatio float64 // share of events that reduce a resting order
}

// DefaultGeneratorOptions returns options resembling a single equity's book
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		Seed:        1,
		MidPrice:    4420,
		HalfSpread:  200,
		MaxSize:     300,
		ReduceRatio: 0.45,
	}
}

type liveOrder struct {
	id        string
	remaining int64
}

// Generator produces a valid, deterministic event stream
// Reduces only target resting orders and never exceed what is left; timestamps
// never decrease. Order ids are UUIDs drawn from the seeded source.
type Generator struct {
	rng       *rand.Rand
	opts      GeneratorOptions
	timestamp uint64
	live      []liveOrder
}

// Ensure Generator implements Source
var _ Source = (*Generator)(nil)

// NewGenerator creates a generator
func NewGenerator(opts GeneratorOptions) *Generator {
	return &Generator{
		rng:       rand.New(rand.NewSource(opts.Seed)),
		opts:      opts,
		timestamp: 28800000,
	}
}

// Next never ends the stream
func (g *Generator) Next() (domain.Event, error) {
	g.timestamp += uint64(g.rng.Intn(3))
	if len(g.live) > 0 && g.rng.Float64() < g.opts.ReduceRatio {
		return g.reduce(), nil
	}
	return g.add(), nil
}

// Take returns the next n events
func (g *Generator) Take(n int) []domain.Event {
	events := make([]domain.Event, n)
	for i := range events {
		events[i], _ = g.Next()
	}
	return events
}

func (g *Generator) add() domain.Event {
	id := uuid.Must(uuid.NewRandomFromReader(g.rng)).String()
	size := 1 + g.rng.Int63n(max(g.opts.MaxSize, 1))
	price := g.opts.MidPrice - g.opts.HalfSpread + g.rng.Int63n(2*g.opts.HalfSpread+1)

	// bids lean below mid and asks above, with some overlap as in real feeds
	side := domain.SideBid
	if g.rng.Intn(2) == 1 {
		side = domain.SideAsk
		price += g.opts.HalfSpread / 4
	} else {
		price -= g.opts.HalfSpread / 4
	}
	price = max(price, 1)

	g.live = append(g.live, liveOrder{id: id, remaining: size})
	return domain.Event{
		Timestamp: g.timestamp,
		Kind:      domain.EventAdd,
		OrderID:   id,
		Side:      side,
		Price:     price,
		Size:      size,
	}
}

func (g *Generator) reduce() domain.Event {
	i := g.rng.Intn(len(g.live))
	order := &g.live[i]

	amount := order.remaining
	if order.remaining > 1 && g.rng.Intn(2) == 0 {
		amount = 1 + g.rng.Int63n(order.remaining)
	}
	order.remaining -= amount

	event := domain.Event{
		Timestamp: g.timestamp,
		Kind:      domain.EventReduce,
		OrderID:   order.id,
		Size:      amount,
	}
	if order.remaining == 0 {
		last := len(g.live) - 1
		g.live[i] = g.live[last]
		g.live = g.live[:last]
	}
	return event
}
