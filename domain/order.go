package domain

import (
	"sync"

	"github.com/pkg/errors"
)

// Side represents the book side an order rests on
type Side int

const (
	SideBid Side = iota
	SideAsk
)

func (s Side) String() string {
	if s == SideAsk {
		return "Ask"
	}
	return "Bid"
}

// Order represents a resting limit order
// Price and Side are fixed at creation; only Size changes, and only through Reduce events.
// The book owns every Order; its id lookup and price levels share the same pointer.
type Order struct {
	ID        string
	Price     int64 // cents
	Size      int64 // remaining size
	Side      Side
	Timestamp uint64 // arrival timestamp from the event stream
}

// orders are recycled once fully reduced and dropped from the book
var orderPool sync.Pool

func init() {
	orderPool.New = func() any {
		return &Order{}
	}
}

// NewOrder creates a resting order from an Add event
func NewOrder(event *Event) *Order {
	order := orderPool.Get().(*Order)
	order.ID = event.OrderID
	order.Side = event.Side
	order.Price = event.Price
	order.Size = event.Size
	order.Timestamp = event.Timestamp
	return order
}

// IsEmpty returns true once the order has been reduced to zero
func (o *Order) IsEmpty() bool {
	return o.Size == 0
}

// Reduce subtracts amount from the remaining size
// The order is left untouched when the result would go negative.
func (o *Order) Reduce(amount int64) error {
	if amount > o.Size {
		return errors.Wrapf(ErrNegativeSize, "order %s: reduce %d exceeds remaining %d", o.ID, amount, o.Size)
	}
	o.Size -= amount
	return nil
}

// Destroy returns the order to the pool. Callers must drop every reference first.
func (o *Order) Destroy() {
	o.Reset()
	orderPool.Put(o)
}

func (o *Order) Reset() {
	*o = Order{}
}
