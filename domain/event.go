package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// EventKind represents the type of an order-book event
type EventKind byte

const (
	EventAdd    EventKind = 'A'
	EventReduce EventKind = 'R'
)

func (k EventKind) String() string {
	switch k {
	case EventAdd:
		return "Add"
	case EventReduce:
		return "Reduce"
	default:
		return fmt.Sprintf("EventKind(%d)", byte(k))
	}
}

// Event is one parsed line of the input stream
// Side and Price are only meaningful for Add; Size is the order size for Add
// and the amount to subtract for Reduce.
type Event struct {
	Timestamp uint64
	Kind      EventKind
	OrderID   string
	Side      Side
	Price     int64
	Size      int64
}

// Validate checks the fields the book relies on
func (e *Event) Validate() error {
	if e.OrderID == "" {
		return errors.Wrap(ErrInvalidOrder, "empty order id")
	}
	if e.Size <= 0 {
		return errors.Wrapf(ErrInvalidOrder, "order %s: size must be positive, got %d", e.OrderID, e.Size)
	}
	switch e.Kind {
	case EventAdd:
		if e.Price < 0 {
			return errors.Wrapf(ErrInvalidOrder, "order %s: negative price %d", e.OrderID, e.Price)
		}
		if e.Side != SideBid && e.Side != SideAsk {
			return errors.Wrapf(ErrInvalidOrder, "order %s: unknown side %d", e.OrderID, e.Side)
		}
	case EventReduce:
	default:
		return errors.Wrapf(ErrMalformedEvent, "unknown event kind %s", e.Kind)
	}
	return nil
}

func (e Event) String() string {
	if e.Kind == EventAdd {
		return fmt.Sprintf("Event{ts: %d, Add, id: %s, side: %s, price: %s, size: %d}",
			e.Timestamp, e.OrderID, e.Side, FormatCents(e.Price), e.Size)
	}
	return fmt.Sprintf("Event{ts: %d, %s, id: %s, size: %d}", e.Timestamp, e.Kind, e.OrderID, e.Size)
}
