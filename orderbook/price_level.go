package orderbook

import (
	"math"

	"book-pricer/domain"

	"github.com/pkg/errors"
)

// PriceLevel represents all resting orders at one price on one side
// The level's price is the price of its first order; an empty level has no price.
// Volume is kept as a running sum so queries never re-add members.
//
// Members are stored in a slice and a fully reduced order is swap-removed with
// the last element, so arrival order inside a level is NOT preserved.
type PriceLevel struct {
	price  int64
	volume int64
	orders []*domain.Order
}

// NewPriceLevel creates an empty price level
func NewPriceLevel() *PriceLevel {
	return &PriceLevel{}
}

// AddOrder appends an order to the level
func (l *PriceLevel) AddOrder(order *domain.Order) error {
	if len(l.orders) > 0 && order.Price != l.price {
		return errors.Wrapf(domain.ErrPriceMismatch, "order %s at %d added to level %d", order.ID, order.Price, l.price)
	}
	if order.Size > math.MaxInt64-l.volume {
		return errors.Wrapf(domain.ErrInvalidOrder, "order %s: level %d volume would overflow", order.ID, order.Price)
	}
	if len(l.orders) == 0 {
		l.price = order.Price
	}
	l.orders = append(l.orders, order)
	l.volume += order.Size
	return nil
}

// ApplyReduction decrements a member order and returns the level's new volume
// A member reduced to zero is removed from the level. Nothing changes on error.
func (l *PriceLevel) ApplyReduction(orderID string, amount int64) (int64, error) {
	for i, order := range l.orders {
		if order.ID != orderID {
			continue
		}
		if err := order.Reduce(amount); err != nil {
			return l.volume, err
		}
		l.volume -= amount
		if order.IsEmpty() {
			last := len(l.orders) - 1
			l.orders[i] = l.orders[last]
			l.orders[last] = nil
			l.orders = l.orders[:last]
		}
		return l.volume, nil
	}
	return l.volume, errors.Wrapf(domain.ErrOrderNotFound, "order %s not in level %d", orderID, l.price)
}

// Volume returns the aggregate size, false if the level is empty
func (l *PriceLevel) Volume() (int64, bool) {
	if len(l.orders) == 0 {
		return 0, false
	}
	return l.volume, true
}

// Price returns the shared price, false if the level is empty
func (l *PriceLevel) Price() (int64, bool) {
	if len(l.orders) == 0 {
		return 0, false
	}
	return l.price, true
}

// IsEmpty returns true if no orders remain
func (l *PriceLevel) IsEmpty() bool {
	return len(l.orders) == 0
}

// Len returns the number of member orders
func (l *PriceLevel) Len() int {
	return len(l.orders)
}

// Orders returns a copy of the member orders
func (l *PriceLevel) Orders() []domain.Order {
	orders := make([]domain.Order, len(l.orders))
	for i, order := range l.orders {
		orders[i] = *order
	}
	return orders
}
