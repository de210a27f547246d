package orderbook

import (
	"book-pricer/domain"

	"github.com/pkg/errors"
)

// IOrderBook defines the interface for an order book
type IOrderBook interface {
	// Apply dispatches an event by kind
	Apply(event *domain.Event) error

	// AddOrder rests a new order from an Add event
	AddOrder(event *domain.Event) error

	// ReduceOrder subtracts amount from a resting order
	ReduceOrder(orderID string, amount int64) error

	// CostToBuy prices buying targetSize from the asks
	CostToBuy(targetSize int64) (int64, bool)

	// CostToSell prices selling targetSize into the bids
	CostToSell(targetSize int64) (int64, bool)

	// GetDepth returns the market depth (price levels and quantities)
	GetDepth(levels int) (bids, asks []Level)
}

// Level is a read-only view of one price level
type Level struct {
	Price    int64
	Quantity int64
	Orders   int // number of orders at this level
}

// OrderBook holds the two-sided book for a single instrument
// Single-threaded: only the event-processing goroutine may touch it.
// The book owns every order; orders maps ids to the same pointers the levels hold.
type OrderBook struct {
	store         StoreType
	bids          LevelIndex // buy orders (descending price)
	asks          LevelIndex // sell orders (ascending price)
	orders        map[string]*domain.Order
	lastTimestamp uint64
}

// Ensure OrderBook implements IOrderBook
var _ IOrderBook = (*OrderBook)(nil)

// NewOrderBook creates an empty book backed by the given store
func NewOrderBook(store StoreType) *OrderBook {
	return &OrderBook{
		store:  store,
		bids:   NewLevelIndex(store, domain.SideBid),
		asks:   NewLevelIndex(store, domain.SideAsk),
		orders: make(map[string]*domain.Order),
	}
}

// Apply validates an event and applies it completely or not at all
func (ob *OrderBook) Apply(event *domain.Event) error {
	if event.Timestamp < ob.lastTimestamp {
		return errors.Wrapf(domain.ErrTimestampRegression, "event %s at %d after %d", event.OrderID, event.Timestamp, ob.lastTimestamp)
	}
	if err := event.Validate(); err != nil {
		return err
	}

	var err error
	switch event.Kind {
	case domain.EventAdd:
		err = ob.AddOrder(event)
	case domain.EventReduce:
		err = ob.ReduceOrder(event.OrderID, event.Size)
	}
	if err != nil {
		return err
	}
	ob.lastTimestamp = event.Timestamp
	return nil
}

// AddOrder rests a new order
func (ob *OrderBook) AddOrder(event *domain.Event) error {
	if _, exists := ob.orders[event.OrderID]; exists {
		return errors.Wrapf(domain.ErrDuplicateOrder, "order %s", event.OrderID)
	}
	if event.Size <= 0 || event.Price < 0 {
		return errors.Wrapf(domain.ErrInvalidOrder, "order %s: price %d size %d", event.OrderID, event.Price, event.Size)
	}

	order := domain.NewOrder(event)
	if err := ob.side(order.Side).Upsert(order); err != nil {
		order.Destroy()
		return err
	}
	ob.orders[order.ID] = order
	return nil
}

// ReduceOrder subtracts amount from a resting order
// An order reduced to exactly zero leaves the book, and its level goes with it
// when it was the last member.
func (ob *OrderBook) ReduceOrder(orderID string, amount int64) error {
	order, exists := ob.orders[orderID]
	if !exists {
		return errors.Wrapf(domain.ErrOrderNotFound, "reduce %d of order %s", amount, orderID)
	}
	if amount <= 0 {
		return errors.Wrapf(domain.ErrInvalidOrder, "order %s: reduce amount %d", orderID, amount)
	}

	if _, err := ob.side(order.Side).Reduce(order.Price, orderID, amount); err != nil {
		return err
	}
	if order.IsEmpty() {
		delete(ob.orders, orderID)
		order.Destroy()
	}
	return nil
}

// CostToBuy prices buying targetSize from the asks, lowest price first
// Returns false when the asks cannot fill targetSize. targetSize must be positive.
func (ob *OrderBook) CostToBuy(targetSize int64) (int64, bool) {
	return costToFill(ob.asks.Levels(), targetSize)
}

// CostToSell prices selling targetSize into the bids, highest price first
// Returns false when the bids cannot fill targetSize. targetSize must be positive.
func (ob *OrderBook) CostToSell(targetSize int64) (int64, bool) {
	return costToFill(ob.bids.Levels(), targetSize)
}

// Cost dispatches on the pricer's direction
func (ob *OrderBook) Cost(direction domain.Direction, targetSize int64) (int64, bool) {
	if direction == domain.DirectionSell {
		return ob.CostToSell(targetSize)
	}
	return ob.CostToBuy(targetSize)
}

// GetBestBid returns the highest bid price
func (ob *OrderBook) GetBestBid() (int64, bool) {
	return bestPrice(ob.bids)
}

// GetBestAsk returns the lowest ask price
func (ob *OrderBook) GetBestAsk() (int64, bool) {
	return bestPrice(ob.asks)
}

// GetDepth returns up to n levels per side, best first
func (ob *OrderBook) GetDepth(n int) (bids, asks []Level) {
	return depth(ob.bids, n), depth(ob.asks, n)
}

// GetOrder returns a copy of a resting order
func (ob *OrderBook) GetOrder(orderID string) (domain.Order, bool) {
	order, exists := ob.orders[orderID]
	if !exists {
		return domain.Order{}, false
	}
	return *order, true
}

// GetLevel returns the level at price on a side, nil if absent
func (ob *OrderBook) GetLevel(side domain.Side, price int64) *PriceLevel {
	return ob.side(side).Level(price)
}

// Len returns the number of resting orders
func (ob *OrderBook) Len() int {
	return len(ob.orders)
}

// Store returns the strategy backing both sides
func (ob *OrderBook) Store() StoreType {
	return ob.store
}

func (ob *OrderBook) side(side domain.Side) LevelIndex {
	if side == domain.SideAsk {
		return ob.asks
	}
	return ob.bids
}

func bestPrice(index LevelIndex) (int64, bool) {
	for level := range index.Levels() {
		return level.Price()
	}
	return 0, false
}

func depth(index LevelIndex, n int) []Level {
	if n <= 0 {
		return nil
	}
	levels := make([]Level, 0, min(n, index.Len()))
	for level := range index.Levels() {
		if len(levels) == n {
			break
		}
		price, _ := level.Price()
		volume, _ := level.Volume()
		levels = append(levels, Level{Price: price, Quantity: volume, Orders: level.Len()})
	}
	return levels
}
