package orderbook

import (
	"iter"

	"book-pricer/domain"

	"github.com/pkg/errors"
)

// ListIndex stores levels in a hash map threaded by a best-first doubly linked list
// Architecture: HashMap + Doubly Linked List
//
//   - Lookup by price: O(1) through the map
//   - Best level: O(1), the head of the list
//   - Removing an emptied level: O(1) unlink
//   - New level: O(n) walk from the head, usually short since most activity is near the top
type ListIndex struct {
	levels map[int64]*listNode // price -> node
	best   *listNode
	side   domain.Side
}

type listNode struct {
	level *PriceLevel
	price int64
	next  *listNode // worse price
	prev  *listNode // better price
}

// Ensure ListIndex implements LevelIndex
var _ LevelIndex = (*ListIndex)(nil)

// NewListIndex creates an empty list index for one side
func NewListIndex(side domain.Side) *ListIndex {
	return &ListIndex{
		levels: make(map[int64]*listNode),
		side:   side,
	}
}

func (l *ListIndex) Upsert(order *domain.Order) error {
	if node, exists := l.levels[order.Price]; exists {
		return node.level.AddOrder(order)
	}
	level := NewPriceLevel()
	if err := level.AddOrder(order); err != nil {
		return err
	}
	node := &listNode{level: level, price: order.Price}
	l.levels[order.Price] = node
	l.link(node)
	return nil
}

func (l *ListIndex) Reduce(price int64, orderID string, amount int64) (int64, error) {
	node, exists := l.levels[price]
	if !exists {
		return 0, errors.Wrapf(domain.ErrLevelMissing, "no level at %d for order %s", price, orderID)
	}
	volume, err := node.level.ApplyReduction(orderID, amount)
	if err != nil {
		return volume, err
	}
	if node.level.IsEmpty() {
		l.unlink(node)
	}
	return volume, nil
}

func (l *ListIndex) Level(price int64) *PriceLevel {
	if node, exists := l.levels[price]; exists {
		return node.level
	}
	return nil
}

// Levels follows the list from the head
func (l *ListIndex) Levels() iter.Seq[*PriceLevel] {
	return func(yield func(*PriceLevel) bool) {
		for node := l.best; node != nil; node = node.next {
			if !yield(node.level) {
				return
			}
		}
	}
}

func (l *ListIndex) Len() int {
	return len(l.levels)
}

// link inserts a new node at its sorted position
func (l *ListIndex) link(node *listNode) {
	if l.best == nil {
		l.best = node
		return
	}
	if isBetterPrice(l.side, node.price, l.best.price) {
		node.next = l.best
		l.best.prev = node
		l.best = node
		return
	}

	current := l.best
	for current.next != nil && !isBetterPrice(l.side, node.price, current.next.price) {
		current = current.next
	}
	node.next = current.next
	node.prev = current
	if current.next != nil {
		current.next.prev = node
	}
	current.next = node
}

// unlink drops an emptied node from the map and the list
func (l *ListIndex) unlink(node *listNode) {
	delete(l.levels, node.price)
	if node.prev != nil {
		node.prev.next = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	}
	if l.best == node {
		l.best = node.next
	}
	node.next, node.prev = nil, nil
}
