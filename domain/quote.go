package domain

// Direction is the pricer's perspective: what it would cost to buy from or sell into the book
type Direction byte

const (
	DirectionBuy  Direction = 'B'
	DirectionSell Direction = 'S'
)

func (d Direction) String() string {
	return string(d)
}

// Quote is a price-change notification for one direction
// Available is false when resting liquidity cannot fill the target size.
type Quote struct {
	Timestamp  uint64
	Direction  Direction
	TargetSize int64
	Cost       int64 // cents, valid only when Available
	Available  bool
}

// Equal compares the priced outcome, ignoring when it was observed
func (q Quote) Equal(other Quote) bool {
	if q.Available != other.Available {
		return false
	}
	return !q.Available || q.Cost == other.Cost
}

// CostString renders the cost as "441.00", or "NA" when unavailable
func (q Quote) CostString() string {
	if !q.Available {
		return "NA"
	}
	return FormatCents(q.Cost)
}
