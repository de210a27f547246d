package domain

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

var (
	// input integrity
	ErrMalformedEvent      = errors.New("malformed event")
	ErrPricePrecision      = errors.New("price has more than 2 decimal places")
	ErrTimestampRegression = errors.New("timestamp not monotonically increasing")
	ErrInvalidOrder        = errors.New("invalid order")
	ErrDuplicateOrder      = errors.New("order id already resting")

	// state consistency
	ErrOrderNotFound = errors.New("order not found")
	ErrNegativeSize  = errors.New("order size would become negative")
	ErrPriceMismatch = errors.New("order does not belong to this price level")
	ErrLevelMissing  = errors.New("price level missing from index")
)

// IsFatal reports whether err means the incremental index can no longer be trusted.
func IsFatal(err error) bool {
	return stderrors.Is(err, ErrOrderNotFound) ||
		stderrors.Is(err, ErrNegativeSize) ||
		stderrors.Is(err, ErrPriceMismatch) ||
		stderrors.Is(err, ErrLevelMissing)
}
