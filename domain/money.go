package domain

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// CentDigits is the number of fractional digits a price may carry
const CentDigits = 2

// ParseCents converts a decimal price string such as "44.10" into integer cents.
// More than two fractional digits are rejected, even when they are zeros.
func ParseCents(s string) (int64, error) {
	if _, frac, ok := strings.Cut(s, "."); ok && len(frac) > CentDigits {
		return 0, errors.Wrapf(ErrPricePrecision, "price %q", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedEvent, "price %q: %v", s, err)
	}
	if d.IsNegative() {
		return 0, errors.Wrapf(ErrMalformedEvent, "price %q is negative", s)
	}
	cents := d.Shift(CentDigits)
	if !cents.IsInteger() {
		return 0, errors.Wrapf(ErrPricePrecision, "price %q", s)
	}
	if !cents.BigInt().IsInt64() {
		return 0, errors.Wrapf(ErrMalformedEvent, "price %q out of range", s)
	}
	return cents.IntPart(), nil
}

// FormatCents renders cents with two decimals, e.g. 441000 -> "4410.00"
func FormatCents(cents int64) string {
	return decimal.New(cents, -CentDigits).StringFixed(CentDigits)
}
