package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"44.10", 4410},
		{"44.1", 4410},
		{"44", 4400},
		{"0.01", 1},
		{"0", 0},
		{"1234567.89", 123456789},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseCents(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseCents_Rejects(t *testing.T) {
	t.Run("excess precision", func(t *testing.T) {
		_, err := ParseCents("44.105")
		assert.ErrorIs(t, err, ErrPricePrecision)
	})

	t.Run("trailing zero still counts as a digit", func(t *testing.T) {
		_, err := ParseCents("44.100")
		assert.ErrorIs(t, err, ErrPricePrecision)
	})

	t.Run("not a number", func(t *testing.T) {
		_, err := ParseCents("abc")
		assert.ErrorIs(t, err, ErrMalformedEvent)
	})

	t.Run("negative", func(t *testing.T) {
		_, err := ParseCents("-1.00")
		assert.ErrorIs(t, err, ErrMalformedEvent)
	})

	t.Run("cents overflow int64", func(t *testing.T) {
		for _, in := range []string{"99999999999999999999", "1e20", "92233720368547758.08"} {
			_, err := ParseCents(in)
			assert.ErrorIs(t, err, ErrMalformedEvent, in)
		}
	})

	t.Run("largest representable price", func(t *testing.T) {
		got, err := ParseCents("92233720368547758.07")
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), got)
	})
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "6623.50", FormatCents(662350))
	assert.Equal(t, "0.01", FormatCents(1))
	assert.Equal(t, "44.10", FormatCents(4410))
	assert.Equal(t, "0.00", FormatCents(0))
}

func TestOrderReduce(t *testing.T) {
	order := NewOrder(&Event{Kind: EventAdd, OrderID: "b", Side: SideAsk, Price: 4426, Size: 100})
	require.NoError(t, order.Reduce(40))
	assert.Equal(t, int64(60), order.Size)
	assert.False(t, order.IsEmpty())

	err := order.Reduce(61)
	assert.ErrorIs(t, err, ErrNegativeSize)
	assert.Equal(t, int64(60), order.Size, "failed reduce must not mutate")

	require.NoError(t, order.Reduce(60))
	assert.True(t, order.IsEmpty())
}

func TestEventValidate(t *testing.T) {
	ok := Event{Kind: EventAdd, OrderID: "a", Side: SideBid, Price: 100, Size: 1}
	assert.NoError(t, ok.Validate())

	noID := ok
	noID.OrderID = ""
	assert.ErrorIs(t, noID.Validate(), ErrInvalidOrder)

	zero := ok
	zero.Size = 0
	assert.ErrorIs(t, zero.Validate(), ErrInvalidOrder)

	reduce := Event{Kind: EventReduce, OrderID: "a", Size: 5}
	assert.NoError(t, reduce.Validate())

	bogus := Event{Kind: 'X', OrderID: "a", Size: 5}
	assert.ErrorIs(t, bogus.Validate(), ErrMalformedEvent)
}

func TestQuoteEqual(t *testing.T) {
	na := Quote{Direction: DirectionBuy}
	assert.True(t, na.Equal(Quote{Direction: DirectionBuy, Cost: 7}), "unavailable quotes ignore cost")
	assert.False(t, na.Equal(Quote{Available: true}))
	assert.True(t, Quote{Available: true, Cost: 5}.Equal(Quote{Available: true, Cost: 5, Timestamp: 9}))
	assert.Equal(t, "NA", na.CostString())
	assert.Equal(t, "2205.00", Quote{Available: true, Cost: 220500}.CostString())
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(ErrNegativeSize))
	assert.True(t, IsFatal(ErrOrderNotFound))
	assert.False(t, IsFatal(ErrTimestampRegression))
	assert.False(t, IsFatal(ErrMalformedEvent))
}
