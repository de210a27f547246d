package orderbook

import (
	"math"
	"testing"

	"book-pricer/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceLevel(t *testing.T) {
	level := NewPriceLevel()
	_, ok := level.Price()
	assert.False(t, ok)
	_, ok = level.Volume()
	assert.False(t, ok)

	require.NoError(t, level.AddOrder(restingOrder("a", domain.SideBid, 4400, 10)))
	require.NoError(t, level.AddOrder(restingOrder("b", domain.SideBid, 4400, 20)))
	require.NoError(t, level.AddOrder(restingOrder("c", domain.SideBid, 4400, 30)))

	price, _ := level.Price()
	volume, _ := level.Volume()
	assert.Equal(t, int64(4400), price)
	assert.Equal(t, int64(60), volume)

	err := level.AddOrder(restingOrder("d", domain.SideBid, 4401, 1))
	assert.ErrorIs(t, err, domain.ErrPriceMismatch)
	assert.Equal(t, 3, level.Len())

	volume, err = level.ApplyReduction("b", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(55), volume)

	// fully reduced member is swapped out with the last one
	volume, err = level.ApplyReduction("a", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(45), volume)
	ids := make([]string, 0, level.Len())
	for _, order := range level.Orders() {
		ids = append(ids, order.ID)
	}
	assert.Equal(t, []string{"c", "b"}, ids)

	_, err = level.ApplyReduction("b", 16)
	assert.ErrorIs(t, err, domain.ErrNegativeSize)
	volume, _ = level.Volume()
	assert.Equal(t, int64(45), volume)

	_, err = level.ApplyReduction("zz", 1)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = level.ApplyReduction("b", 15)
	require.NoError(t, err)
	_, err = level.ApplyReduction("c", 30)
	require.NoError(t, err)
	assert.True(t, level.IsEmpty())
	_, ok = level.Price()
	assert.False(t, ok)
}

func TestPriceLevel_VolumeOverflow(t *testing.T) {
	level := NewPriceLevel()
	require.NoError(t, level.AddOrder(restingOrder("a", domain.SideAsk, 4400, math.MaxInt64-5)))

	err := level.AddOrder(restingOrder("b", domain.SideAsk, 4400, 6))
	assert.ErrorIs(t, err, domain.ErrInvalidOrder)
	assert.Equal(t, 1, level.Len())
	volume, _ := level.Volume()
	assert.Equal(t, int64(math.MaxInt64-5), volume)

	require.NoError(t, level.AddOrder(restingOrder("c", domain.SideAsk, 4400, 5)))
}
