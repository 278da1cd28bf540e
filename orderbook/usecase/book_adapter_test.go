package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solstice-labs/sqe/domain"
	"github.com/solstice-labs/sqe/log"
	orderbookusecase "github.com/solstice-labs/sqe/orderbook/usecase"
	"github.com/solstice-labs/sqe/sqedomain"
)

func restingOrder(price, seq, clientID uint64) sqedomain.RestingOrder {
	key := sqedomain.NewOrderKey(price, seq)
	return sqedomain.RestingOrder{
		Key:           key,
		Price:         price,
		ClientOrderID: clientID,
	}
}

func TestSplitPoolOrders(t *testing.T) {
	adapter := orderbookusecase.NewBookAdapter(&log.NoOpLogger{})

	bid1 := restingOrder(105, 1, 11)
	bid2 := restingOrder(110, 2, 12)
	bid3 := restingOrder(101, 3, 13)
	ask1 := restingOrder(120, 4, 14)
	ask2 := restingOrder(115, 5, 15)
	missing := restingOrder(108, 6, 16)

	slots := sqedomain.NewOpenOrderSlots()
	slots.SetSlot(0, bid1.Key, true)
	slots.SetSlot(3, bid2.Key, true)
	slots.SetSlot(64, bid3.Key, true)
	slots.SetSlot(7, ask1.Key, false)
	slots.SetSlot(100, ask2.Key, false)
	// occupied but already filled, absent from both snapshots
	slots.SetSlot(9, missing.Key, true)

	bidSide := sqedomain.OrderBookSide{
		bid1.Key: bid1,
		bid2.Key: bid2,
		bid3.Key: bid3,
	}
	askSide := sqedomain.OrderBookSide{
		ask1.Key: ask1,
		ask2.Key: ask2,
	}

	orders := adapter.SplitPoolOrders(slots, bidSide, askSide)

	// bids descending, asks ascending
	require.Equal(t, []sqedomain.RestingOrder{bid2, bid1, bid3}, orders.Bids)
	require.Equal(t, []sqedomain.RestingOrder{ask2, ask1}, orders.Asks)

	bestBid, found := orders.BestBidPrice()
	require.True(t, found)
	assert.Equal(t, uint64(110), bestBid)

	worstBid, found := orders.WorstBidPrice()
	require.True(t, found)
	assert.Equal(t, uint64(101), worstBid)

	bestAsk, found := orders.BestAskPrice()
	require.True(t, found)
	assert.Equal(t, uint64(115), bestAsk)

	worstAsk, found := orders.WorstAskPrice()
	require.True(t, found)
	assert.Equal(t, uint64(120), worstAsk)
}

func TestSplitPoolOrdersEmpty(t *testing.T) {
	adapter := orderbookusecase.NewBookAdapter(&log.NoOpLogger{})

	orders := adapter.SplitPoolOrders(sqedomain.NewOpenOrderSlots(), sqedomain.OrderBookSide{}, sqedomain.OrderBookSide{})

	assert.Empty(t, orders.Bids)
	assert.Empty(t, orders.Asks)

	_, found := orders.BestBidPrice()
	assert.False(t, found)
	_, found = orders.BestAskPrice()
	assert.False(t, found)
}

func TestConsumedSide(t *testing.T) {
	orders := orderbookusecase.PoolOrders{
		Bids: []sqedomain.RestingOrder{restingOrder(110, 1, 1)},
		Asks: []sqedomain.RestingOrder{restingOrder(120, 2, 2), restingOrder(125, 3, 3)},
	}

	assert.Len(t, orders.ConsumedSide(domain.SwapDirectionCoinToPc), 1)
	assert.Len(t, orders.ConsumedSide(domain.SwapDirectionPcToCoin), 2)
	assert.Nil(t, orders.ConsumedSide(domain.SwapDirection(0)))
}

func TestCancelBatches(t *testing.T) {
	tests := map[string]struct {
		askCount int

		expectedBatchSizes []int
	}{
		"no orders": {
			askCount: 0,
		},
		"single partial batch": {
			askCount:           3,
			expectedBatchSizes: []int{3},
		},
		"exactly one batch": {
			askCount:           8,
			expectedBatchSizes: []int{8},
		},
		"full batch plus remainder": {
			askCount:           10,
			expectedBatchSizes: []int{8, 2},
		},
		"two full batches": {
			askCount:           16,
			expectedBatchSizes: []int{8, 8},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var orders orderbookusecase.PoolOrders
			for i := 0; i < tc.askCount; i++ {
				orders.Asks = append(orders.Asks, restingOrder(uint64(100+i), uint64(i), uint64(1000+i)))
			}

			batches := orders.CancelBatches(domain.SwapDirectionPcToCoin)

			require.Len(t, batches, len(tc.expectedBatchSizes))

			var clientIDs []uint64
			for i, batch := range batches {
				assert.Len(t, batch, tc.expectedBatchSizes[i])
				clientIDs = append(clientIDs, batch...)
			}
			for i, clientID := range clientIDs {
				assert.Equal(t, uint64(1000+i), clientID)
			}
		})
	}
}
