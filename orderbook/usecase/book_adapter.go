package usecase

import (
	"sort"

	"go.uber.org/zap"

	"github.com/solstice-labs/sqe/domain"
	"github.com/solstice-labs/sqe/log"
	"github.com/solstice-labs/sqe/sqedomain"
)

// CancelBatchSize is how many client order ids fit in one cancellation
// request to the external order-management collaborator.
const CancelBatchSize = 8

// PoolOrders is a pool's resting liquidity partitioned by side.
// Bids are sorted descending by price and asks ascending, so the best price
// on either side is the first element and the worst is the last.
type PoolOrders struct {
	Bids []sqedomain.RestingOrder
	Asks []sqedomain.RestingOrder
}

// bookAdapter extracts a pool's own resting orders from external book
// snapshots.
type bookAdapter struct {
	logger log.Logger
}

// NewBookAdapter creates a new order book adapter.
func NewBookAdapter(logger log.Logger) *bookAdapter {
	return &bookAdapter{
		logger: logger,
	}
}

// SplitPoolOrders walks the pool's open-order slot table and partitions the
// occupied slots into bid and ask lists by looking each key up in its
// snapshot. Slots that are free, or whose key is no longer present on the
// book (already filled or cancelled), are excluded without error.
func (a *bookAdapter) SplitPoolOrders(slots *sqedomain.OpenOrderSlots, bidSide, askSide sqedomain.OrderBookSide) PoolOrders {
	var orders PoolOrders

	for i := 0; i < sqedomain.MaxOpenOrderSlots; i++ {
		if slots.IsFree(i) {
			continue
		}

		if slots.IsBid(i) {
			order, found := bidSide.FindByKey(slots.Orders[i])
			if !found {
				a.logger.Debug("bid slot no longer on book", zap.Int("slot", i), zap.Stringer("key", slots.Orders[i]))
				continue
			}
			orders.Bids = append(orders.Bids, order)
		} else {
			order, found := askSide.FindByKey(slots.Orders[i])
			if !found {
				a.logger.Debug("ask slot no longer on book", zap.Int("slot", i), zap.Stringer("key", slots.Orders[i]))
				continue
			}
			orders.Asks = append(orders.Asks, order)
		}
	}

	sort.Slice(orders.Bids, func(i, j int) bool {
		return orders.Bids[i].Price > orders.Bids[j].Price
	})
	sort.Slice(orders.Asks, func(i, j int) bool {
		return orders.Asks[i].Price < orders.Asks[j].Price
	})

	return orders
}

// BestBidPrice returns the highest resting bid price, if any.
func (o PoolOrders) BestBidPrice() (uint64, bool) {
	if len(o.Bids) == 0 {
		return 0, false
	}
	return o.Bids[0].Price, true
}

// BestAskPrice returns the lowest resting ask price, if any.
func (o PoolOrders) BestAskPrice() (uint64, bool) {
	if len(o.Asks) == 0 {
		return 0, false
	}
	return o.Asks[0].Price, true
}

// WorstBidPrice returns the lowest resting bid price, if any.
func (o PoolOrders) WorstBidPrice() (uint64, bool) {
	if len(o.Bids) == 0 {
		return 0, false
	}
	return o.Bids[len(o.Bids)-1].Price, true
}

// WorstAskPrice returns the highest resting ask price, if any.
func (o PoolOrders) WorstAskPrice() (uint64, bool) {
	if len(o.Asks) == 0 {
		return 0, false
	}
	return o.Asks[len(o.Asks)-1].Price, true
}

// ConsumedSide returns the resting orders that stand in the way of a swap in
// the given direction: a coin-to-pc swap drains the pc reserve behind the
// pool's bids, a pc-to-coin swap drains the coin reserve behind its asks.
func (o PoolOrders) ConsumedSide(direction domain.SwapDirection) []sqedomain.RestingOrder {
	switch direction {
	case domain.SwapDirectionCoinToPc:
		return o.Bids
	case domain.SwapDirectionPcToCoin:
		return o.Asks
	default:
		return nil
	}
}

// CancelBatches groups the client order ids on the consumed side into
// batches sized for the external order-cancellation collaborator.
func (o PoolOrders) CancelBatches(direction domain.SwapDirection) [][]uint64 {
	consumed := o.ConsumedSide(direction)
	if len(consumed) == 0 {
		return nil
	}

	batches := make([][]uint64, 0, (len(consumed)+CancelBatchSize-1)/CancelBatchSize)
	for start := 0; start < len(consumed); start += CancelBatchSize {
		end := start + CancelBatchSize
		if end > len(consumed) {
			end = len(consumed)
		}

		batch := make([]uint64, 0, end-start)
		for _, order := range consumed[start:end] {
			batch = append(batch, order.ClientOrderID)
		}
		batches = append(batches, batch)
	}

	return batches
}
