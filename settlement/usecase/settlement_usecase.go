package usecase

import (
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/solstice-labs/sqe/domain"
	"github.com/solstice-labs/sqe/log"
	orderbookusecase "github.com/solstice-labs/sqe/orderbook/usecase"
	"github.com/solstice-labs/sqe/sqedomain"
	"github.com/solstice-labs/sqe/sqeutil"
)

// OrderBookAdapter extracts a pool's resting liquidity from external book
// snapshots.
type OrderBookAdapter interface {
	SplitPoolOrders(slots *sqedomain.OpenOrderSlots, bidSide, askSide sqedomain.OrderBookSide) orderbookusecase.PoolOrders
}

// SwapInputs is the snapshot of collaborator state a swap attempt runs
// against: ledger time, decoded vault balances, the pool's open-order slot
// table, both book sides, and the profit-extraction snapshot. The engine
// treats all of it as possibly stale; freshness is the caller's problem.
type SwapInputs struct {
	CurrentTime uint64

	SourceMint      domain.AccountKey
	DestinationMint domain.AccountKey

	PcVaultAmount   uint64
	CoinVaultAmount uint64

	OpenOrders *sqedomain.OpenOrderSlots
	Bids       sqedomain.OrderBookSide
	Asks       sqedomain.OrderBookSide

	Snapshot *sqedomain.ProfitSnapshot
}

type settlementUsecase struct {
	bookAdapter OrderBookAdapter
	logger      log.Logger
}

// NewSettlementUsecase creates a new swap settlement usecase.
func NewSettlementUsecase(bookAdapter OrderBookAdapter, logger log.Logger) *settlementUsecase {
	return &settlementUsecase{
		bookAdapter: bookAdapter,
		logger:      logger,
	}
}

// Dispatch routes a settlement instruction. Variants other than SwapBaseIn
// are explicit unsupported results, never silent successes.
func (u *settlementUsecase) Dispatch(instruction domain.Instruction, pool *sqedomain.PoolState, inputs SwapInputs) (*sqedomain.PoolState, domain.SwapResult, error) {
	switch instr := instruction.(type) {
	case domain.SwapBaseIn:
		return u.ExecuteSwapBaseIn(pool, instr, inputs)
	default:
		return nil, domain.SwapResult{}, domain.UnsupportedInstructionError{InstructionKind: instruction.Kind()}
	}
}

// ExecuteSwapBaseIn validates the pool status against the supplied time,
// reconciles tradable reserves, computes the constant-product output net of
// fee, and returns the settled result together with an updated pool record.
//
// The input pool is never mutated: either the returned record carries every
// counter and status update of a successful swap, or an error is returned
// and no update is observable.
func (u *settlementUsecase) ExecuteSwapBaseIn(pool *sqedomain.PoolState, swap domain.SwapBaseIn, inputs SwapInputs) (*sqedomain.PoolState, domain.SwapResult, error) {
	updated, result, err := u.executeSwapBaseIn(pool, swap, inputs)
	if err != nil {
		domain.SQESettlementSwapErrorCounter.WithLabelValues(swapErrorReason(err)).Inc()
		return nil, domain.SwapResult{}, err
	}

	domain.SQESettlementSwapCounter.Inc()
	return updated, result, nil
}

func (u *settlementUsecase) executeSwapBaseIn(pool *sqedomain.PoolState, swap domain.SwapBaseIn, inputs SwapInputs) (*sqedomain.PoolState, domain.SwapResult, error) {
	if swap.AmountIn == 0 {
		return nil, domain.SwapResult{}, domain.ZeroTradeSizeError{}
	}

	if err := pool.Validate(); err != nil {
		return nil, domain.SwapResult{}, err
	}
	if err := inputs.Snapshot.Validate(); err != nil {
		return nil, domain.SwapResult{}, err
	}

	updated := pool.Clone()

	// Whether resting-order exposure participates is decided by the status
	// the pool entered the swap with, before any time-gated transition.
	enableOrderbook := pool.Status.OrderbookPermitted()

	if !updated.Status.SwapPermitted() {
		if updated.Status == sqedomain.PoolStatusOrderBookOnly && inputs.CurrentTime >= updated.StateData.OrderbookToInitTime {
			u.logger.Info("orderbook-only pool reverts to full trading",
				zap.Uint64("orderbook_to_init_time", updated.StateData.OrderbookToInitTime),
				zap.Uint64("current_time", inputs.CurrentTime),
			)
			updated.Status = sqedomain.PoolStatusInitialized
		} else {
			return nil, domain.SwapResult{}, domain.InvalidPoolStatusError{Status: uint64(updated.Status), CurrentTime: inputs.CurrentTime}
		}
	} else if updated.Status == sqedomain.PoolStatusWaitingTrade {
		if inputs.CurrentTime < updated.StateData.PoolOpenTime {
			return nil, domain.SwapResult{}, domain.InvalidPoolStatusError{Status: uint64(updated.Status), CurrentTime: inputs.CurrentTime}
		}
		u.logger.Info("waiting-trade pool opens as swap-only",
			zap.Uint64("pool_open_time", updated.StateData.PoolOpenTime),
			zap.Uint64("current_time", inputs.CurrentTime),
		)
		updated.Status = sqedomain.PoolStatusSwapOnly
	}

	totalPc := inputs.PcVaultAmount
	totalCoin := inputs.CoinVaultAmount

	var orders orderbookusecase.PoolOrders
	if enableOrderbook && inputs.OpenOrders != nil {
		orders = u.bookAdapter.SplitPoolOrders(inputs.OpenOrders, inputs.Bids, inputs.Asks)

		var err error
		if totalPc, err = sqeutil.AddUint64(totalPc, inputs.OpenOrders.NativePcTotal, "total pc with resting exposure"); err != nil {
			return nil, domain.SwapResult{}, err
		}
		if totalCoin, err = sqeutil.AddUint64(totalCoin, inputs.OpenOrders.NativeCoinTotal, "total coin with resting exposure"); err != nil {
			return nil, domain.SwapResult{}, err
		}
	}

	// Profit already owed to the operator still sits in the vaults until it
	// is withdrawn; it is never tradable.
	var err error
	if totalPc, err = sqeutil.SubUint64(totalPc, updated.StateData.NeedTakePnlPc, "total pc without owed pnl"); err != nil {
		return nil, domain.SwapResult{}, err
	}
	if totalCoin, err = sqeutil.SubUint64(totalCoin, updated.StateData.NeedTakePnlCoin, "total coin without owed pnl"); err != nil {
		return nil, domain.SwapResult{}, err
	}

	tradablePc, tradableCoin, err := reconcileTakePnl(updated, inputs.Snapshot, totalPc, totalCoin)
	if err != nil {
		return nil, domain.SwapResult{}, err
	}

	var direction domain.SwapDirection
	switch {
	case inputs.SourceMint == pool.CoinMint && inputs.DestinationMint == pool.PcMint:
		direction = domain.SwapDirectionCoinToPc
	case inputs.SourceMint == pool.PcMint && inputs.DestinationMint == pool.CoinMint:
		direction = domain.SwapDirectionPcToCoin
	default:
		return nil, domain.SwapResult{}, domain.InvalidUserTokenError{SourceMint: inputs.SourceMint, DestinationMint: inputs.DestinationMint}
	}

	fee, err := swapFee(swap.AmountIn, updated.Fees)
	if err != nil {
		return nil, domain.SwapResult{}, err
	}
	if fee > swap.AmountIn {
		return nil, domain.SwapResult{}, domain.FeeExceedsAmountInError{AmountIn: swap.AmountIn, Fee: fee}
	}
	amountInNet := swap.AmountIn - fee

	var reserveIn, reserveOut uint64
	switch direction {
	case domain.SwapDirectionCoinToPc:
		reserveIn, reserveOut = tradableCoin, tradablePc
	case domain.SwapDirectionPcToCoin:
		reserveIn, reserveOut = tradablePc, tradableCoin
	}

	amountOut, err := swapAmountOut(amountInNet, reserveIn, reserveOut)
	if err != nil {
		return nil, domain.SwapResult{}, err
	}

	// Output must be strictly below the opposing reserve or the pool would
	// be emptied.
	if amountOut >= reserveOut {
		return nil, domain.SwapResult{}, domain.InsufficientLiquidityError{AmountOut: amountOut, Available: reserveOut}
	}

	// The pool cannot supply from behind its own resting orders. Clearing
	// them belongs to the external order-management collaborator, so any
	// liquidity still resting on the consumed side fails the swap.
	if enableOrderbook {
		if consumed := orders.ConsumedSide(direction); len(consumed) > 0 {
			return nil, domain.SwapResult{}, domain.RestingLiquidityNotClearedError{Direction: direction, RestingOrders: len(consumed)}
		}
	}

	if amountOut < swap.MinimumAmountOut {
		return nil, domain.SwapResult{}, domain.ExceededSlippageError{AmountOut: amountOut, MinimumAmountOut: swap.MinimumAmountOut}
	}

	if err := applySwapCounters(updated, direction, swap.AmountIn, amountOut, fee); err != nil {
		return nil, domain.SwapResult{}, err
	}

	u.logger.Debug("settled swap",
		zap.Stringer("direction", direction),
		zap.Uint64("amount_in", swap.AmountIn),
		zap.Uint64("amount_out", amountOut),
		zap.Uint64("fee", fee),
	)

	return updated, domain.SwapResult{
		Direction: direction,
		AmountIn:  swap.AmountIn,
		AmountOut: amountOut,
		Fee:       fee,
	}, nil
}

// swapFee charges ceil(amount_in * fee_num / fee_den); rounding up always
// favors the pool.
func swapFee(amountIn uint64, fees sqedomain.PoolFees) (uint64, error) {
	fee := sqeutil.CeilDiv(
		sqeutil.MulUint64(amountIn, fees.SwapFeeNumerator),
		osmomath.NewIntFromUint64(fees.SwapFeeDenominator),
	)
	return sqeutil.Uint64FromInt(fee, "swap fee")
}

func applySwapCounters(pool *sqedomain.PoolState, direction domain.SwapDirection, amountIn, amountOut, fee uint64) error {
	var err error
	switch direction {
	case domain.SwapDirectionCoinToPc:
		pool.StateData.SwapCoinInAmount = pool.StateData.SwapCoinInAmount.Add(osmomath.NewIntFromUint64(amountIn))
		pool.StateData.SwapPcOutAmount = pool.StateData.SwapPcOutAmount.Add(osmomath.NewIntFromUint64(amountOut))
		pool.StateData.SwapAccCoinFee, err = sqeutil.AddUint64(pool.StateData.SwapAccCoinFee, fee, "accumulated coin fee")
	case domain.SwapDirectionPcToCoin:
		pool.StateData.SwapPcInAmount = pool.StateData.SwapPcInAmount.Add(osmomath.NewIntFromUint64(amountIn))
		pool.StateData.SwapCoinOutAmount = pool.StateData.SwapCoinOutAmount.Add(osmomath.NewIntFromUint64(amountOut))
		pool.StateData.SwapAccPcFee, err = sqeutil.AddUint64(pool.StateData.SwapAccPcFee, fee, "accumulated pc fee")
	}
	return err
}

// swapErrorReason classifies an error for the swap failure metric.
func swapErrorReason(err error) string {
	switch err.(type) {
	case domain.InvalidPoolStatusError:
		return "status"
	case domain.InvalidUserTokenError, domain.ZeroTradeSizeError:
		return "token"
	case domain.InsufficientLiquidityError:
		return "liquidity"
	case domain.ExceededSlippageError:
		return "slippage"
	case domain.ArithmeticOverflowError, domain.FeeExceedsAmountInError:
		return "overflow"
	case domain.InvariantViolationError:
		return "invariant"
	case domain.RestingLiquidityNotClearedError:
		return "orderbook"
	default:
		return "other"
	}
}
