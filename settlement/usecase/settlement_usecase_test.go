package usecase_test

import (
	"testing"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solstice-labs/sqe/domain"
	"github.com/solstice-labs/sqe/log"
	orderbookusecase "github.com/solstice-labs/sqe/orderbook/usecase"
	settlementusecase "github.com/solstice-labs/sqe/settlement/usecase"
	"github.com/solstice-labs/sqe/sqedomain"
)

func accountKey(b byte) domain.AccountKey {
	var key domain.AccountKey
	key[0] = b
	return key
}

var (
	coinMint = accountKey(1)
	pcMint   = accountKey(2)
)

func swapPool(status sqedomain.PoolStatus) *sqedomain.PoolState {
	return &sqedomain.PoolState{
		Version: sqedomain.PoolStateVersion,
		Status:  status,
		Fees: sqedomain.PoolFees{
			SwapFeeNumerator:       25,
			SwapFeeDenominator:     10_000,
			ProfitShareNumerator:   1,
			ProfitShareDenominator: 2,
		},
		StateData: sqedomain.PoolStateData{
			SwapCoinInAmount:  osmomath.ZeroInt(),
			SwapPcOutAmount:   osmomath.ZeroInt(),
			SwapPcInAmount:    osmomath.ZeroInt(),
			SwapCoinOutAmount: osmomath.ZeroInt(),
		},
		CoinMint: coinMint,
		PcMint:   pcMint,
	}
}

func swapInputs() settlementusecase.SwapInputs {
	return settlementusecase.SwapInputs{
		CurrentTime:     1_000,
		SourceMint:      coinMint,
		DestinationMint: pcMint,
		PcVaultAmount:   1_102_500,
		CoinVaultAmount: 908_347,
		Snapshot: &sqedomain.ProfitSnapshot{
			XRef: osmomath.NewInt(1_000_000),
			YRef: osmomath.NewInt(1_000_000),
		},
	}
}

func TestExecuteSwapBaseIn(t *testing.T) {
	usecase := settlementusecase.NewSettlementUsecase(orderbookusecase.NewBookAdapter(&log.NoOpLogger{}), &log.NoOpLogger{})

	pool := swapPool(sqedomain.PoolStatusSwapOnly)

	updated, result, err := usecase.ExecuteSwapBaseIn(pool, domain.SwapBaseIn{AmountIn: 10_000}, swapInputs())

	require.NoError(t, err)

	// fee = ceil(10_000 * 25 / 10_000) = 25, net input 9_975
	// tradable reserves after profit extraction: pc 1_102_100, coin 908_017
	// out = 9_975 * 1_102_100 / (908_017 + 9_975) = 11_975
	assert.Equal(t, domain.SwapResult{
		Direction: domain.SwapDirectionCoinToPc,
		AmountIn:  10_000,
		AmountOut: 11_975,
		Fee:       25,
	}, result)

	assert.Equal(t, sqedomain.PoolStatusSwapOnly, updated.Status)
	assert.Equal(t, osmomath.NewInt(10_000), updated.StateData.SwapCoinInAmount)
	assert.Equal(t, osmomath.NewInt(11_975), updated.StateData.SwapPcOutAmount)
	assert.Equal(t, uint64(25), updated.StateData.SwapAccCoinFee)
	assert.Equal(t, uint64(800), updated.StateData.TotalPnlPc)
	assert.Equal(t, uint64(660), updated.StateData.TotalPnlCoin)
	assert.Equal(t, uint64(400), updated.StateData.NeedTakePnlPc)
	assert.Equal(t, uint64(330), updated.StateData.NeedTakePnlCoin)

	// the input pool observes nothing
	assert.True(t, pool.StateData.SwapCoinInAmount.IsZero())
	assert.Equal(t, uint64(0), pool.StateData.SwapAccCoinFee)
}

func TestExecuteSwapBaseInPcToCoin(t *testing.T) {
	usecase := settlementusecase.NewSettlementUsecase(orderbookusecase.NewBookAdapter(&log.NoOpLogger{}), &log.NoOpLogger{})

	inputs := swapInputs()
	inputs.SourceMint = pcMint
	inputs.DestinationMint = coinMint

	updated, result, err := usecase.ExecuteSwapBaseIn(swapPool(sqedomain.PoolStatusSwapOnly), domain.SwapBaseIn{AmountIn: 10_000}, inputs)

	require.NoError(t, err)

	// out = 9_975 * 908_017 / (1_102_100 + 9_975) = 8_144
	assert.Equal(t, domain.SwapResult{
		Direction: domain.SwapDirectionPcToCoin,
		AmountIn:  10_000,
		AmountOut: 8_144,
		Fee:       25,
	}, result)

	assert.Equal(t, osmomath.NewInt(10_000), updated.StateData.SwapPcInAmount)
	assert.Equal(t, osmomath.NewInt(8_144), updated.StateData.SwapCoinOutAmount)
	assert.Equal(t, uint64(25), updated.StateData.SwapAccPcFee)
}

func TestExecuteSwapBaseInStatusGates(t *testing.T) {
	tests := map[string]struct {
		status              sqedomain.PoolStatus
		poolOpenTime        uint64
		orderbookToInitTime uint64
		currentTime         uint64

		expectedStatus sqedomain.PoolStatus
		expectError    bool
	}{
		"uninitialized pool rejects": {
			status:      sqedomain.PoolStatusUninitialized,
			currentTime: 1_000,
			expectError: true,
		},
		"disabled pool rejects": {
			status:      sqedomain.PoolStatusDisabled,
			currentTime: 1_000,
			expectError: true,
		},
		"waiting trade before open time rejects": {
			status:       sqedomain.PoolStatusWaitingTrade,
			poolOpenTime: 2_000,
			currentTime:  1_000,
			expectError:  true,
		},
		"waiting trade at open time becomes swap only": {
			status:         sqedomain.PoolStatusWaitingTrade,
			poolOpenTime:   2_000,
			currentTime:    2_000,
			expectedStatus: sqedomain.PoolStatusSwapOnly,
		},
		"orderbook only before revert time rejects": {
			status:              sqedomain.PoolStatusOrderBookOnly,
			orderbookToInitTime: 2_000,
			currentTime:         1_000,
			expectError:         true,
		},
		"orderbook only at revert time becomes initialized": {
			status:              sqedomain.PoolStatusOrderBookOnly,
			orderbookToInitTime: 2_000,
			currentTime:         2_000,
			expectedStatus:      sqedomain.PoolStatusInitialized,
		},
		"initialized pool stays initialized": {
			status:         sqedomain.PoolStatusInitialized,
			currentTime:    1_000,
			expectedStatus: sqedomain.PoolStatusInitialized,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			usecase := settlementusecase.NewSettlementUsecase(orderbookusecase.NewBookAdapter(&log.NoOpLogger{}), &log.NoOpLogger{})

			pool := swapPool(tc.status)
			pool.StateData.PoolOpenTime = tc.poolOpenTime
			pool.StateData.OrderbookToInitTime = tc.orderbookToInitTime

			inputs := swapInputs()
			inputs.CurrentTime = tc.currentTime

			updated, _, err := usecase.ExecuteSwapBaseIn(pool, domain.SwapBaseIn{AmountIn: 10_000}, inputs)

			if tc.expectError {
				require.Error(t, err)
				assert.IsType(t, domain.InvalidPoolStatusError{}, err)
				// failed transitions are not observable
				assert.Equal(t, tc.status, pool.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, updated.Status)
			// transitions surface only on the returned record
			assert.Equal(t, tc.status, pool.Status)
		})
	}
}

func TestExecuteSwapBaseInDirectionMismatch(t *testing.T) {
	usecase := settlementusecase.NewSettlementUsecase(orderbookusecase.NewBookAdapter(&log.NoOpLogger{}), &log.NoOpLogger{})

	pool := swapPool(sqedomain.PoolStatusSwapOnly)

	inputs := swapInputs()
	inputs.SourceMint = accountKey(9)

	updated, _, err := usecase.ExecuteSwapBaseIn(pool, domain.SwapBaseIn{AmountIn: 10_000}, inputs)

	require.Error(t, err)
	assert.Equal(t, domain.InvalidUserTokenError{SourceMint: accountKey(9), DestinationMint: pcMint}, err)
	assert.Nil(t, updated)

	// no state mutation on failure
	assert.True(t, pool.StateData.SwapCoinInAmount.IsZero())
	assert.Equal(t, uint64(0), pool.StateData.TotalPnlPc)
}

func TestExecuteSwapBaseInZeroAmount(t *testing.T) {
	usecase := settlementusecase.NewSettlementUsecase(orderbookusecase.NewBookAdapter(&log.NoOpLogger{}), &log.NoOpLogger{})

	_, _, err := usecase.ExecuteSwapBaseIn(swapPool(sqedomain.PoolStatusSwapOnly), domain.SwapBaseIn{AmountIn: 0}, swapInputs())

	require.Error(t, err)
	assert.IsType(t, domain.ZeroTradeSizeError{}, err)
}

func TestExecuteSwapBaseInSlippage(t *testing.T) {
	usecase := settlementusecase.NewSettlementUsecase(orderbookusecase.NewBookAdapter(&log.NoOpLogger{}), &log.NoOpLogger{})

	pool := swapPool(sqedomain.PoolStatusSwapOnly)

	_, _, err := usecase.ExecuteSwapBaseIn(pool, domain.SwapBaseIn{AmountIn: 10_000, MinimumAmountOut: 20_000}, swapInputs())

	require.Error(t, err)
	assert.Equal(t, domain.ExceededSlippageError{AmountOut: 11_975, MinimumAmountOut: 20_000}, err)
}

func TestExecuteSwapBaseInInsufficientLiquidity(t *testing.T) {
	usecase := settlementusecase.NewSettlementUsecase(orderbookusecase.NewBookAdapter(&log.NoOpLogger{}), &log.NoOpLogger{})

	inputs := swapInputs()
	inputs.CoinVaultAmount = 0
	inputs.PcVaultAmount = 1_000_000
	inputs.Snapshot = &sqedomain.ProfitSnapshot{
		XRef: osmomath.ZeroInt(),
		YRef: osmomath.ZeroInt(),
	}

	_, _, err := usecase.ExecuteSwapBaseIn(swapPool(sqedomain.PoolStatusSwapOnly), domain.SwapBaseIn{AmountIn: 10_000}, inputs)

	require.Error(t, err)
	assert.IsType(t, domain.InsufficientLiquidityError{}, err)
}

func TestExecuteSwapBaseInRestingLiquidity(t *testing.T) {
	bidKey := sqedomain.NewOrderKey(110, 1)
	bidSide := sqedomain.OrderBookSide{
		bidKey: {Key: bidKey, Price: 110, ClientOrderID: 7},
	}

	makeOpenOrders := func() *sqedomain.OpenOrderSlots {
		slots := sqedomain.NewOpenOrderSlots()
		slots.SetSlot(0, bidKey, true)
		return slots
	}

	tests := map[string]struct {
		sourceMint      domain.AccountKey
		destinationMint domain.AccountKey

		expectError bool
	}{
		"coin to pc with resting bids rejects": {
			sourceMint:      coinMint,
			destinationMint: pcMint,
			expectError:     true,
		},
		"pc to coin with resting bids settles": {
			sourceMint:      pcMint,
			destinationMint: coinMint,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			usecase := settlementusecase.NewSettlementUsecase(orderbookusecase.NewBookAdapter(&log.NoOpLogger{}), &log.NoOpLogger{})

			inputs := swapInputs()
			inputs.SourceMint = tc.sourceMint
			inputs.DestinationMint = tc.destinationMint
			inputs.OpenOrders = makeOpenOrders()
			inputs.Bids = bidSide
			inputs.Asks = sqedomain.OrderBookSide{}

			_, _, err := usecase.ExecuteSwapBaseIn(swapPool(sqedomain.PoolStatusInitialized), domain.SwapBaseIn{AmountIn: 10_000}, inputs)

			if tc.expectError {
				require.Error(t, err)
				assert.Equal(t, domain.RestingLiquidityNotClearedError{
					Direction:     domain.SwapDirectionCoinToPc,
					RestingOrders: 1,
				}, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestExecuteSwapBaseInRestingExposureCounts(t *testing.T) {
	// The committed-but-unfilled exposure on the book is part of the
	// tradable totals: shifting pc from the vault onto the book must not
	// change the output.
	usecase := settlementusecase.NewSettlementUsecase(orderbookusecase.NewBookAdapter(&log.NoOpLogger{}), &log.NoOpLogger{})

	openOrders := sqedomain.NewOpenOrderSlots()
	openOrders.NativePcTotal = 100_000

	inputs := swapInputs()
	inputs.PcVaultAmount = 1_002_500
	inputs.OpenOrders = openOrders
	inputs.Bids = sqedomain.OrderBookSide{}
	inputs.Asks = sqedomain.OrderBookSide{}

	_, result, err := usecase.ExecuteSwapBaseIn(swapPool(sqedomain.PoolStatusInitialized), domain.SwapBaseIn{AmountIn: 10_000}, inputs)

	require.NoError(t, err)
	assert.Equal(t, uint64(11_975), result.AmountOut)
}

func TestExecuteSwapBaseInOwedPnlNotTradable(t *testing.T) {
	// Profit already owed to the operator still sits in the vaults; bumping
	// the vaults and the owed counters by the same amounts must not change
	// the output.
	usecase := settlementusecase.NewSettlementUsecase(orderbookusecase.NewBookAdapter(&log.NoOpLogger{}), &log.NoOpLogger{})

	pool := swapPool(sqedomain.PoolStatusSwapOnly)
	pool.StateData.NeedTakePnlPc = 400
	pool.StateData.NeedTakePnlCoin = 330

	inputs := swapInputs()
	inputs.PcVaultAmount += 400
	inputs.CoinVaultAmount += 330

	updated, result, err := usecase.ExecuteSwapBaseIn(pool, domain.SwapBaseIn{AmountIn: 10_000}, inputs)

	require.NoError(t, err)
	assert.Equal(t, uint64(11_975), result.AmountOut)

	// the newly accrued share stacks on top of the owed amounts
	assert.Equal(t, uint64(800), updated.StateData.NeedTakePnlPc)
	assert.Equal(t, uint64(660), updated.StateData.NeedTakePnlCoin)
}

func TestDispatch(t *testing.T) {
	tests := map[string]struct {
		instruction domain.Instruction

		expectError error
	}{
		"swap base in dispatches": {
			instruction: domain.SwapBaseIn{AmountIn: 10_000},
		},
		"swap base out unsupported": {
			instruction: domain.SwapBaseOut{MaxAmountIn: 1, AmountOut: 1},
			expectError: domain.UnsupportedInstructionError{InstructionKind: "swap_base_out"},
		},
		"deposit unsupported": {
			instruction: domain.Deposit{},
			expectError: domain.UnsupportedInstructionError{InstructionKind: "deposit"},
		},
		"withdraw pnl unsupported": {
			instruction: domain.WithdrawPnl{},
			expectError: domain.UnsupportedInstructionError{InstructionKind: "withdraw_pnl"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			usecase := settlementusecase.NewSettlementUsecase(orderbookusecase.NewBookAdapter(&log.NoOpLogger{}), &log.NoOpLogger{})

			_, result, err := usecase.Dispatch(tc.instruction, swapPool(sqedomain.PoolStatusSwapOnly), swapInputs())

			if tc.expectError != nil {
				require.Error(t, err)
				require.Equal(t, tc.expectError, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint64(11_975), result.AmountOut)
		})
	}
}
