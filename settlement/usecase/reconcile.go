package usecase

import (
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/solstice-labs/sqe/domain"
	"github.com/solstice-labs/sqe/sqedomain"
	"github.com/solstice-labs/sqe/sqeutil"
)

// reconcileTakePnl computes the tradable reserve totals net of accrued but
// unextracted profit.
//
// Detailed calculation:
//  1. the baseline invariant is the snapshot product x_ref * y_ref
//  2. the current price ratio is total_pc / total_coin
//  3. x2 = isqrt(x_ref * y_ref * total_pc / total_coin) is the pc reserve
//     that preserves the baseline invariant at the current price
//  4. y2 = x2 * total_coin / total_pc
//  5. (total_pc - x2, total_coin - y2) is the newly accrued profit
//
// The operator's share of that profit is recorded on the pool's owed-profit
// counters and subtracted from the totals before they are returned. If the
// invariant did not grow, reserves moved without a trade and reconciliation
// fails with an InvariantViolationError.
func reconcileTakePnl(pool *sqedomain.PoolState, snapshot *sqedomain.ProfitSnapshot, totalPc, totalCoin uint64) (uint64, uint64, error) {
	x1 := osmomath.NewIntFromUint64(totalPc)
	y1 := osmomath.NewIntFromUint64(totalCoin)

	currentProduct := x1.Mul(y1)
	snapshotProduct := snapshot.XRef.Mul(snapshot.YRef)

	if currentProduct.LT(snapshotProduct) {
		domain.SQESettlementInvariantViolationCounter.Inc()
		return 0, 0, domain.InvariantViolationError{
			CurrentProduct:  currentProduct.String(),
			SnapshotProduct: snapshotProduct.String(),
		}
	}

	// With an empty reserve on either side the price ratio is undefined and
	// there is no profit to carve out.
	if totalPc == 0 || totalCoin == 0 {
		return totalPc, totalCoin, nil
	}

	x2 := sqeutil.IntegerSqrt(snapshotProduct.Mul(x1).Quo(y1))
	y2 := x2.Mul(y1).Quo(x1)

	diffX, err := sqeutil.Uint64FromInt(x1.Sub(x2), "pnl pc diff")
	if err != nil {
		return 0, 0, err
	}
	diffY, err := sqeutil.Uint64FromInt(y1.Sub(y2), "pnl coin diff")
	if err != nil {
		return 0, 0, err
	}

	shareNum := osmomath.NewIntFromUint64(pool.Fees.ProfitShareNumerator)
	shareDen := osmomath.NewIntFromUint64(pool.Fees.ProfitShareDenominator)

	pcPnl, err := sqeutil.Uint64FromInt(osmomath.NewIntFromUint64(diffX).Mul(shareNum).Quo(shareDen), "pc pnl share")
	if err != nil {
		return 0, 0, err
	}
	coinPnl, err := sqeutil.Uint64FromInt(osmomath.NewIntFromUint64(diffY).Mul(shareNum).Quo(shareDen), "coin pnl share")
	if err != nil {
		return 0, 0, err
	}

	// A zero share on either side rounds the whole extraction away so the
	// counters and totals stay untouched.
	if pcPnl == 0 || coinPnl == 0 {
		return totalPc, totalCoin, nil
	}

	if pool.StateData.TotalPnlPc, err = sqeutil.AddUint64(pool.StateData.TotalPnlPc, diffX, "total pnl pc"); err != nil {
		return 0, 0, err
	}
	if pool.StateData.TotalPnlCoin, err = sqeutil.AddUint64(pool.StateData.TotalPnlCoin, diffY, "total pnl coin"); err != nil {
		return 0, 0, err
	}
	if pool.StateData.NeedTakePnlPc, err = sqeutil.AddUint64(pool.StateData.NeedTakePnlPc, pcPnl, "need take pnl pc"); err != nil {
		return 0, 0, err
	}
	if pool.StateData.NeedTakePnlCoin, err = sqeutil.AddUint64(pool.StateData.NeedTakePnlCoin, coinPnl, "need take pnl coin"); err != nil {
		return 0, 0, err
	}

	tradablePc, err := sqeutil.SubUint64(totalPc, pcPnl, "tradable pc")
	if err != nil {
		return 0, 0, err
	}
	tradableCoin, err := sqeutil.SubUint64(totalCoin, coinPnl, "tradable coin")
	if err != nil {
		return 0, 0, err
	}

	return tradablePc, tradableCoin, nil
}

// swapAmountOut applies the constant-product formula in the requested
// direction: floor(amount_in_net * reserve_out / (reserve_in + amount_in_net)).
// Always floored, never in the trader's favor.
func swapAmountOut(amountInNet, reserveIn, reserveOut uint64) (uint64, error) {
	netInt := osmomath.NewIntFromUint64(amountInNet)

	denominator := osmomath.NewIntFromUint64(reserveIn).Add(netInt)
	if denominator.IsZero() {
		return 0, domain.InsufficientLiquidityError{AmountOut: 0, Available: reserveOut}
	}

	out := netInt.Mul(osmomath.NewIntFromUint64(reserveOut)).Quo(denominator)

	return sqeutil.Uint64FromInt(out, "swap amount out")
}
