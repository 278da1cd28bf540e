package sqedomain

import (
	"encoding/json"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/solstice-labs/sqe/domain"
)

// PoolStateVersion is the only pool record version this engine understands.
const PoolStateVersion = 1

// PoolStatus is the lifecycle state of a settlement pool.
type PoolStatus uint64

const (
	PoolStatusUninitialized PoolStatus = iota
	PoolStatusInitialized
	PoolStatusDisabled
	PoolStatusWaitingTrade
	PoolStatusSwapOnly
	PoolStatusOrderBookOnly
)

// String implements fmt.Stringer.
func (s PoolStatus) String() string {
	switch s {
	case PoolStatusUninitialized:
		return "uninitialized"
	case PoolStatusInitialized:
		return "initialized"
	case PoolStatusDisabled:
		return "disabled"
	case PoolStatusWaitingTrade:
		return "waiting_trade"
	case PoolStatusSwapOnly:
		return "swap_only"
	case PoolStatusOrderBookOnly:
		return "orderbook_only"
	default:
		return "unknown"
	}
}

// SwapPermitted reports whether the status allows swapping outright.
// WaitingTrade is additionally gated by the pool open time.
func (s PoolStatus) SwapPermitted() bool {
	switch s {
	case PoolStatusInitialized, PoolStatusWaitingTrade, PoolStatusSwapOnly:
		return true
	default:
		return false
	}
}

// OrderbookPermitted reports whether the pool participates in the external
// order book, which determines whether resting-order exposure is part of the
// tradable reserve totals.
func (s PoolStatus) OrderbookPermitted() bool {
	switch s {
	case PoolStatusInitialized, PoolStatusWaitingTrade, PoolStatusOrderBookOnly:
		return true
	default:
		return false
	}
}

// PoolFees holds the swap fee and the operator profit-share ratios.
type PoolFees struct {
	SwapFeeNumerator       uint64 `json:"swap_fee_numerator"`
	SwapFeeDenominator     uint64 `json:"swap_fee_denominator"`
	ProfitShareNumerator   uint64 `json:"profit_share_numerator"`
	ProfitShareDenominator uint64 `json:"profit_share_denominator"`
}

// Validate rejects degenerate ratios. Fee and share ratios must both be
// proper fractions so they can never consume the full amount.
func (f PoolFees) Validate() error {
	if f.SwapFeeDenominator == 0 || f.SwapFeeNumerator >= f.SwapFeeDenominator {
		return InvalidFeeError{Numerator: f.SwapFeeNumerator, Denominator: f.SwapFeeDenominator}
	}
	if f.ProfitShareDenominator == 0 || f.ProfitShareNumerator > f.ProfitShareDenominator {
		return InvalidFeeError{Numerator: f.ProfitShareNumerator, Denominator: f.ProfitShareDenominator}
	}
	return nil
}

// PoolStateData holds the running counters and scheduling fields of a pool.
// Counters are monotonically non-decreasing; every increment is checked.
// Cumulative volumes can exceed uint64 over a pool's lifetime, so they are
// kept widened.
type PoolStateData struct {
	SwapCoinInAmount  osmomath.Int `json:"swap_coin_in_amount"`
	SwapPcOutAmount   osmomath.Int `json:"swap_pc_out_amount"`
	SwapPcInAmount    osmomath.Int `json:"swap_pc_in_amount"`
	SwapCoinOutAmount osmomath.Int `json:"swap_coin_out_amount"`

	SwapAccCoinFee uint64 `json:"swap_acc_coin_fee"`
	SwapAccPcFee   uint64 `json:"swap_acc_pc_fee"`

	TotalPnlPc      uint64 `json:"total_pnl_pc"`
	TotalPnlCoin    uint64 `json:"total_pnl_coin"`
	NeedTakePnlPc   uint64 `json:"need_take_pnl_pc"`
	NeedTakePnlCoin uint64 `json:"need_take_pnl_coin"`

	// PoolOpenTime gates the WaitingTrade status.
	PoolOpenTime uint64 `json:"pool_open_time"`
	// OrderbookToInitTime is when OrderBookOnly reverts to full trading.
	OrderbookToInitTime uint64 `json:"orderbook_to_init_time"`
}

// PoolState is the settlement program's pool record. The byte layout is owned
// by the external program; this engine consumes it as a versioned record and
// validates field presence at load time.
type PoolState struct {
	Version uint32     `json:"version"`
	Status  PoolStatus `json:"status"`

	Fees      PoolFees      `json:"fees"`
	StateData PoolStateData `json:"state_data"`

	CoinMint  domain.AccountKey `json:"coin_mint"`
	PcMint    domain.AccountKey `json:"pc_mint"`
	CoinVault domain.AccountKey `json:"coin_vault"`
	PcVault   domain.AccountKey `json:"pc_vault"`
}

// LoadPoolState decodes and validates a pool record from untrusted input.
func LoadPoolState(data []byte) (*PoolState, error) {
	var pool PoolState
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, err
	}

	if err := pool.Validate(); err != nil {
		return nil, err
	}

	return &pool, nil
}

// Validate checks the version, status, fee ratios and counter presence.
func (p *PoolState) Validate() error {
	if p.Version != PoolStateVersion {
		return UnsupportedVersionError{Version: p.Version}
	}

	if p.Status > PoolStatusOrderBookOnly {
		return InvalidPoolStatusValueError{Status: uint64(p.Status)}
	}

	if err := p.Fees.Validate(); err != nil {
		return err
	}

	counters := map[string]osmomath.Int{
		"state_data.swap_coin_in_amount":  p.StateData.SwapCoinInAmount,
		"state_data.swap_pc_out_amount":   p.StateData.SwapPcOutAmount,
		"state_data.swap_pc_in_amount":    p.StateData.SwapPcInAmount,
		"state_data.swap_coin_out_amount": p.StateData.SwapCoinOutAmount,
	}
	for field, counter := range counters {
		if counter.IsNil() || counter.IsNegative() {
			return MissingFieldError{Field: field}
		}
	}

	return nil
}

// Clone returns a copy that can be mutated without observing partial updates
// on the original. Counter values are immutable, so a shallow copy suffices.
func (p *PoolState) Clone() *PoolState {
	clone := *p
	return &clone
}

// ProfitSnapshot is the last recorded reserve pair at which profit was
// extracted. The product XRef*YRef is the baseline invariant for detecting
// new profit.
type ProfitSnapshot struct {
	// XRef is the pc-side reserve total at the last extraction.
	XRef osmomath.Int `json:"x_ref"`
	// YRef is the coin-side reserve total at the last extraction.
	YRef osmomath.Int `json:"y_ref"`
}

// Validate checks field presence.
func (s *ProfitSnapshot) Validate() error {
	if s.XRef.IsNil() || s.YRef.IsNil() {
		return InvalidProfitSnapshotError{Reason: "reference reserves are unset"}
	}
	if s.XRef.IsNegative() || s.YRef.IsNegative() {
		return InvalidProfitSnapshotError{Reason: "reference reserves are negative"}
	}
	return nil
}
