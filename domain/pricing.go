package domain

const (
	// MilliBipsScale is one hundred percent expressed in milli-bips
	// (one ten-millionth units of proportion).
	MilliBipsScale = 10_000_000

	// MaxEdgeMultiplierMillis caps the time and volatility edge multipliers
	// at 100x (expressed in thousandths) to bound overflow in the combined
	// edge computation.
	MaxEdgeMultiplierMillis = 100 * 1000

	// EdgeMultiplierUnitMillis is a 1.0x multiplier in thousandths. The time
	// and volatility multipliers are floored here so they can only widen the
	// spread, never tighten it.
	EdgeMultiplierUnitMillis = 1000
)

// QuoteRequest asks the pricing engine for an amount out on a curve-quoted
// market, given a vault snapshot taken at Slot.
type QuoteRequest struct {
	AmountIn      uint64 `json:"amount_in"`
	IsQuoteToBase bool   `json:"is_quote_to_base"`
	Slot          uint64 `json:"slot"`

	BaseVaultAmount  uint64 `json:"base_vault_amount"`
	QuoteVaultAmount uint64 `json:"quote_vault_amount"`
}

// Quote is the result of pricing a single market.
type Quote struct {
	Market    AccountKey `json:"market"`
	AmountIn  uint64     `json:"amount_in"`
	AmountOut uint64     `json:"amount_out"`
	// FairPrice is the inventory-adjusted quote-atoms-per-base-atom price the
	// quote was derived from, before edge.
	FairPrice uint64 `json:"fair_price"`
}
