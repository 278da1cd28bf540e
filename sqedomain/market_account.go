package sqedomain

import (
	"github.com/near/borsh-go"

	"github.com/solstice-labs/sqe/domain"
)

// MarketAccountSize is the exact byte length of the fixed-layout market
// record. Every field is fixed-width and explicitly padded, so the serialized
// form is identical to the producing platform's in-memory layout.
const MarketAccountSize = 2800

// MarketConfig holds the operator-set quoting parameters of a market.
// Padding fields carry no meaning and must be preserved verbatim.
type MarketConfig struct {
	Enabled                 uint8
	Padding0                [7]uint8
	SizeEdgeSpline          Spline
	TimeEdgeSpline          Spline
	RetreatMilliBips        uint64
	RetreatQuoteAmount      uint64
	MaxRetreatUpMilliBips   uint64
	MaxRetreatDownMilliBips uint64
	Padding1                [16]uint64
}

// MarketPrice is the oracle price record of a market.
type MarketPrice struct {
	// PriceDecimals is a signed decimal exponent applied to the raw
	// quote-atoms-per-base-atom price.
	PriceDecimals              int64
	PriceQuoteAtomsPerBaseAtom uint64
	PriceUpdatedSlot           uint64
	PriceUpdatedMs             uint64
	VolatilityMilliScale       uint64
	PriceLastValidSlot         uint64
	Padding0                   [15]uint64
}

// MarketAccount is the full fixed-layout record of a curve-quoted market.
type MarketAccount struct {
	Bump              uint8
	Padding0          [7]uint8
	Config            MarketConfig
	Price             MarketPrice
	Padding1          [64]domain.AccountKey
	BaseMint          domain.AccountKey
	QuoteMint         domain.AccountKey
	BaseMintDecimals  uint32
	QuoteMintDecimals uint32
	BaseVault         domain.AccountKey
	QuoteVault        domain.AccountKey
}

// DecodeMarketAccount decodes a raw market record. The input must be exactly
// MarketAccountSize bytes; anything else is not a market account.
func DecodeMarketAccount(data []byte) (*MarketAccount, error) {
	if len(data) != MarketAccountSize {
		return nil, InvalidMarketAccountSizeError{ActualSize: len(data), ExpectedSize: MarketAccountSize}
	}

	var market MarketAccount
	if err := borsh.Deserialize(&market, data); err != nil {
		return nil, err
	}

	return &market, nil
}

// Encode serializes the record back to its fixed layout. Decoding and
// re-encoding any valid record yields byte-identical output.
func (m *MarketAccount) Encode() ([]byte, error) {
	return borsh.Serialize(*m)
}

// IsEnabled returns whether the operator has enabled quoting on this market.
func (m *MarketAccount) IsEnabled() bool {
	return m.Config.Enabled != 0
}
