package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solstice-labs/sqe/domain"
	"github.com/solstice-labs/sqe/sqedomain"
)

func newDecodeMarketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode-market",
		Short: "Decode a market account record and print its fields",
		RunE:  runDecodeMarket,
	}

	cmd.Flags().String("market", "", "market account binary file")

	return cmd
}

type splineSummary struct {
	X []uint64 `json:"x"`
	Y []uint64 `json:"y"`
}

type marketSummary struct {
	Enabled bool `json:"enabled"`

	BaseMint          domain.AccountKey `json:"base_mint"`
	QuoteMint         domain.AccountKey `json:"quote_mint"`
	BaseMintDecimals  uint32            `json:"base_mint_decimals"`
	QuoteMintDecimals uint32            `json:"quote_mint_decimals"`
	BaseVault         domain.AccountKey `json:"base_vault"`
	QuoteVault        domain.AccountKey `json:"quote_vault"`

	PriceDecimals              int64  `json:"price_decimals"`
	PriceQuoteAtomsPerBaseAtom uint64 `json:"price_quote_atoms_per_base_atom"`
	PriceUpdatedSlot           uint64 `json:"price_updated_slot"`
	PriceUpdatedMs             uint64 `json:"price_updated_ms"`
	VolatilityMilliScale       uint64 `json:"volatility_milli_scale"`
	PriceLastValidSlot         uint64 `json:"price_last_valid_slot"`

	RetreatMilliBips        uint64 `json:"retreat_milli_bips"`
	RetreatQuoteAmount      uint64 `json:"retreat_quote_amount"`
	MaxRetreatUpMilliBips   uint64 `json:"max_retreat_up_milli_bips"`
	MaxRetreatDownMilliBips uint64 `json:"max_retreat_down_milli_bips"`

	SizeEdgeSpline splineSummary `json:"size_edge_spline"`
	TimeEdgeSpline splineSummary `json:"time_edge_spline"`
}

func summarizeSpline(s sqedomain.Spline) splineSummary {
	knots := s.Len
	if knots > sqedomain.MaxSplineKnots {
		knots = sqedomain.MaxSplineKnots
	}
	return splineSummary{X: s.X[:knots], Y: s.Y[:knots]}
}

func summarizeMarket(market *sqedomain.MarketAccount) marketSummary {
	return marketSummary{
		Enabled: market.IsEnabled(),

		BaseMint:          market.BaseMint,
		QuoteMint:         market.QuoteMint,
		BaseMintDecimals:  market.BaseMintDecimals,
		QuoteMintDecimals: market.QuoteMintDecimals,
		BaseVault:         market.BaseVault,
		QuoteVault:        market.QuoteVault,

		PriceDecimals:              market.Price.PriceDecimals,
		PriceQuoteAtomsPerBaseAtom: market.Price.PriceQuoteAtomsPerBaseAtom,
		PriceUpdatedSlot:           market.Price.PriceUpdatedSlot,
		PriceUpdatedMs:             market.Price.PriceUpdatedMs,
		VolatilityMilliScale:       market.Price.VolatilityMilliScale,
		PriceLastValidSlot:         market.Price.PriceLastValidSlot,

		RetreatMilliBips:        market.Config.RetreatMilliBips,
		RetreatQuoteAmount:      market.Config.RetreatQuoteAmount,
		MaxRetreatUpMilliBips:   market.Config.MaxRetreatUpMilliBips,
		MaxRetreatDownMilliBips: market.Config.MaxRetreatDownMilliBips,

		SizeEdgeSpline: summarizeSpline(market.Config.SizeEdgeSpline),
		TimeEdgeSpline: summarizeSpline(market.Config.TimeEdgeSpline),
	}
}

func runDecodeMarket(cmd *cobra.Command, _ []string) error {
	marketPath, _ := cmd.Flags().GetString("market")
	if marketPath == "" {
		return fmt.Errorf("market file is required")
	}

	data, err := os.ReadFile(marketPath)
	if err != nil {
		return err
	}

	market, err := sqedomain.DecodeMarketAccount(data)
	if err != nil {
		return err
	}

	// Padding must survive a round-trip byte for byte.
	reencoded, err := market.Encode()
	if err != nil {
		return err
	}
	if !bytes.Equal(data, reencoded) {
		return fmt.Errorf("market record does not round-trip byte-exact")
	}

	return printJSON(summarizeMarket(market))
}
