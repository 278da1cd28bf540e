package usecase

import (
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/solstice-labs/sqe/domain"
	"github.com/solstice-labs/sqe/log"
	"github.com/solstice-labs/sqe/sqedomain"
	"github.com/solstice-labs/sqe/sqeutil"
)

type pricingUsecase struct {
	config domain.PricingConfig
	logger log.Logger
}

// NewPricingUsecase creates a new curve-quoted market pricing usecase.
func NewPricingUsecase(config domain.PricingConfig, logger log.Logger) *pricingUsecase {
	return &pricingUsecase{
		config: config,
		logger: logger,
	}
}

// AdmitMarket validates a decoded market record from untrusted input: the
// operator enabled flag must be set and both edge splines must satisfy their
// construction invariants under the configured ceilings. Quoting methods do
// not re-validate; every record must pass admission first.
func (u *pricingUsecase) AdmitMarket(marketKey domain.AccountKey, market *sqedomain.MarketAccount) error {
	if err := u.admitMarket(marketKey, market); err != nil {
		domain.SQEPricingMarketRejectedCounter.Inc()
		return err
	}
	return nil
}

func (u *pricingUsecase) admitMarket(marketKey domain.AccountKey, market *sqedomain.MarketAccount) error {
	if !market.IsEnabled() {
		return domain.MarketDisabledError{Market: marketKey}
	}

	if err := market.Config.SizeEdgeSpline.Validate(u.config.MaxSizeEdgeMilliBips); err != nil {
		return err
	}
	if err := market.Config.TimeEdgeSpline.Validate(u.config.MaxTimeEdgeMultiplierMillis); err != nil {
		return err
	}

	return nil
}

// Quote prices a single trade on a market: inventory-adjusted fair price,
// then the combined size/time/volatility edge applied as a cost deduction.
// Pure over its inputs; the market record is never mutated.
func (u *pricingUsecase) Quote(marketKey domain.AccountKey, market *sqedomain.MarketAccount, request domain.QuoteRequest) (domain.Quote, error) {
	quote, err := u.quote(marketKey, market, request)
	if err != nil {
		domain.SQEPricingQuoteErrorCounter.Inc()
		return domain.Quote{}, err
	}

	return quote, nil
}

func (u *pricingUsecase) quote(marketKey domain.AccountKey, market *sqedomain.MarketAccount, request domain.QuoteRequest) (domain.Quote, error) {
	if request.AmountIn == 0 {
		return domain.Quote{}, domain.ZeroTradeSizeError{}
	}

	if !market.IsEnabled() {
		return domain.Quote{}, domain.MarketDisabledError{Market: marketKey}
	}

	fairWithRetreat, err := fairPriceWithInventoryRetreat(market, request.BaseVaultAmount, request.QuoteVaultAmount)
	if err != nil {
		return domain.Quote{}, err
	}

	amountOut, err := swapAmountOut(market, request, fairWithRetreat)
	if err != nil {
		return domain.Quote{}, err
	}

	u.logger.Debug("priced quote",
		zap.Stringer("market", marketKey),
		zap.Uint64("amount_in", request.AmountIn),
		zap.Uint64("amount_out", amountOut),
		zap.Uint64("fair_price", fairWithRetreat),
		zap.Bool("is_quote_to_base", request.IsQuoteToBase),
	)

	return domain.Quote{
		Market:    marketKey,
		AmountIn:  request.AmountIn,
		AmountOut: amountOut,
		FairPrice: fairWithRetreat,
	}, nil
}

// fairPriceWithInventoryRetreat leans the oracle price away from the side the
// market is overexposed to: half the signed quote-equivalent imbalance is
// scaled by the retreat rate per reference amount, clamped to the configured
// band, and applied multiplicatively to the oracle price.
func fairPriceWithInventoryRetreat(market *sqedomain.MarketAccount, baseVaultAmount, quoteVaultAmount uint64) (uint64, error) {
	baseEquivQuoteAtoms, err := market.Price.SwapFairPriceConversion(baseVaultAmount, false, nil)
	if err != nil {
		return 0, err
	}

	// Half the signed imbalance, truncated toward zero.
	extraQuoteAtoms := osmomath.NewIntFromUint64(quoteVaultAmount).
		Sub(osmomath.NewIntFromUint64(baseEquivQuoteAtoms)).
		QuoRaw(2)

	if market.Config.RetreatQuoteAmount == 0 {
		return 0, domain.ArithmeticOverflowError{Op: "inventory retreat scale"}
	}
	milliBipsChange := extraQuoteAtoms.
		Mul(osmomath.NewIntFromUint64(market.Config.RetreatMilliBips)).
		Quo(osmomath.NewIntFromUint64(market.Config.RetreatQuoteAmount))

	maxUp := osmomath.NewIntFromUint64(market.Config.MaxRetreatUpMilliBips)
	maxDown := osmomath.NewIntFromUint64(market.Config.MaxRetreatDownMilliBips).Neg()
	if milliBipsChange.GT(maxUp) {
		milliBipsChange = maxUp
	}
	if milliBipsChange.LT(maxDown) {
		milliBipsChange = maxDown
	}

	scale := osmomath.NewInt(domain.MilliBipsScale)
	adjustedPrice := osmomath.NewIntFromUint64(market.Price.PriceQuoteAtomsPerBaseAtom).
		Mul(scale.Add(milliBipsChange)).
		Quo(scale)

	return sqeutil.Uint64FromInt(adjustedPrice, "retreat-adjusted price")
}

// clampEdgeMultiplier floors a thousandths-scaled multiplier at 1x and caps
// it at 100x so the combined edge product stays bounded.
func clampEdgeMultiplier(multiplierMillis uint64) uint64 {
	if multiplierMillis < domain.EdgeMultiplierUnitMillis {
		return domain.EdgeMultiplierUnitMillis
	}
	if multiplierMillis > domain.MaxEdgeMultiplierMillis {
		return domain.MaxEdgeMultiplierMillis
	}
	return multiplierMillis
}

// swapAmountOut converts the input at the retreat-adjusted fair price and
// deducts the combined edge.
func swapAmountOut(market *sqedomain.MarketAccount, request domain.QuoteRequest, fairWithRetreat uint64) (uint64, error) {
	fairAmountOut, err := market.Price.SwapFairPriceConversion(request.AmountIn, request.IsQuoteToBase, &fairWithRetreat)
	if err != nil {
		return 0, err
	}

	// Edges are sized in quote terms regardless of direction.
	effectiveQuoteAmount := fairAmountOut
	if request.IsQuoteToBase {
		effectiveQuoteAmount = request.AmountIn
	}

	sizeEdgeMilliBips := market.Config.SizeEdgeSpline.Eval(effectiveQuoteAmount)

	var staleness uint64
	if request.Slot > market.Price.PriceUpdatedSlot {
		staleness = request.Slot - market.Price.PriceUpdatedSlot
	}
	timeEdgeMillis := clampEdgeMultiplier(market.Config.TimeEdgeSpline.Eval(staleness))
	volEdgeMillis := clampEdgeMultiplier(market.Price.VolatilityMilliScale)

	// The two multipliers are in thousandths, so the triple product divides
	// by 1e9 to land back in milli-bips.
	edgeMilliBips := osmomath.NewIntFromUint64(sizeEdgeMilliBips).
		Mul(osmomath.NewIntFromUint64(timeEdgeMillis)).
		Mul(osmomath.NewIntFromUint64(volEdgeMillis)).
		Quo(osmomath.NewInt(1000 * 1000 * 1000))

	scale := osmomath.NewInt(domain.MilliBipsScale)
	if edgeMilliBips.GT(scale) {
		return 0, domain.EdgeExceedsScaleError{EdgeMilliBips: edgeMilliBips.String()}
	}

	amountOut := osmomath.NewIntFromUint64(fairAmountOut).
		Mul(scale.Sub(edgeMilliBips)).
		Quo(scale)

	return sqeutil.Uint64FromInt(amountOut, "edged amount out")
}
