package sqedomain

import (
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/solstice-labs/sqe/domain"
	"github.com/solstice-labs/sqe/sqeutil"
)

// maxPriceDecimalMagnitude bounds the decimal exponent so 10^|exponent| stays
// within the producing platform's 64-bit scale.
const maxPriceDecimalMagnitude = 19

// SwapFairPriceConversion converts between base and quote atoms at this
// record's oracle price, or at priceOverride when supplied. The decimal scale
// is applied multiply-first when it raises precision headroom and divide-first
// otherwise; both directions truncate toward zero and fail on overflow
// instead of wrapping.
func (p *MarketPrice) SwapFairPriceConversion(amountIn uint64, isQuoteToBase bool, priceOverride *uint64) (uint64, error) {
	price := p.PriceQuoteAtomsPerBaseAtom
	if priceOverride != nil {
		price = *priceOverride
	}

	var magnitude uint64
	if p.PriceDecimals < 0 {
		magnitude = uint64(-(p.PriceDecimals + 1)) + 1
	} else {
		magnitude = uint64(p.PriceDecimals)
	}
	if magnitude > maxPriceDecimalMagnitude {
		return 0, domain.ArithmeticOverflowError{Op: "price decimal scale"}
	}
	decimalScale := sqeutil.PowerOfTen(magnitude)

	if isQuoteToBase {
		baseAtomsOut := osmomath.NewIntFromUint64(amountIn)
		if p.PriceDecimals < 0 {
			baseAtomsOut = baseAtomsOut.Mul(decimalScale)
		} else {
			baseAtomsOut = baseAtomsOut.Quo(decimalScale)
		}

		if price == 0 {
			return 0, domain.ArithmeticOverflowError{Op: "base atoms out"}
		}
		baseAtomsOut = baseAtomsOut.Quo(osmomath.NewIntFromUint64(price))

		return sqeutil.Uint64FromInt(baseAtomsOut, "base atoms out")
	}

	quoteAtomsOut := osmomath.NewIntFromUint64(amountIn).Mul(osmomath.NewIntFromUint64(price))
	if p.PriceDecimals > 0 {
		quoteAtomsOut = quoteAtomsOut.Mul(decimalScale)
	} else {
		quoteAtomsOut = quoteAtomsOut.Quo(decimalScale)
	}

	return sqeutil.Uint64FromInt(quoteAtomsOut, "quote atoms out")
}
