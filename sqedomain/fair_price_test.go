package sqedomain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solstice-labs/sqe/domain"
	"github.com/solstice-labs/sqe/sqedomain"
)

func TestSwapFairPriceConversion(t *testing.T) {
	tests := map[string]struct {
		price         sqedomain.MarketPrice
		amountIn      uint64
		isQuoteToBase bool
		priceOverride *uint64

		expected    uint64
		expectError bool
	}{
		"base to quote with negative exponent": {
			// 5 base atoms * 2000 / 10^3 = 10 quote atoms
			price: sqedomain.MarketPrice{
				PriceDecimals:              -3,
				PriceQuoteAtomsPerBaseAtom: 2_000,
			},
			amountIn: 5,
			expected: 10,
		},
		"quote to base with negative exponent": {
			// 10 quote atoms * 10^3 / 2000 = 5 base atoms
			price: sqedomain.MarketPrice{
				PriceDecimals:              -3,
				PriceQuoteAtomsPerBaseAtom: 2_000,
			},
			amountIn:      10,
			isQuoteToBase: true,
			expected:      5,
		},
		"base to quote with positive exponent": {
			// 2 base atoms * 3 * 10^2 = 600 quote atoms
			price: sqedomain.MarketPrice{
				PriceDecimals:              2,
				PriceQuoteAtomsPerBaseAtom: 3,
			},
			amountIn: 2,
			expected: 600,
		},
		"quote to base with positive exponent": {
			// 600 quote atoms / 10^2 / 3 = 2 base atoms
			price: sqedomain.MarketPrice{
				PriceDecimals:              2,
				PriceQuoteAtomsPerBaseAtom: 3,
			},
			amountIn:      600,
			isQuoteToBase: true,
			expected:      2,
		},
		"zero exponent is identity scale": {
			price: sqedomain.MarketPrice{
				PriceDecimals:              0,
				PriceQuoteAtomsPerBaseAtom: 1_000,
			},
			amountIn: 7,
			expected: 7_000,
		},
		"quote to base truncates toward zero": {
			// 3 * 10^3 / 2000 = 1.5 truncates to 1
			price: sqedomain.MarketPrice{
				PriceDecimals:              -3,
				PriceQuoteAtomsPerBaseAtom: 2_000,
			},
			amountIn:      3,
			isQuoteToBase: true,
			expected:      1,
		},
		"price override takes precedence": {
			price: sqedomain.MarketPrice{
				PriceDecimals:              0,
				PriceQuoteAtomsPerBaseAtom: 1_000,
			},
			amountIn:      5,
			priceOverride: uint64Ptr(2_000),
			expected:      10_000,
		},
		"zero price fails quote to base": {
			price: sqedomain.MarketPrice{
				PriceDecimals:              0,
				PriceQuoteAtomsPerBaseAtom: 0,
			},
			amountIn:      10,
			isQuoteToBase: true,
			expectError:   true,
		},
		"exponent magnitude beyond 64-bit scale fails": {
			price: sqedomain.MarketPrice{
				PriceDecimals:              20,
				PriceQuoteAtomsPerBaseAtom: 1,
			},
			amountIn:    1,
			expectError: true,
		},
		"result beyond uint64 fails": {
			price: sqedomain.MarketPrice{
				PriceDecimals:              19,
				PriceQuoteAtomsPerBaseAtom: 1 << 60,
			},
			amountIn:    1 << 60,
			expectError: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			actual, err := tc.price.SwapFairPriceConversion(tc.amountIn, tc.isQuoteToBase, tc.priceOverride)

			if tc.expectError {
				require.Error(t, err)
				assert.IsType(t, domain.ArithmeticOverflowError{}, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}
