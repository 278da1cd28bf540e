// Package sqeutil contains checked fixed-point arithmetic helpers shared by
// the settlement and pricing engines. All widening is done in osmomath.Int
// (256-bit) and every narrowing back to uint64 fails explicitly instead of
// truncating.
package sqeutil

import (
	"math/big"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/solstice-labs/sqe/domain"
)

var maxUint64 = osmomath.NewIntFromBigInt(new(big.Int).SetUint64(^uint64(0)))

// MulUint64 widens both operands and multiplies. A product of two uint64
// values always fits in the widened domain.
func MulUint64(a, b uint64) osmomath.Int {
	return osmomath.NewIntFromUint64(a).Mul(osmomath.NewIntFromUint64(b))
}

// Uint64FromInt narrows a widened value back to uint64, failing with an
// ArithmeticOverflowError naming op if the value is negative or does not fit.
func Uint64FromInt(v osmomath.Int, op string) (uint64, error) {
	if v.IsNegative() || v.GT(maxUint64) {
		return 0, domain.ArithmeticOverflowError{Op: op}
	}
	return v.BigInt().Uint64(), nil
}

// AddUint64 adds two uint64 values, failing on wraparound.
func AddUint64(a, b uint64, op string) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, domain.ArithmeticOverflowError{Op: op}
	}
	return sum, nil
}

// SubUint64 subtracts b from a, failing if the result would be negative.
func SubUint64(a, b uint64, op string) (uint64, error) {
	if b > a {
		return 0, domain.ArithmeticOverflowError{Op: op}
	}
	return a - b, nil
}

// CeilDiv divides n by d rounding up. d must be positive.
func CeilDiv(n, d osmomath.Int) osmomath.Int {
	return n.Add(d.Sub(osmomath.OneInt())).Quo(d)
}

// IntegerSqrt returns the floor of the square root of v.
func IntegerSqrt(v osmomath.Int) osmomath.Int {
	return osmomath.NewIntFromBigInt(new(big.Int).Sqrt(v.BigInt()))
}

// PowerOfTen returns 10^exp in the widened domain.
func PowerOfTen(exp uint64) osmomath.Int {
	return osmomath.NewIntFromBigInt(new(big.Int).Exp(big.NewInt(10), new(big.Int).SetUint64(exp), nil))
}
