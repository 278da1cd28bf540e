package sqedomain

import (
	"github.com/osmosis-labs/osmosis/osmomath"
)

// MaxSplineKnots is the fixed capacity of a spline's control point arrays.
const MaxSplineKnots = 8

// Spline is a piecewise-linear monotone curve over unsigned fixed-point
// coordinates. Only the first Len knots are meaningful; x-coordinates start
// at 0 and both coordinates are strictly increasing.
type Spline struct {
	X   [MaxSplineKnots]uint64
	Y   [MaxSplineKnots]uint64
	Len uint64
}

// Validate enforces the construction invariants. It must be called whenever a
// market record is admitted from untrusted input; Eval does not re-validate.
// maxValue is the caller-supplied ceiling on y-coordinates.
func (s *Spline) Validate(maxValue uint64) error {
	if s.Len == 0 || s.Len > MaxSplineKnots {
		return InvalidSplineLengthError{Len: s.Len}
	}

	if s.X[0] != 0 {
		return SplineOriginNotZeroError{X0: s.X[0]}
	}

	for i := 0; i < int(s.Len); i++ {
		if i+1 < int(s.Len) && (s.X[i+1] <= s.X[i] || s.Y[i+1] <= s.Y[i]) {
			return SplineNotMonotonicError{Index: i}
		}
		if s.Y[i] > maxValue {
			return SplineValueExceedsMaxError{Index: i, Value: s.Y[i], MaxValue: maxValue}
		}
	}

	return nil
}

// Eval is a piecewise-linear lookup. For x at or below the first knot it
// returns the first y; beyond the last knot, the last y. Inside a segment it
// interpolates linearly with round-half-up integer division, widening the
// intermediate product so it cannot wrap.
func (s *Spline) Eval(x uint64) uint64 {
	if s.Len == 0 {
		return 0
	}

	for i := 0; i < int(s.Len)-1; i++ {
		x1, y1 := s.X[i], s.Y[i]
		x2, y2 := s.X[i+1], s.Y[i+1]

		if x <= x1 {
			return y1
		}

		if x < x2 {
			dx := x2 - x1
			dy := y2 - y1
			offset := x - x1

			// interpolated delta is at most dy, so narrowing cannot fail
			interp := osmomath.NewIntFromUint64(dy).
				Mul(osmomath.NewIntFromUint64(offset)).
				Add(osmomath.NewIntFromUint64(dx / 2)).
				Quo(osmomath.NewIntFromUint64(dx))

			return y1 + interp.Uint64()
		}
	}

	return s.Y[s.Len-1]
}
