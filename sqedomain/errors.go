package sqedomain

import "fmt"

type InvalidMarketAccountSizeError struct {
	ActualSize   int
	ExpectedSize int
}

func (e InvalidMarketAccountSizeError) Error() string {
	return fmt.Sprintf("market account data is (%d) bytes, expected (%d)", e.ActualSize, e.ExpectedSize)
}

type InvalidSplineLengthError struct {
	Len uint64
}

func (e InvalidSplineLengthError) Error() string {
	return fmt.Sprintf("spline length (%d) must be in [1, %d]", e.Len, MaxSplineKnots)
}

type SplineOriginNotZeroError struct {
	X0 uint64
}

func (e SplineOriginNotZeroError) Error() string {
	return fmt.Sprintf("spline x[0] (%d) must be 0", e.X0)
}

type SplineNotMonotonicError struct {
	Index int
}

func (e SplineNotMonotonicError) Error() string {
	return fmt.Sprintf("spline knots at index (%d, %d) must be strictly increasing in both x and y", e.Index, e.Index+1)
}

type SplineValueExceedsMaxError struct {
	Index    int
	Value    uint64
	MaxValue uint64
}

func (e SplineValueExceedsMaxError) Error() string {
	return fmt.Sprintf("spline y[%d] (%d) exceeds the maximum value (%d)", e.Index, e.Value, e.MaxValue)
}

type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("pool state record is missing required field (%s)", e.Field)
}

type UnsupportedVersionError struct {
	Version uint32
}

func (e UnsupportedVersionError) Error() string {
	return fmt.Sprintf("pool state record version (%d) is not supported", e.Version)
}

type InvalidFeeError struct {
	Numerator   uint64
	Denominator uint64
}

func (e InvalidFeeError) Error() string {
	return fmt.Sprintf("fee ratio (%d/%d) is invalid", e.Numerator, e.Denominator)
}

type InvalidPoolStatusValueError struct {
	Status uint64
}

func (e InvalidPoolStatusValueError) Error() string {
	return fmt.Sprintf("pool status value (%d) is unknown", e.Status)
}

type InvalidProfitSnapshotError struct {
	Reason string
}

func (e InvalidProfitSnapshotError) Error() string {
	return fmt.Sprintf("profit snapshot is invalid: %s", e.Reason)
}
