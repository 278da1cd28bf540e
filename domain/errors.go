package domain

import (
	"fmt"
)

// InvalidPoolStatusError is returned when the pool status (or its time gate)
// forbids swapping at the supplied time.
type InvalidPoolStatusError struct {
	Status      uint64
	CurrentTime uint64
}

func (e InvalidPoolStatusError) Error() string {
	return fmt.Sprintf("pool status (%d) does not permit swapping at time (%d)", e.Status, e.CurrentTime)
}

// InvalidUserTokenError is returned when the source/destination token pair
// matches neither vault pairing of the pool.
type InvalidUserTokenError struct {
	SourceMint      AccountKey
	DestinationMint AccountKey
}

func (e InvalidUserTokenError) Error() string {
	return fmt.Sprintf("source mint (%s) and destination mint (%s) do not match the pool vault mints", e.SourceMint, e.DestinationMint)
}

// ZeroTradeSizeError is returned when the swap input amount is zero.
type ZeroTradeSizeError struct{}

func (e ZeroTradeSizeError) Error() string {
	return "swap amount in must be positive"
}

// FeeExceedsAmountInError is returned when the charged fee does not leave a
// positive net input.
type FeeExceedsAmountInError struct {
	AmountIn uint64
	Fee      uint64
}

func (e FeeExceedsAmountInError) Error() string {
	return fmt.Sprintf("swap fee (%d) exceeds amount in (%d)", e.Fee, e.AmountIn)
}

// InsufficientLiquidityError is returned when the computed output would
// consume the entire opposing reserve.
type InsufficientLiquidityError struct {
	AmountOut uint64
	Available uint64
}

func (e InsufficientLiquidityError) Error() string {
	return fmt.Sprintf("amount out (%d) exhausts available reserve (%d)", e.AmountOut, e.Available)
}

// ExceededSlippageError is returned when the computed output is below the
// caller's minimum acceptable amount out.
type ExceededSlippageError struct {
	AmountOut        uint64
	MinimumAmountOut uint64
}

func (e ExceededSlippageError) Error() string {
	return fmt.Sprintf("amount out (%d) is below the minimum amount out (%d)", e.AmountOut, e.MinimumAmountOut)
}

// ArithmeticOverflowError is returned when a checked operation exceeds its
// domain. Op names the step that overflowed.
type ArithmeticOverflowError struct {
	Op string
}

func (e ArithmeticOverflowError) Error() string {
	return fmt.Sprintf("arithmetic overflow in (%s)", e.Op)
}

// InvariantViolationError is returned when profit reconciliation finds the
// constant-product invariant shrank relative to the last extraction snapshot.
// This implies reserves moved without a corresponding trade and is a logic
// error, not a recoverable condition.
type InvariantViolationError struct {
	CurrentProduct  string
	SnapshotProduct string
}

func (e InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant product (%s) shrank below the profit snapshot product (%s)", e.CurrentProduct, e.SnapshotProduct)
}

// RestingLiquidityNotClearedError is returned when the side of the book being
// drained by a swap still has the pool's own resting orders on it. Cancelling
// them is a precondition owned by the external order-management collaborator.
type RestingLiquidityNotClearedError struct {
	Direction     SwapDirection
	RestingOrders int
}

func (e RestingLiquidityNotClearedError) Error() string {
	return fmt.Sprintf("swap (%s) requires the consumed book side to be cleared first, found (%d) resting orders", e.Direction, e.RestingOrders)
}

// UnsupportedInstructionError is returned when dispatching an instruction
// variant the engine does not implement.
type UnsupportedInstructionError struct {
	InstructionKind string
}

func (e UnsupportedInstructionError) Error() string {
	return fmt.Sprintf("instruction (%s) is not supported", e.InstructionKind)
}

// MarketDisabledError is returned when quoting against a market whose
// enabled flag is not set.
type MarketDisabledError struct {
	Market AccountKey
}

func (e MarketDisabledError) Error() string {
	return fmt.Sprintf("market (%s) is disabled", e.Market)
}

// EdgeExceedsScaleError is returned when the combined edge is at or above
// 100%, which would produce a non-positive amount out.
type EdgeExceedsScaleError struct {
	EdgeMilliBips string
}

func (e EdgeExceedsScaleError) Error() string {
	return fmt.Sprintf("combined edge (%s) milli-bips exceeds the full scale", e.EdgeMilliBips)
}
