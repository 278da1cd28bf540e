package domain

// SwapDirection is the direction of a swap against a pool's two vaults.
type SwapDirection int

const (
	// SwapDirectionCoinToPc sells the base (coin) token into the pool for the quote (pc) token.
	SwapDirectionCoinToPc SwapDirection = iota + 1
	// SwapDirectionPcToCoin sells the quote (pc) token into the pool for the base (coin) token.
	SwapDirectionPcToCoin
)

// String implements fmt.Stringer.
func (d SwapDirection) String() string {
	switch d {
	case SwapDirectionCoinToPc:
		return "coin2pc"
	case SwapDirectionPcToCoin:
		return "pc2coin"
	default:
		return "unknown"
	}
}

// SwapResult is the outcome of a successfully settled swap.
type SwapResult struct {
	Direction SwapDirection `json:"direction"`
	AmountIn  uint64        `json:"amount_in"`
	AmountOut uint64        `json:"amount_out"`
	Fee       uint64        `json:"fee"`
}

// Instruction is the tagged union of settlement program instructions.
// Only SwapBaseIn is meaningfully implemented; dispatching any other
// variant yields an explicit UnsupportedInstructionError rather than a
// silent success.
type Instruction interface {
	Kind() string

	isInstruction()
}

// SwapBaseIn swaps an exact input amount for at least MinimumAmountOut.
type SwapBaseIn struct {
	AmountIn         uint64 `json:"amount_in"`
	MinimumAmountOut uint64 `json:"minimum_amount_out"`
}

// SwapBaseOut swaps at most MaxAmountIn for an exact output amount.
type SwapBaseOut struct {
	MaxAmountIn uint64 `json:"max_amount_in"`
	AmountOut   uint64 `json:"amount_out"`
}

// Initialize initializes a new pool.
type Initialize struct{}

// Deposit adds liquidity to a pool.
type Deposit struct{}

// Withdraw removes liquidity from a pool.
type Withdraw struct{}

// WithdrawPnl extracts accrued profit owed to the pool operator.
type WithdrawPnl struct{}

func (SwapBaseIn) Kind() string  { return "swap_base_in" }
func (SwapBaseOut) Kind() string { return "swap_base_out" }
func (Initialize) Kind() string  { return "initialize" }
func (Deposit) Kind() string     { return "deposit" }
func (Withdraw) Kind() string    { return "withdraw" }
func (WithdrawPnl) Kind() string { return "withdraw_pnl" }

func (SwapBaseIn) isInstruction()  {}
func (SwapBaseOut) isInstruction() {}
func (Initialize) isInstruction()  {}
func (Deposit) isInstruction()     {}
func (Withdraw) isInstruction()    {}
func (WithdrawPnl) isInstruction() {}
