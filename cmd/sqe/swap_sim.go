package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solstice-labs/sqe/domain"
	orderbookusecase "github.com/solstice-labs/sqe/orderbook/usecase"
	settlementusecase "github.com/solstice-labs/sqe/settlement/usecase"
	"github.com/solstice-labs/sqe/sqedomain"
)

func newSwapSimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap-sim",
		Short: "Settle a swap against a pool state snapshot",
		RunE:  runSwapSim,
	}

	cmd.Flags().String("scenario", "", "scenario JSON file (pool, snapshot, balances, book)")
	cmd.Flags().Uint64("amount-in", 0, "input amount in atoms")
	cmd.Flags().Uint64("min-amount-out", 0, "minimum acceptable output in atoms")

	return cmd
}

// swapScenario is the file format of one simulated swap attempt: the pool
// record and every collaborator input the engine would normally receive from
// the surrounding transport.
type swapScenario struct {
	Pool     *sqedomain.PoolState     `json:"pool"`
	Snapshot sqedomain.ProfitSnapshot `json:"snapshot"`

	CurrentTime uint64 `json:"current_time"`

	SourceMint      domain.AccountKey `json:"source_mint"`
	DestinationMint domain.AccountKey `json:"destination_mint"`

	PcVaultAmount   uint64 `json:"pc_vault_amount"`
	CoinVaultAmount uint64 `json:"coin_vault_amount"`

	OpenOrders *sqedomain.OpenOrderSlots `json:"open_orders,omitempty"`
	Bids       sqedomain.OrderBookSide   `json:"bids,omitempty"`
	Asks       sqedomain.OrderBookSide   `json:"asks,omitempty"`
}

type swapSimOutput struct {
	Result domain.SwapResult    `json:"result"`
	Pool   *sqedomain.PoolState `json:"pool"`
}

func runSwapSim(cmd *cobra.Command, _ []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLoggerFromConfig(config)
	if err != nil {
		return err
	}

	scenarioPath, _ := cmd.Flags().GetString("scenario")
	if scenarioPath == "" {
		return fmt.Errorf("scenario file is required")
	}

	data, err := os.ReadFile(scenarioPath)
	if err != nil {
		return err
	}

	var scenario swapScenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		return err
	}
	if scenario.Pool == nil {
		return fmt.Errorf("scenario pool is required")
	}

	amountIn, _ := cmd.Flags().GetUint64("amount-in")
	minAmountOut, _ := cmd.Flags().GetUint64("min-amount-out")

	settlementUsecase := settlementusecase.NewSettlementUsecase(orderbookusecase.NewBookAdapter(logger), logger)

	updated, result, err := settlementUsecase.Dispatch(
		domain.SwapBaseIn{AmountIn: amountIn, MinimumAmountOut: minAmountOut},
		scenario.Pool,
		settlementusecase.SwapInputs{
			CurrentTime:     scenario.CurrentTime,
			SourceMint:      scenario.SourceMint,
			DestinationMint: scenario.DestinationMint,
			PcVaultAmount:   scenario.PcVaultAmount,
			CoinVaultAmount: scenario.CoinVaultAmount,
			OpenOrders:      scenario.OpenOrders,
			Bids:            scenario.Bids,
			Asks:            scenario.Asks,
			Snapshot:        &scenario.Snapshot,
		},
	)
	if err != nil {
		return err
	}

	return printJSON(swapSimOutput{Result: result, Pool: updated})
}
