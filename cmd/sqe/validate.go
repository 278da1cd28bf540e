package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solstice-labs/sqe/domain"
	pricingusecase "github.com/solstice-labs/sqe/pricing/usecase"
	"github.com/solstice-labs/sqe/sqedomain"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate pool and market records without executing anything",
		RunE:  runValidate,
	}

	cmd.Flags().String("pool", "", "pool state JSON file")
	cmd.Flags().String("market", "", "market account binary file")

	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLoggerFromConfig(config)
	if err != nil {
		return err
	}

	poolPath, _ := cmd.Flags().GetString("pool")
	marketPath, _ := cmd.Flags().GetString("market")
	if poolPath == "" && marketPath == "" {
		return fmt.Errorf("at least one of pool or market is required")
	}

	if poolPath != "" {
		data, err := os.ReadFile(poolPath)
		if err != nil {
			return err
		}

		pool, err := sqedomain.LoadPoolState(data)
		if err != nil {
			return fmt.Errorf("pool record is invalid: %w", err)
		}

		fmt.Printf("pool record is valid (status %s)\n", pool.Status)
	}

	if marketPath != "" {
		data, err := os.ReadFile(marketPath)
		if err != nil {
			return err
		}

		market, err := sqedomain.DecodeMarketAccount(data)
		if err != nil {
			return fmt.Errorf("market record is invalid: %w", err)
		}

		pricingUsecase := pricingusecase.NewPricingUsecase(*config.Pricing, logger)
		if err := pricingUsecase.AdmitMarket(domain.AccountKey{}, market); err != nil {
			return fmt.Errorf("market record fails admission: %w", err)
		}

		fmt.Println("market record is valid")
	}

	return nil
}
