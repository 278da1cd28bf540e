package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solstice-labs/sqe/domain"
	pricingusecase "github.com/solstice-labs/sqe/pricing/usecase"
	"github.com/solstice-labs/sqe/sqedomain"
)

func newQuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a trade on a curve-quoted market",
		RunE:  runQuote,
	}

	cmd.Flags().String("market", "", "market account binary file")
	cmd.Flags().String("market-key", "", "market account key (hex), optional")
	cmd.Flags().Uint64("amount-in", 0, "input amount in atoms")
	cmd.Flags().Bool("quote-to-base", false, "sell quote atoms for base atoms")
	cmd.Flags().Uint64("slot", 0, "current ledger slot")
	cmd.Flags().Uint64("base-vault", 0, "base vault balance in atoms")
	cmd.Flags().Uint64("quote-vault", 0, "quote vault balance in atoms")

	return cmd
}

func runQuote(cmd *cobra.Command, _ []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLoggerFromConfig(config)
	if err != nil {
		return err
	}

	marketPath, _ := cmd.Flags().GetString("market")
	if marketPath == "" {
		return fmt.Errorf("market file is required")
	}

	data, err := os.ReadFile(marketPath)
	if err != nil {
		return err
	}

	market, err := sqedomain.DecodeMarketAccount(data)
	if err != nil {
		return err
	}

	var marketKey domain.AccountKey
	if marketKeyHex, _ := cmd.Flags().GetString("market-key"); marketKeyHex != "" {
		if marketKey, err = domain.ParseAccountKey(marketKeyHex); err != nil {
			return err
		}
	}

	amountIn, _ := cmd.Flags().GetUint64("amount-in")
	isQuoteToBase, _ := cmd.Flags().GetBool("quote-to-base")
	slot, _ := cmd.Flags().GetUint64("slot")
	baseVaultAmount, _ := cmd.Flags().GetUint64("base-vault")
	quoteVaultAmount, _ := cmd.Flags().GetUint64("quote-vault")

	pricingUsecase := pricingusecase.NewPricingUsecase(*config.Pricing, logger)

	if err := pricingUsecase.AdmitMarket(marketKey, market); err != nil {
		return err
	}

	quote, err := pricingUsecase.Quote(marketKey, market, domain.QuoteRequest{
		AmountIn:         amountIn,
		IsQuoteToBase:    isQuoteToBase,
		Slot:             slot,
		BaseVaultAmount:  baseVaultAmount,
		QuoteVaultAmount: quoteVaultAmount,
	})
	if err != nil {
		return err
	}

	return printJSON(quote)
}
