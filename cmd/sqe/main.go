package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/solstice-labs/sqe/domain"
	"github.com/solstice-labs/sqe/log"
)

func main() {
	root := &cobra.Command{
		Use:          "sqe",
		Short:        "Swap settlement and curve-quoted pricing engine tooling",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	root.AddCommand(newDecodeMarketCmd())
	root.AddCommand(newQuoteCmd())
	root.AddCommand(newSwapSimCmd())
	root.AddCommand(newValidateCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the optional config file and falls back to defaults.
func loadConfig(cmd *cobra.Command) (domain.Config, error) {
	defaultPricing := domain.DefaultPricingConfig
	config := domain.Config{
		LoggerLevel: "info",
		Pricing:     &defaultPricing,
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil || configPath == "" {
		return config, nil
	}

	viper.SetConfigFile(configPath)
	if err := viper.ReadInConfig(); err != nil {
		return domain.Config{}, err
	}

	if err := viper.Unmarshal(&config); err != nil {
		return domain.Config{}, err
	}

	if config.Pricing == nil {
		config.Pricing = &defaultPricing
	}

	return config, nil
}

func newLoggerFromConfig(config domain.Config) (log.Logger, error) {
	return log.NewLogger(config.LoggerIsProduction, config.LoggerFilename, config.LoggerLevel)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}
