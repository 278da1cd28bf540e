package domain

// Config defines the config for the settlement & quoting engine tooling.
type Config struct {
	// Defines the logger configuration.
	LoggerFilename     string `mapstructure:"logger-filename"`
	LoggerIsProduction bool   `mapstructure:"logger-is-production"`
	LoggerLevel        string `mapstructure:"logger-level"`

	// Pricing encapsulates the pricing engine config.
	Pricing *PricingConfig `mapstructure:"pricing"`
}

// PricingConfig defines the config for the curve-quoted pricing engine.
type PricingConfig struct {
	// Ceiling applied to size-edge spline knots at market admission,
	// in milli-bips.
	MaxSizeEdgeMilliBips uint64 `mapstructure:"max-size-edge-milli-bips"`

	// Ceiling applied to time-edge spline knots at market admission,
	// in thousandths of a multiplier.
	MaxTimeEdgeMultiplierMillis uint64 `mapstructure:"max-time-edge-multiplier-millis"`

	// Number of workers used for batch quoting across markets.
	QuoteWorkerCount int `mapstructure:"quote-worker-count"`
}

// DefaultPricingConfig is the pricing config applied when no config file
// overrides it.
var DefaultPricingConfig = PricingConfig{
	MaxSizeEdgeMilliBips:        MilliBipsScale,
	MaxTimeEdgeMultiplierMillis: MaxEdgeMultiplierMillis,
	QuoteWorkerCount:            4,
}
