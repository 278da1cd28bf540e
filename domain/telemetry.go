package domain

import "github.com/prometheus/client_golang/prometheus"

var (
	// sqe_settlement_swap_total
	//
	// counter that measures the number of swaps settled successfully
	SQESettlementSwapMetricName = "sqe_settlement_swap_total"

	// sqe_settlement_swap_error_total
	//
	// counter that measures the number of swap attempts that failed
	//
	// Has the following labels:
	// * reason - the failure classification (status, token, liquidity, overflow, invariant, slippage, orderbook)
	SQESettlementSwapErrorMetricName = "sqe_settlement_swap_error_total"

	// sqe_settlement_invariant_violation_total
	//
	// counter that measures the number of reconciliations that found a shrunk invariant
	SQESettlementInvariantViolationMetricName = "sqe_settlement_invariant_violation_total"

	// sqe_pricing_quote_error_total
	//
	// counter that measures the number of quote attempts that failed
	SQEPricingQuoteErrorMetricName = "sqe_pricing_quote_error_total"

	// sqe_pricing_market_rejected_total
	//
	// counter that measures the number of markets rejected at admission
	SQEPricingMarketRejectedMetricName = "sqe_pricing_market_rejected_total"

	SQESettlementSwapCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: SQESettlementSwapMetricName,
			Help: "Total number of swaps settled successfully",
		},
	)

	SQESettlementSwapErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: SQESettlementSwapErrorMetricName,
			Help: "Total number of swap attempts that failed",
		},
		[]string{"reason"},
	)

	SQESettlementInvariantViolationCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: SQESettlementInvariantViolationMetricName,
			Help: "Total number of reconciliations that found a shrunk invariant",
		},
	)

	SQEPricingQuoteErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: SQEPricingQuoteErrorMetricName,
			Help: "Total number of quote attempts that failed",
		},
	)

	SQEPricingMarketRejectedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: SQEPricingMarketRejectedMetricName,
			Help: "Total number of markets rejected at admission",
		},
	)
)

func init() {
	prometheus.MustRegister(SQESettlementSwapCounter)
	prometheus.MustRegister(SQESettlementSwapErrorCounter)
	prometheus.MustRegister(SQESettlementInvariantViolationCounter)
	prometheus.MustRegister(SQEPricingQuoteErrorCounter)
	prometheus.MustRegister(SQEPricingMarketRejectedCounter)
}
