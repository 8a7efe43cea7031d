package valueobject

// Strategy identifies a repayment strategy simulated for a customer.
type Strategy string

const (
	// StrategyMinimum pays only each account's contractual minimum.
	StrategyMinimum Strategy = "minimum_payment"
	// StrategyOptimized adds the monthly cash surplus, allocated
	// avalanche-style to the highest-rate outstanding account.
	StrategyOptimized Strategy = "optimized_plan"
	// StrategyConsolidation replaces all accounts with a single
	// fixed-term consolidation loan.
	StrategyConsolidation Strategy = "consolidation"
	// StrategyConsolidationSurplus is consolidation with the monthly
	// surplus added to the fixed payment.
	StrategyConsolidationSurplus Strategy = "consolidation_surplus"
)

// String returns the wire representation.
func (s Strategy) String() string {
	return string(s)
}
