package model

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/consolidation-service/internal/domain/valueobject"
)

// PayoffUnbounded is the payoff-month sentinel for a scenario that never
// reaches zero balance within the simulation horizon.
const PayoffUnbounded = -1

// MonthStep is one simulated month: interest accrued across the portfolio,
// payment applied, and the combined balance remaining at month end.
type MonthStep struct {
	Month         int
	Interest      decimal.Decimal
	Payment       decimal.Decimal
	EndingBalance decimal.Decimal
}

// Scenario is the month-by-month outcome of one repayment strategy.
// Non-convergence is a first-class outcome, never an error.
type Scenario struct {
	Strategy valueobject.Strategy
	// OfferID is set for consolidation strategies.
	OfferID string

	// MonthlyPayment is the fixed amortizing payment for consolidation
	// strategies, or the total monthly budget otherwise.
	MonthlyPayment decimal.Decimal

	// PayoffMonths is PayoffUnbounded when NonConvergent.
	PayoffMonths  int
	NonConvergent bool

	TotalInterest decimal.Decimal
	TotalPaid     decimal.Decimal
	PrincipalPaid decimal.Decimal

	// SavingsVsMinimum is baseline total paid minus this scenario's total
	// paid. Negative savings are surfaced, not clamped.
	SavingsVsMinimum decimal.Decimal

	Steps []MonthStep
	Notes []string
}
