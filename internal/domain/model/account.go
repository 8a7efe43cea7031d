package model

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/consolidation-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Normalized customer records. These are pure data, constructed once per
// evaluation request from already-parsed ingestion output and discarded when
// the request completes.
// ---------------------------------------------------------------------------

// Account is one debt instrument (card or installment loan).
type Account struct {
	ID          string
	Type        valueobject.ProductType
	Balance     decimal.Decimal // outstanding balance, >= 0
	AnnualRate  decimal.Decimal // APR as a decimal fraction, e.g. 0.24
	MinPayment  decimal.Decimal // contractual monthly minimum, >= 0
	Delinquency valueobject.Delinquency
	// TermMonths is the remaining term for installment loans; zero for cards.
	TermMonths int
}

// Validate checks the account fields against the record invariants.
func (a Account) Validate() error {
	if a.ID == "" {
		return valueobject.NewDataValidationError("account.id", "must not be empty")
	}
	if !a.Type.Valid() {
		return valueobject.NewDataValidationError("account.product_type", "unknown product type %q", string(a.Type))
	}
	if a.Balance.IsNegative() {
		return valueobject.NewDataValidationError("account.balance", "account %s: balance %s is negative", a.ID, a.Balance.StringFixed(2))
	}
	if a.AnnualRate.IsNegative() {
		return valueobject.NewDataValidationError("account.annual_rate", "account %s: rate %s is negative", a.ID, a.AnnualRate.String())
	}
	if a.MinPayment.IsNegative() {
		return valueobject.NewDataValidationError("account.min_payment", "account %s: minimum payment %s is negative", a.ID, a.MinPayment.StringFixed(2))
	}
	if !a.Delinquency.Valid() {
		return valueobject.NewDataValidationError("account.delinquency", "account %s: unknown status %q", a.ID, string(a.Delinquency))
	}
	if a.TermMonths < 0 {
		return valueobject.NewDataValidationError("account.term_months", "account %s: term %d is negative", a.ID, a.TermMonths)
	}
	return nil
}

// CreditProfile holds the customer's credit standing for one evaluation run.
type CreditProfile struct {
	CustomerID string
	Score      int
	// Flags carries bureau history markers (e.g. "prior_restructuring");
	// informational only, rules do not branch on them.
	Flags []string
}

// Validate checks identity fields. Score range validation happens against
// the catalog's declared bounds in the eligibility engine.
func (p CreditProfile) Validate() error {
	if p.CustomerID == "" {
		return valueobject.NewDataValidationError("credit_profile.customer_id", "must not be empty")
	}
	return nil
}

// CashflowProfile summarises the customer's monthly cash position.
type CashflowProfile struct {
	MonthlyIncome        decimal.Decimal
	RecurringObligations decimal.Decimal
}

// Validate checks the cashflow fields.
func (c CashflowProfile) Validate() error {
	if c.MonthlyIncome.IsNegative() {
		return valueobject.NewDataValidationError("cashflow.monthly_income", "income %s is negative", c.MonthlyIncome.StringFixed(2))
	}
	if c.RecurringObligations.IsNegative() {
		return valueobject.NewDataValidationError("cashflow.recurring_obligations", "obligations %s is negative", c.RecurringObligations.StringFixed(2))
	}
	return nil
}

// DisposableIncome is monthly income net of recurring obligations.
func (c CashflowProfile) DisposableIncome() decimal.Decimal {
	return c.MonthlyIncome.Sub(c.RecurringObligations)
}

// Surplus is disposable income minus the sum of contractual minimum
// payments across the accounts. It may be zero or negative.
func (c CashflowProfile) Surplus(accounts []Account) decimal.Decimal {
	minimums := decimal.Zero
	for _, a := range accounts {
		minimums = minimums.Add(a.MinPayment)
	}
	return c.DisposableIncome().Sub(minimums)
}

// TotalBalance sums the outstanding balances of the given accounts.
func TotalBalance(accounts []Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// WorstDelinquency returns the most severe delinquency status held across
// the accounts, or current for an empty portfolio.
func WorstDelinquency(accounts []Account) valueobject.Delinquency {
	statuses := make([]valueobject.Delinquency, 0, len(accounts))
	for _, a := range accounts {
		statuses = append(statuses, a.Delinquency)
	}
	return valueobject.WorstDelinquency(statuses)
}
