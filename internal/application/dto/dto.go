package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// AccountRecord is one already-parsed debt instrument from the ingestion
// collaborator.
type AccountRecord struct {
	ID          string          `json:"id"`
	ProductType string          `json:"product_type"`
	Balance     decimal.Decimal `json:"balance"`
	AnnualRate  decimal.Decimal `json:"annual_rate"`
	MinPayment  decimal.Decimal `json:"min_payment"`
	Delinquency string          `json:"delinquency"`
	TermMonths  int             `json:"term_months,omitempty"`
}

// CreditProfileRecord is the customer's credit standing.
type CreditProfileRecord struct {
	Score int      `json:"score"`
	Flags []string `json:"flags,omitempty"`
}

// CashflowRecord summarises the customer's monthly cash position.
type CashflowRecord struct {
	MonthlyIncome        decimal.Decimal `json:"monthly_income"`
	RecurringObligations decimal.Decimal `json:"recurring_obligations"`
}

// EvaluateCustomerRequest carries everything needed to decide one customer.
type EvaluateCustomerRequest struct {
	CustomerID          string              `json:"customer_id"`
	RequestedTermMonths int                 `json:"requested_term_months,omitempty"`
	Accounts            []AccountRecord     `json:"accounts"`
	Credit              CreditProfileRecord `json:"credit_profile"`
	Cashflow            CashflowRecord      `json:"cashflow"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// RuleResultResponse is one recorded rule outcome.
type RuleResultResponse struct {
	Rule     string `json:"rule"`
	Passed   bool   `json:"passed"`
	Evidence string `json:"evidence"`
}

// VerdictResponse is the complete audit trail for one offer.
type VerdictResponse struct {
	OfferID    string               `json:"offer_id"`
	Admissible bool                 `json:"admissible"`
	Rules      []RuleResultResponse `json:"rules"`
}

// ScenarioResponse is the external representation of one simulated strategy.
type ScenarioResponse struct {
	Strategy         string          `json:"strategy"`
	OfferID          string          `json:"offer_id,omitempty"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment"`
	PayoffMonths     int             `json:"payoff_months"`
	NonConvergent    bool            `json:"non_convergent"`
	TotalInterest    decimal.Decimal `json:"total_interest"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	PrincipalPaid    decimal.Decimal `json:"principal_paid"`
	SavingsVsMinimum decimal.Decimal `json:"savings_vs_minimum"`
	Notes            []string        `json:"notes,omitempty"`
}

// OfferOutcomeResponse pairs an admissible offer with its verdict and
// consolidation scenarios.
type OfferOutcomeResponse struct {
	OfferID              string           `json:"offer_id"`
	AnnualRate           decimal.Decimal  `json:"annual_rate"`
	TermMonths           int              `json:"term_months"`
	Verdict              VerdictResponse  `json:"verdict"`
	Consolidation        ScenarioResponse `json:"consolidation"`
	ConsolidationSurplus ScenarioResponse `json:"consolidation_surplus"`
}

// EvaluateCustomerResponse is the composite decision for one customer.
type EvaluateCustomerResponse struct {
	EvaluationID        string                 `json:"evaluation_id"`
	CustomerID          string                 `json:"customer_id"`
	RequestedTermMonths int                    `json:"requested_term_months,omitempty"`
	BestOfferID         string                 `json:"best_offer_id,omitempty"`
	Baseline            ScenarioResponse       `json:"baseline"`
	Optimized           ScenarioResponse       `json:"optimized"`
	Offers              []OfferOutcomeResponse `json:"offers"`
	Rejected            []VerdictResponse      `json:"rejected"`
	EvaluatedAt         time.Time              `json:"evaluated_at"`
}

// OfferResponse is the external representation of one catalog offer.
type OfferResponse struct {
	ID         string          `json:"id"`
	AnnualRate decimal.Decimal `json:"annual_rate"`
	TermMonths int             `json:"term_months"`
	Priority   int             `json:"priority"`
}

// ListOffersResponse lists the catalog contents.
type ListOffersResponse struct {
	Offers []OfferResponse `json:"offers"`
}
