package model

import "time"

// OfferOutcome pairs an admissible offer with its audit verdict and the two
// consolidation scenarios computed for it.
type OfferOutcome struct {
	Offer                Offer
	Verdict              EligibilityVerdict
	Consolidation        Scenario
	ConsolidationSurplus Scenario
}

// EvaluationResult is the composite decision for one customer: ranked
// admissible offers with full verdicts, the rejected verdicts for audit,
// and the baseline and optimized trajectories. Created fresh per request
// and owned exclusively by that request's call stack.
type EvaluationResult struct {
	EvaluationID        string
	CustomerID          string
	RequestedTermMonths int // zero when the customer did not request a term

	Baseline  Scenario
	Optimized Scenario

	// Offers holds the admissible offers in ranked order: lower APR first,
	// then larger projected savings, then offer ID.
	Offers []OfferOutcome

	// Rejected holds the verdicts for inadmissible offers in catalog order.
	Rejected []EligibilityVerdict

	EvaluatedAt time.Time
}

// BestOffer returns the top-ranked admissible offer, or nil when the
// customer qualifies for none.
func (r EvaluationResult) BestOffer() *OfferOutcome {
	if len(r.Offers) == 0 {
		return nil
	}
	return &r.Offers[0]
}
