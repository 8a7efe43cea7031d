package model

import "github.com/bibbank/consolidation-service/internal/domain/valueobject"

// RuleResult records one rule's outcome together with the compared values,
// so every verdict is a complete audit trail.
type RuleResult struct {
	Kind     valueobject.RuleKind
	Passed   bool
	Evidence string
}

// EligibilityVerdict is the full rule-by-rule outcome for one offer. All
// rules are evaluated and recorded even after a failure; an offer is
// admissible iff every rule passed.
type EligibilityVerdict struct {
	OfferID    string
	Admissible bool
	Rules      []RuleResult
}

// FailedRules returns the subset of rule results that did not pass.
func (v EligibilityVerdict) FailedRules() []RuleResult {
	var failed []RuleResult
	for _, r := range v.Rules {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
