package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bibbank/consolidation-service/internal/domain/model"
	"github.com/bibbank/consolidation-service/internal/domain/valueobject"
)

// EligibilityEngine evaluates each catalog offer's rule set against a
// customer's aggregated exposure. Every rule is evaluated and recorded even
// after a failure, so each verdict is a complete audit trail rather than a
// short-circuited one.
type EligibilityEngine struct {
	sim *ScenarioSimulator
}

// NewEligibilityEngine creates an engine. The simulator is used to project
// consolidation savings for the ranking tie-break.
func NewEligibilityEngine(sim *ScenarioSimulator) *EligibilityEngine {
	return &EligibilityEngine{sim: sim}
}

// Evaluate produces one verdict per catalog offer, in catalog order.
// Malformed records or a credit score outside the catalog's declared range
// abort the whole evaluation with a data-validation error; eligibility
// decisions are never based on incomplete evidence.
func (e *EligibilityEngine) Evaluate(
	accounts []model.Account,
	credit model.CreditProfile,
	cashflow model.CashflowProfile,
	catalog model.Catalog,
) ([]model.EligibilityVerdict, error) {
	for _, a := range accounts {
		if err := a.Validate(); err != nil {
			return nil, err
		}
	}
	if err := credit.Validate(); err != nil {
		return nil, err
	}
	if err := cashflow.Validate(); err != nil {
		return nil, err
	}
	if !catalog.ValidScore(credit.Score) {
		minScore, maxScore := catalog.ScoreBounds()
		return nil, valueobject.NewDataValidationError(
			"credit_profile.score", "score %d outside catalog range [%d, %d]",
			credit.Score, minScore, maxScore,
		)
	}

	verdicts := make([]model.EligibilityVerdict, 0, len(catalog.Offers()))
	for _, offer := range catalog.Offers() {
		verdicts = append(verdicts, e.evaluateOffer(offer, accounts, credit))
	}
	return verdicts, nil
}

// Rank orders the admissible offers: lower APR first, then larger projected
// savings in the baseline consolidation scenario, then offer ID as the final
// deterministic tie-break. The same input always yields the same order.
func (e *EligibilityEngine) Rank(
	accounts []model.Account,
	cashflow model.CashflowProfile,
	catalog model.Catalog,
	verdicts []model.EligibilityVerdict,
	baseline model.Scenario,
	requestedTermMonths int,
) ([]model.Offer, error) {
	type candidate struct {
		offer   model.Offer
		savings decimal.Decimal
	}

	candidates := make([]candidate, 0, len(verdicts))
	for _, v := range verdicts {
		if !v.Admissible {
			continue
		}
		offer, ok := catalog.OfferByID(v.OfferID)
		if !ok {
			return nil, fmt.Errorf("verdict references unknown offer %s", v.OfferID)
		}
		sc, err := e.sim.Simulate(accounts, cashflow, valueobject.StrategyConsolidation, &offer, requestedTermMonths)
		if err != nil {
			return nil, fmt.Errorf("project savings for offer %s: %w", offer.ID, err)
		}
		candidates = append(candidates, candidate{
			offer:   offer,
			savings: baseline.TotalPaid.Sub(sc.TotalPaid),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if !a.offer.AnnualRate.Equal(b.offer.AnnualRate) {
			return a.offer.AnnualRate.LessThan(b.offer.AnnualRate)
		}
		if !a.savings.Equal(b.savings) {
			return a.savings.GreaterThan(b.savings)
		}
		return a.offer.ID < b.offer.ID
	})

	ranked := make([]model.Offer, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, c.offer)
	}
	return ranked, nil
}

func (e *EligibilityEngine) evaluateOffer(
	offer model.Offer,
	accounts []model.Account,
	credit model.CreditProfile,
) model.EligibilityVerdict {
	results := make([]model.RuleResult, 0, len(offer.Rules))
	admissible := true
	for _, rule := range offer.Rules {
		result := evaluateRule(rule, offer, accounts, credit)
		if !result.Passed {
			admissible = false
		}
		results = append(results, result)
	}
	return model.EligibilityVerdict{
		OfferID:    offer.ID,
		Admissible: admissible,
		Rules:      results,
	}
}

// evaluateRule dispatches on the rule kind. Adding a rule kind means adding
// one branch here; evaluation order and evidence format stay uniform.
func evaluateRule(
	rule model.Rule,
	offer model.Offer,
	accounts []model.Account,
	credit model.CreditProfile,
) model.RuleResult {
	switch rule.Kind {
	case valueobject.RuleBalanceCeiling:
		return evaluateBalanceCeiling(rule, offer, accounts)
	case valueobject.RuleScoreRange:
		return evaluateScoreRange(rule, credit)
	case valueobject.RuleProductMix:
		return evaluateProductMix(rule, accounts)
	case valueobject.RuleDelinquency:
		return evaluateDelinquency(rule, accounts)
	default:
		// Unreachable for a validated catalog.
		return model.RuleResult{
			Kind:     rule.Kind,
			Passed:   false,
			Evidence: fmt.Sprintf("unknown rule kind %q", string(rule.Kind)),
		}
	}
}

// evaluateBalanceCeiling checks the aggregate exposure of the accounts in
// scope for the offer's declared product mix against the ceiling.
func evaluateBalanceCeiling(rule model.Rule, offer model.Offer, accounts []model.Account) model.RuleResult {
	scope := offer.AllowedTypes()
	exposure := decimal.Zero
	for _, a := range accounts {
		if len(scope) == 0 || typeAllowed(a.Type, scope) {
			exposure = exposure.Add(a.Balance)
		}
	}
	passed := exposure.LessThanOrEqual(rule.Ceiling)
	op := "<="
	if !passed {
		op = ">"
	}
	return model.RuleResult{
		Kind:     valueobject.RuleBalanceCeiling,
		Passed:   passed,
		Evidence: fmt.Sprintf("%s %s %s", exposure.StringFixed(2), op, rule.Ceiling.StringFixed(2)),
	}
}

func evaluateScoreRange(rule model.Rule, credit model.CreditProfile) model.RuleResult {
	if rule.MinScore != nil && credit.Score < *rule.MinScore {
		return model.RuleResult{
			Kind:     valueobject.RuleScoreRange,
			Passed:   false,
			Evidence: fmt.Sprintf("score %d < %d", credit.Score, *rule.MinScore),
		}
	}
	if rule.MaxScore != nil && credit.Score > *rule.MaxScore {
		return model.RuleResult{
			Kind:     valueobject.RuleScoreRange,
			Passed:   false,
			Evidence: fmt.Sprintf("score %d > %d", credit.Score, *rule.MaxScore),
		}
	}
	return model.RuleResult{
		Kind:     valueobject.RuleScoreRange,
		Passed:   true,
		Evidence: fmt.Sprintf("score %d within [%s, %s]", credit.Score, boundString(rule.MinScore), boundString(rule.MaxScore)),
	}
}

// evaluateProductMix requires every account's product type to be in the
// offer's allowed set: an offer cannot absorb an account it does not cover.
func evaluateProductMix(rule model.Rule, accounts []model.Account) model.RuleResult {
	allowed := formatTypes(rule.AllowedTypes)
	for _, a := range accounts {
		if !typeAllowed(a.Type, rule.AllowedTypes) {
			return model.RuleResult{
				Kind:     valueobject.RuleProductMix,
				Passed:   false,
				Evidence: fmt.Sprintf("account %s product %s outside {%s}", a.ID, a.Type, allowed),
			}
		}
	}
	return model.RuleResult{
		Kind:     valueobject.RuleProductMix,
		Passed:   true,
		Evidence: fmt.Sprintf("all products within {%s}", allowed),
	}
}

func evaluateDelinquency(rule model.Rule, accounts []model.Account) model.RuleResult {
	worst := model.WorstDelinquency(accounts)
	passed := worst.AtMost(rule.MaxDelinquency)
	op := "<="
	if !passed {
		op = ">"
	}
	return model.RuleResult{
		Kind:     valueobject.RuleDelinquency,
		Passed:   passed,
		Evidence: fmt.Sprintf("worst %s %s %s", worst, op, rule.MaxDelinquency),
	}
}

func typeAllowed(t valueobject.ProductType, allowed []valueobject.ProductType) bool {
	for _, a := range allowed {
		if a == t {
			return true
		}
	}
	return false
}

func formatTypes(types []valueobject.ProductType) string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}

func boundString(bound *int) string {
	if bound == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *bound)
}
