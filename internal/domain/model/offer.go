package model

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bibbank/consolidation-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Offer catalog. Offers are loaded once per process lifetime and shared
// read-only across concurrent evaluations; Catalog validates every rule set
// at construction so a broken offer is rejected before any customer is
// evaluated against it.
// ---------------------------------------------------------------------------

// Rule is one tagged eligibility constraint. Kind selects the variant; only
// the parameters for that kind are meaningful.
type Rule struct {
	Kind valueobject.RuleKind

	// balance_ceiling
	Ceiling decimal.Decimal

	// score_range; a nil bound means unbounded on that side.
	MinScore *int
	MaxScore *int

	// product_mix
	AllowedTypes []valueobject.ProductType

	// delinquency
	MaxDelinquency valueobject.Delinquency
}

// BalanceCeilingRule caps the aggregate exposure in scope for the offer.
func BalanceCeilingRule(ceiling decimal.Decimal) Rule {
	return Rule{Kind: valueobject.RuleBalanceCeiling, Ceiling: ceiling}
}

// ScoreRangeRule bounds the customer's credit score. Either bound may be nil.
func ScoreRangeRule(minScore, maxScore *int) Rule {
	return Rule{Kind: valueobject.RuleScoreRange, MinScore: minScore, MaxScore: maxScore}
}

// ProductMixRule restricts the product types the offer can absorb.
func ProductMixRule(types ...valueobject.ProductType) Rule {
	return Rule{Kind: valueobject.RuleProductMix, AllowedTypes: types}
}

// DelinquencyRule sets the worst delinquency status the offer tolerates.
func DelinquencyRule(limit valueobject.Delinquency) Rule {
	return Rule{Kind: valueobject.RuleDelinquency, MaxDelinquency: limit}
}

// Offer is a named consolidation product from the bank's catalog.
type Offer struct {
	ID         string
	AnnualRate decimal.Decimal // APR as a decimal fraction
	TermMonths int
	Rules      []Rule // fixed evaluation order
	Priority   int    // catalog ordering metadata
}

// AllowedTypes returns the product types declared by the offer's
// product-mix rule. The set also scopes the balance-ceiling aggregation.
func (o Offer) AllowedTypes() []valueobject.ProductType {
	for _, r := range o.Rules {
		if r.Kind == valueobject.RuleProductMix {
			return r.AllowedTypes
		}
	}
	return nil
}

func (o Offer) validate() error {
	if o.ID == "" {
		return valueobject.NewRuleConfigError("?", "offer ID must not be empty")
	}
	if !o.AnnualRate.IsPositive() {
		return valueobject.NewRuleConfigError(o.ID, "annual rate %s must be positive", o.AnnualRate.String())
	}
	if o.TermMonths <= 0 {
		return valueobject.NewRuleConfigError(o.ID, "term %d months must be positive", o.TermMonths)
	}

	seen := make(map[valueobject.RuleKind]bool, len(o.Rules))
	for _, r := range o.Rules {
		if seen[r.Kind] {
			return valueobject.NewRuleConfigError(o.ID, "duplicate rule kind %s", r.Kind)
		}
		seen[r.Kind] = true

		switch r.Kind {
		case valueobject.RuleBalanceCeiling:
			if !r.Ceiling.IsPositive() {
				return valueobject.NewRuleConfigError(o.ID, "balance ceiling %s must be positive", r.Ceiling.StringFixed(2))
			}
		case valueobject.RuleScoreRange:
			if r.MinScore != nil && r.MaxScore != nil && *r.MinScore > *r.MaxScore {
				return valueobject.NewRuleConfigError(o.ID, "min score %d exceeds max score %d", *r.MinScore, *r.MaxScore)
			}
		case valueobject.RuleProductMix:
			if len(r.AllowedTypes) == 0 {
				return valueobject.NewRuleConfigError(o.ID, "product mix must allow at least one product type")
			}
			for _, t := range r.AllowedTypes {
				if !t.Valid() {
					return valueobject.NewRuleConfigError(o.ID, "unknown product type %q in product mix", string(t))
				}
			}
		case valueobject.RuleDelinquency:
			if !r.MaxDelinquency.Valid() {
				return valueobject.NewRuleConfigError(o.ID, "unknown delinquency tolerance %q", string(r.MaxDelinquency))
			}
		default:
			return valueobject.NewRuleConfigError(o.ID, "unknown rule kind %q", string(r.Kind))
		}
	}

	for _, required := range []valueobject.RuleKind{
		valueobject.RuleBalanceCeiling,
		valueobject.RuleScoreRange,
		valueobject.RuleProductMix,
		valueobject.RuleDelinquency,
	} {
		if !seen[required] {
			return valueobject.NewRuleConfigError(o.ID, "missing %s rule", required)
		}
	}
	return nil
}

// Catalog is the validated, immutable set of consolidation offers plus the
// credit-score range the catalog considers valid input.
type Catalog struct {
	offers   []Offer
	minScore int
	maxScore int
}

// NewCatalog validates every offer and fixes the catalog order (priority,
// then offer ID) so evaluation order is reproducible across runs.
func NewCatalog(offers []Offer, minScore, maxScore int) (Catalog, error) {
	if minScore >= maxScore {
		return Catalog{}, fmt.Errorf("catalog score bounds [%d, %d] are inverted", minScore, maxScore)
	}
	seen := make(map[string]bool, len(offers))
	ordered := make([]Offer, len(offers))
	copy(ordered, offers)
	for _, o := range ordered {
		if err := o.validate(); err != nil {
			return Catalog{}, err
		}
		if seen[o.ID] {
			return Catalog{}, valueobject.NewRuleConfigError(o.ID, "duplicate offer ID")
		}
		seen[o.ID] = true
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority < ordered[j].Priority
		}
		return ordered[i].ID < ordered[j].ID
	})
	return Catalog{offers: ordered, minScore: minScore, maxScore: maxScore}, nil
}

// Offers returns the offers in catalog order. Callers must not mutate.
func (c Catalog) Offers() []Offer {
	return c.offers
}

// OfferByID looks up an offer.
func (c Catalog) OfferByID(id string) (Offer, bool) {
	for _, o := range c.offers {
		if o.ID == id {
			return o, true
		}
	}
	return Offer{}, false
}

// ScoreBounds returns the valid credit-score range declared by the catalog.
func (c Catalog) ScoreBounds() (minScore, maxScore int) {
	return c.minScore, c.maxScore
}

// ValidScore reports whether a score is inside the declared range.
func (c Catalog) ValidScore(score int) bool {
	return score >= c.minScore && score <= c.maxScore
}
