package valueobject

// RuleKind tags one of the eligibility rule variants an offer declares.
// Evaluation dispatches on the kind; adding a rule kind means adding one
// constant here and one evaluator branch.
type RuleKind string

const (
	RuleBalanceCeiling RuleKind = "balance_ceiling"
	RuleScoreRange     RuleKind = "score_range"
	RuleProductMix     RuleKind = "product_mix"
	RuleDelinquency    RuleKind = "delinquency"
)

// String returns the wire representation.
func (k RuleKind) String() string {
	return string(k)
}
