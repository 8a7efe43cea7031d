package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/consolidation-service/internal/domain/model"
	"github.com/bibbank/consolidation-service/internal/domain/service"
	"github.com/bibbank/consolidation-service/internal/domain/valueobject"
)

func intPtr(v int) *int { return &v }

func fullOffer(id string, rate float64, term int, ceiling float64, minScore, maxScore *int, maxDelinq valueobject.Delinquency, types ...valueobject.ProductType) model.Offer {
	if len(types) == 0 {
		types = []valueobject.ProductType{valueobject.ProductTypeCard, valueobject.ProductTypeLoan}
	}
	return model.Offer{
		ID:         id,
		AnnualRate: decimal.NewFromFloat(rate),
		TermMonths: term,
		Rules: []model.Rule{
			model.BalanceCeilingRule(decimal.NewFromFloat(ceiling)),
			model.ScoreRangeRule(minScore, maxScore),
			model.ProductMixRule(types...),
			model.DelinquencyRule(maxDelinq),
		},
	}
}

func mustCatalog(t *testing.T, offers ...model.Offer) model.Catalog {
	t.Helper()
	catalog, err := model.NewCatalog(offers, 300, 850)
	require.NoError(t, err)
	return catalog
}

func newEngine() *service.EligibilityEngine {
	return service.NewEligibilityEngine(service.NewScenarioSimulator(service.SimulatorConfig{}))
}

func TestEvaluate_BalanceCeilingEvidence(t *testing.T) {
	engine := newEngine()
	accounts := []model.Account{
		card("card-a", 12_000, 0.22, 360),
		card("card-b", 8_000, 0.19, 240),
	}
	credit := model.CreditProfile{CustomerID: "cust-1", Score: 720}
	catalog := mustCatalog(t,
		fullOffer("offer-1", 0.11, 36, 15_000, intPtr(650), nil, valueobject.DelinquencyLate30),
	)

	verdicts, err := engine.Evaluate(accounts, credit, cashflow(4000, 1500), catalog)

	require.NoError(t, err)
	require.Len(t, verdicts, 1)
	v := verdicts[0]
	assert.False(t, v.Admissible)

	require.Len(t, v.Rules, 4, "every rule must be recorded even after a failure")
	ceiling := v.Rules[0]
	assert.Equal(t, valueobject.RuleBalanceCeiling, ceiling.Kind)
	assert.False(t, ceiling.Passed)
	assert.Equal(t, "20000.00 > 15000.00", ceiling.Evidence)

	// The rules after the failing one still carry real evidence.
	assert.True(t, v.Rules[1].Passed)
	assert.True(t, v.Rules[2].Passed)
	assert.True(t, v.Rules[3].Passed)

	// The ceiling is the only failure.
	failed := v.FailedRules()
	require.Len(t, failed, 1)
	assert.Equal(t, valueobject.RuleBalanceCeiling, failed[0].Kind)
}

func TestEvaluate_PassingCeilingEvidence(t *testing.T) {
	engine := newEngine()
	accounts := []model.Account{card("card-a", 12_000, 0.22, 360)}
	credit := model.CreditProfile{CustomerID: "cust-1", Score: 720}
	catalog := mustCatalog(t,
		fullOffer("offer-1", 0.11, 36, 15_000, intPtr(650), nil, valueobject.DelinquencyLate30),
	)

	verdicts, err := engine.Evaluate(accounts, credit, cashflow(4000, 1500), catalog)

	require.NoError(t, err)
	require.Len(t, verdicts, 1)
	assert.True(t, verdicts[0].Admissible)
	assert.Equal(t, "12000.00 <= 15000.00", verdicts[0].Rules[0].Evidence)
}

func TestEvaluate_CeilingScopedByProductMix(t *testing.T) {
	// The card-only offer ignores the loan balance when aggregating
	// exposure against its ceiling, but the loan still fails product mix.
	engine := newEngine()
	loan := model.Account{
		ID:          "loan-a",
		Type:        valueobject.ProductTypeLoan,
		Balance:     decimal.NewFromInt(50_000),
		AnnualRate:  decimal.NewFromFloat(0.08),
		MinPayment:  decimal.NewFromInt(600),
		Delinquency: valueobject.DelinquencyCurrent,
		TermMonths:  120,
	}
	accounts := []model.Account{card("card-a", 9_000, 0.22, 270), loan}
	credit := model.CreditProfile{CustomerID: "cust-1", Score: 700}
	catalog := mustCatalog(t,
		fullOffer("offer-1", 0.12, 36, 10_000, nil, nil, valueobject.DelinquencyCurrent, valueobject.ProductTypeCard),
	)

	verdicts, err := engine.Evaluate(accounts, credit, cashflow(6000, 2000), catalog)

	require.NoError(t, err)
	require.Len(t, verdicts, 1)
	v := verdicts[0]
	assert.False(t, v.Admissible)
	assert.Equal(t, "9000.00 <= 10000.00", v.Rules[0].Evidence, "loan balance must stay out of the card-only exposure")
	assert.False(t, v.Rules[2].Passed)
	assert.Contains(t, v.Rules[2].Evidence, "loan-a")
}

func TestEvaluate_ScoreRange(t *testing.T) {
	engine := newEngine()
	accounts := []model.Account{card("card-a", 5_000, 0.20, 150)}
	catalog := mustCatalog(t,
		fullOffer("offer-1", 0.11, 36, 50_000, intPtr(680), intPtr(800), valueobject.DelinquencyLate30),
	)

	t.Run("below the minimum", func(t *testing.T) {
		verdicts, err := engine.Evaluate(accounts, model.CreditProfile{CustomerID: "c", Score: 640}, cashflow(4000, 1500), catalog)
		require.NoError(t, err)
		v := verdicts[0]
		assert.False(t, v.Admissible)
		assert.Equal(t, "score 640 < 680", v.Rules[1].Evidence)
	})

	t.Run("above the maximum", func(t *testing.T) {
		verdicts, err := engine.Evaluate(accounts, model.CreditProfile{CustomerID: "c", Score: 820}, cashflow(4000, 1500), catalog)
		require.NoError(t, err)
		assert.Equal(t, "score 820 > 800", verdicts[0].Rules[1].Evidence)
	})

	t.Run("inside the range", func(t *testing.T) {
		verdicts, err := engine.Evaluate(accounts, model.CreditProfile{CustomerID: "c", Score: 720}, cashflow(4000, 1500), catalog)
		require.NoError(t, err)
		assert.True(t, verdicts[0].Rules[1].Passed)
	})
}

func TestEvaluate_UnboundedScoreSide(t *testing.T) {
	engine := newEngine()
	accounts := []model.Account{card("card-a", 5_000, 0.20, 150)}
	catalog := mustCatalog(t,
		fullOffer("offer-1", 0.11, 36, 50_000, intPtr(600), nil, valueobject.DelinquencyLate30),
	)

	verdicts, err := engine.Evaluate(accounts, model.CreditProfile{CustomerID: "c", Score: 850}, cashflow(4000, 1500), catalog)

	require.NoError(t, err)
	assert.True(t, verdicts[0].Rules[1].Passed, "a nil max bound accepts any score above the minimum")
}

func TestEvaluate_DelinquencyOrdering(t *testing.T) {
	engine := newEngine()
	late := card("card-a", 5_000, 0.20, 150)
	late.Delinquency = valueobject.DelinquencyLate60Plus
	accounts := []model.Account{card("card-b", 2_000, 0.18, 60), late}
	catalog := mustCatalog(t,
		fullOffer("offer-1", 0.11, 36, 50_000, nil, nil, valueobject.DelinquencyLate30),
	)

	verdicts, err := engine.Evaluate(accounts, model.CreditProfile{CustomerID: "c", Score: 700}, cashflow(4000, 1500), catalog)

	require.NoError(t, err)
	v := verdicts[0]
	assert.False(t, v.Admissible)
	assert.False(t, v.Rules[3].Passed)
	assert.Equal(t, "worst late_60_plus > late_30", v.Rules[3].Evidence)

	failed := v.FailedRules()
	require.Len(t, failed, 1)
	assert.Equal(t, valueobject.RuleDelinquency, failed[0].Kind)
}

func TestEvaluate_ScoreOutsideCatalogRange(t *testing.T) {
	engine := newEngine()
	accounts := []model.Account{card("card-a", 5_000, 0.20, 150)}
	catalog := mustCatalog(t,
		fullOffer("offer-1", 0.11, 36, 50_000, nil, nil, valueobject.DelinquencyLate30),
	)

	_, err := engine.Evaluate(accounts, model.CreditProfile{CustomerID: "c", Score: 200}, cashflow(4000, 1500), catalog)

	var validationErr *valueobject.DataValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "credit_profile.score", validationErr.Field)
}

func TestEvaluate_CatalogOrderIsStable(t *testing.T) {
	engine := newEngine()
	accounts := []model.Account{card("card-a", 5_000, 0.20, 150)}
	offerA := fullOffer("offer-a", 0.12, 36, 50_000, nil, nil, valueobject.DelinquencyLate30)
	offerB := fullOffer("offer-b", 0.10, 36, 50_000, nil, nil, valueobject.DelinquencyLate30)
	offerB.Priority = 1
	catalog := mustCatalog(t, offerA, offerB)

	verdicts, err := engine.Evaluate(accounts, model.CreditProfile{CustomerID: "c", Score: 700}, cashflow(4000, 1500), catalog)

	require.NoError(t, err)
	require.Len(t, verdicts, 2)
	assert.Equal(t, "offer-a", verdicts[0].OfferID, "priority 0 evaluates before priority 1")
	assert.Equal(t, "offer-b", verdicts[1].OfferID)
}

func TestRank_TotalOrder(t *testing.T) {
	engine := newEngine()
	accounts := []model.Account{card("card-a", 12_000, 0.22, 360)}
	cf := cashflow(4000, 1500)
	credit := model.CreditProfile{CustomerID: "cust-1", Score: 720}

	// Same APR on offer-a and offer-c; the shorter term saves more and
	// ranks first between them. offer-b wins outright on APR.
	offerA := fullOffer("offer-a", 0.12, 36, 50_000, nil, nil, valueobject.DelinquencyLate30)
	offerB := fullOffer("offer-b", 0.09, 36, 50_000, nil, nil, valueobject.DelinquencyLate30)
	offerC := fullOffer("offer-c", 0.12, 24, 50_000, nil, nil, valueobject.DelinquencyLate30)
	catalog := mustCatalog(t, offerA, offerB, offerC)

	verdicts, err := engine.Evaluate(accounts, credit, cf, catalog)
	require.NoError(t, err)

	sim := service.NewScenarioSimulator(service.SimulatorConfig{})
	baseline, err := sim.Simulate(accounts, cf, valueobject.StrategyMinimum, nil, 0)
	require.NoError(t, err)

	ranked, err := engine.Rank(accounts, cf, catalog, verdicts, baseline, 0)

	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "offer-b", ranked[0].ID)
	assert.Equal(t, "offer-c", ranked[1].ID)
	assert.Equal(t, "offer-a", ranked[2].ID)
}

func TestRank_OfferIDBreaksExactTies(t *testing.T) {
	engine := newEngine()
	accounts := []model.Account{card("card-a", 12_000, 0.22, 360)}
	cf := cashflow(4000, 1500)

	// Identical terms: the ranking must still be a total order.
	offerY := fullOffer("offer-y", 0.11, 36, 50_000, nil, nil, valueobject.DelinquencyLate30)
	offerX := fullOffer("offer-x", 0.11, 36, 50_000, nil, nil, valueobject.DelinquencyLate30)
	catalog := mustCatalog(t, offerY, offerX)

	verdicts, err := engine.Evaluate(accounts, model.CreditProfile{CustomerID: "c", Score: 700}, cf, catalog)
	require.NoError(t, err)

	sim := service.NewScenarioSimulator(service.SimulatorConfig{})
	baseline, err := sim.Simulate(accounts, cf, valueobject.StrategyMinimum, nil, 0)
	require.NoError(t, err)

	ranked, err := engine.Rank(accounts, cf, catalog, verdicts, baseline, 0)

	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "offer-x", ranked[0].ID)
	assert.Equal(t, "offer-y", ranked[1].ID)
}

func TestRank_SkipsInadmissibleOffers(t *testing.T) {
	engine := newEngine()
	accounts := []model.Account{card("card-a", 12_000, 0.22, 360)}
	cf := cashflow(4000, 1500)

	eligible := fullOffer("offer-a", 0.12, 36, 50_000, nil, nil, valueobject.DelinquencyLate30)
	tooSmall := fullOffer("offer-b", 0.09, 36, 5_000, nil, nil, valueobject.DelinquencyLate30)
	catalog := mustCatalog(t, eligible, tooSmall)

	verdicts, err := engine.Evaluate(accounts, model.CreditProfile{CustomerID: "c", Score: 700}, cf, catalog)
	require.NoError(t, err)

	sim := service.NewScenarioSimulator(service.SimulatorConfig{})
	baseline, err := sim.Simulate(accounts, cf, valueobject.StrategyMinimum, nil, 0)
	require.NoError(t, err)

	ranked, err := engine.Rank(accounts, cf, catalog, verdicts, baseline, 0)

	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "offer-a", ranked[0].ID)
}
