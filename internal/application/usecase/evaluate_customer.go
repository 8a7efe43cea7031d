package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/consolidation-service/internal/application/dto"
	"github.com/bibbank/consolidation-service/internal/domain/event"
	"github.com/bibbank/consolidation-service/internal/domain/model"
	"github.com/bibbank/consolidation-service/internal/domain/port"
	"github.com/bibbank/consolidation-service/internal/domain/service"
	"github.com/bibbank/consolidation-service/internal/domain/valueobject"
)

// EvaluateCustomerUseCase is the decision facade: the single entry point
// external collaborators call. It runs the eligibility engine once, the
// baseline and optimized simulations, and a consolidation pair per
// admissible offer, then assembles the composite result.
type EvaluateCustomerUseCase struct {
	engine    *service.EligibilityEngine
	simulator *service.ScenarioSimulator
	catalog   model.Catalog
	publisher port.EventPublisher
}

// NewEvaluateCustomerUseCase wires dependencies. The catalog is injected
// explicitly rather than read from ambient state; it is immutable and safe
// for concurrent use.
func NewEvaluateCustomerUseCase(
	engine *service.EligibilityEngine,
	simulator *service.ScenarioSimulator,
	catalog model.Catalog,
	publisher port.EventPublisher,
) *EvaluateCustomerUseCase {
	return &EvaluateCustomerUseCase{
		engine:    engine,
		simulator: simulator,
		catalog:   catalog,
		publisher: publisher,
	}
}

// Execute decides one customer. Validation failures abort with no partial
// result; non-convergence and an empty portfolio are domain outcomes
// delivered in the response.
func (uc *EvaluateCustomerUseCase) Execute(
	ctx context.Context,
	req dto.EvaluateCustomerRequest,
) (dto.EvaluateCustomerResponse, error) {
	if req.CustomerID == "" {
		return dto.EvaluateCustomerResponse{}, valueobject.NewDataValidationError("customer_id", "must not be empty")
	}
	if req.RequestedTermMonths < 0 {
		return dto.EvaluateCustomerResponse{}, valueobject.NewDataValidationError("requested_term_months", "term %d is negative", req.RequestedTermMonths)
	}

	accounts, err := toAccounts(req.Accounts)
	if err != nil {
		return dto.EvaluateCustomerResponse{}, err
	}
	credit := model.CreditProfile{CustomerID: req.CustomerID, Score: req.Credit.Score, Flags: req.Credit.Flags}
	cashflow := model.CashflowProfile{
		MonthlyIncome:        req.Cashflow.MonthlyIncome,
		RecurringObligations: req.Cashflow.RecurringObligations,
	}

	result, err := uc.decide(req.CustomerID, req.RequestedTermMonths, accounts, credit, cashflow)
	if err != nil {
		return dto.EvaluateCustomerResponse{}, err
	}

	bestOfferID := ""
	if best := result.BestOffer(); best != nil {
		bestOfferID = best.Offer.ID
	}
	completed := event.NewEvaluationCompleted(
		result.EvaluationID, result.CustomerID, len(result.Offers), bestOfferID, result.Baseline.NonConvergent,
	)
	if err := uc.publisher.Publish(ctx, completed); err != nil {
		return dto.EvaluateCustomerResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toEvaluationResponse(result), nil
}

// decide is the pure composition: eligibility, baseline, optimized, and the
// per-offer consolidation pair. No I/O happens here.
func (uc *EvaluateCustomerUseCase) decide(
	customerID string,
	requestedTerm int,
	accounts []model.Account,
	credit model.CreditProfile,
	cashflow model.CashflowProfile,
) (model.EvaluationResult, error) {
	result := model.EvaluationResult{
		EvaluationID:        uuid.New().String(),
		CustomerID:          customerID,
		RequestedTermMonths: requestedTerm,
		EvaluatedAt:         time.Now().UTC(),
	}

	baseline, err := uc.simulator.Simulate(accounts, cashflow, valueobject.StrategyMinimum, nil, 0)
	if err != nil {
		return model.EvaluationResult{}, fmt.Errorf("baseline scenario: %w", err)
	}
	baseline.SavingsVsMinimum = decimal.Zero
	result.Baseline = baseline

	optimized, err := uc.simulator.Simulate(accounts, cashflow, valueobject.StrategyOptimized, nil, 0)
	if err != nil {
		return model.EvaluationResult{}, fmt.Errorf("optimized scenario: %w", err)
	}
	optimized.SavingsVsMinimum = baseline.TotalPaid.Sub(optimized.TotalPaid)
	result.Optimized = optimized

	// Nothing to consolidate: the baseline trajectory is still returned so
	// the caller can show a coherent "no offer available" outcome.
	if len(accounts) == 0 || !model.TotalBalance(accounts).IsPositive() {
		return result, nil
	}

	verdicts, err := uc.engine.Evaluate(accounts, credit, cashflow, uc.catalog)
	if err != nil {
		return model.EvaluationResult{}, err
	}

	ranked, err := uc.engine.Rank(accounts, cashflow, uc.catalog, verdicts, baseline, requestedTerm)
	if err != nil {
		return model.EvaluationResult{}, fmt.Errorf("rank offers: %w", err)
	}

	verdictByOffer := make(map[string]model.EligibilityVerdict, len(verdicts))
	for _, v := range verdicts {
		verdictByOffer[v.OfferID] = v
		if !v.Admissible {
			result.Rejected = append(result.Rejected, v)
		}
	}

	for _, offer := range ranked {
		consolidation, err := uc.simulator.Simulate(accounts, cashflow, valueobject.StrategyConsolidation, &offer, requestedTerm)
		if err != nil {
			return model.EvaluationResult{}, fmt.Errorf("consolidation scenario for offer %s: %w", offer.ID, err)
		}
		consolidation.SavingsVsMinimum = baseline.TotalPaid.Sub(consolidation.TotalPaid)

		surplus, err := uc.simulator.Simulate(accounts, cashflow, valueobject.StrategyConsolidationSurplus, &offer, requestedTerm)
		if err != nil {
			return model.EvaluationResult{}, fmt.Errorf("consolidation-surplus scenario for offer %s: %w", offer.ID, err)
		}
		surplus.SavingsVsMinimum = baseline.TotalPaid.Sub(surplus.TotalPaid)

		result.Offers = append(result.Offers, model.OfferOutcome{
			Offer:                offer,
			Verdict:              verdictByOffer[offer.ID],
			Consolidation:        consolidation,
			ConsolidationSurplus: surplus,
		})
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func toAccounts(records []dto.AccountRecord) ([]model.Account, error) {
	accounts := make([]model.Account, 0, len(records))
	for _, r := range records {
		productType, err := valueobject.ParseProductType(r.ProductType)
		if err != nil {
			return nil, valueobject.NewDataValidationError("account.product_type", "account %s: %v", r.ID, err)
		}
		delinquency, err := valueobject.ParseDelinquency(r.Delinquency)
		if err != nil {
			return nil, valueobject.NewDataValidationError("account.delinquency", "account %s: %v", r.ID, err)
		}
		account := model.Account{
			ID:          r.ID,
			Type:        productType,
			Balance:     r.Balance,
			AnnualRate:  r.AnnualRate,
			MinPayment:  r.MinPayment,
			Delinquency: delinquency,
			TermMonths:  r.TermMonths,
		}
		if err := account.Validate(); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func toEvaluationResponse(result model.EvaluationResult) dto.EvaluateCustomerResponse {
	resp := dto.EvaluateCustomerResponse{
		EvaluationID:        result.EvaluationID,
		CustomerID:          result.CustomerID,
		RequestedTermMonths: result.RequestedTermMonths,
		Baseline:            toScenarioResponse(result.Baseline),
		Optimized:           toScenarioResponse(result.Optimized),
		Offers:              make([]dto.OfferOutcomeResponse, 0, len(result.Offers)),
		Rejected:            make([]dto.VerdictResponse, 0, len(result.Rejected)),
		EvaluatedAt:         result.EvaluatedAt,
	}
	if best := result.BestOffer(); best != nil {
		resp.BestOfferID = best.Offer.ID
	}
	for _, outcome := range result.Offers {
		resp.Offers = append(resp.Offers, dto.OfferOutcomeResponse{
			OfferID:              outcome.Offer.ID,
			AnnualRate:           outcome.Offer.AnnualRate,
			TermMonths:           outcome.Offer.TermMonths,
			Verdict:              toVerdictResponse(outcome.Verdict),
			Consolidation:        toScenarioResponse(outcome.Consolidation),
			ConsolidationSurplus: toScenarioResponse(outcome.ConsolidationSurplus),
		})
	}
	for _, v := range result.Rejected {
		resp.Rejected = append(resp.Rejected, toVerdictResponse(v))
	}
	return resp
}

func toVerdictResponse(v model.EligibilityVerdict) dto.VerdictResponse {
	rules := make([]dto.RuleResultResponse, 0, len(v.Rules))
	for _, r := range v.Rules {
		rules = append(rules, dto.RuleResultResponse{
			Rule:     r.Kind.String(),
			Passed:   r.Passed,
			Evidence: r.Evidence,
		})
	}
	return dto.VerdictResponse{OfferID: v.OfferID, Admissible: v.Admissible, Rules: rules}
}

func toScenarioResponse(sc model.Scenario) dto.ScenarioResponse {
	return dto.ScenarioResponse{
		Strategy:         sc.Strategy.String(),
		OfferID:          sc.OfferID,
		MonthlyPayment:   sc.MonthlyPayment,
		PayoffMonths:     sc.PayoffMonths,
		NonConvergent:    sc.NonConvergent,
		TotalInterest:    sc.TotalInterest,
		TotalPaid:        sc.TotalPaid,
		PrincipalPaid:    sc.PrincipalPaid,
		SavingsVsMinimum: sc.SavingsVsMinimum,
		Notes:            sc.Notes,
	}
}
