package service

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bibbank/consolidation-service/internal/domain/model"
	"github.com/bibbank/consolidation-service/internal/domain/valueobject"
)

// DefaultHorizonMonths bounds every simulation. Exceeding the horizon is a
// non-convergent outcome, not an error.
const DefaultHorizonMonths = 600

var twelve = decimal.NewFromInt(12)

// SimulatorConfig carries the tunables supplied at construction time.
type SimulatorConfig struct {
	HorizonMonths int
}

// ScenarioSimulator computes month-by-month amortization trajectories for
// the four repayment strategies. It is pure computation: no I/O, no shared
// mutable state, deterministic for identical inputs. All monetary rounding
// is round-half-to-even to the cent.
type ScenarioSimulator struct {
	horizon int
}

// NewScenarioSimulator creates a simulator with the given configuration.
func NewScenarioSimulator(cfg SimulatorConfig) *ScenarioSimulator {
	horizon := cfg.HorizonMonths
	if horizon <= 0 {
		horizon = DefaultHorizonMonths
	}
	return &ScenarioSimulator{horizon: horizon}
}

// Simulate runs one strategy over the customer's accounts. The offer is
// required for consolidation strategies and ignored otherwise. A positive
// requestedTermMonths caps the consolidation term below the offer's term.
func (s *ScenarioSimulator) Simulate(
	accounts []model.Account,
	cashflow model.CashflowProfile,
	strategy valueobject.Strategy,
	offer *model.Offer,
	requestedTermMonths int,
) (model.Scenario, error) {
	for _, a := range accounts {
		if err := a.Validate(); err != nil {
			return model.Scenario{}, err
		}
	}
	if err := cashflow.Validate(); err != nil {
		return model.Scenario{}, err
	}

	debts := buildDebts(accounts)
	if len(debts) == 0 {
		return emptyScenario(strategy), nil
	}

	switch strategy {
	case valueobject.StrategyMinimum:
		sc := s.runPortfolio(debts, decimal.Zero)
		sc.Strategy = valueobject.StrategyMinimum
		sc.MonthlyPayment = sumMinimums(debts)
		sc.Notes = append(sc.Notes, "contractual minimum payments only")
		return finishScenario(sc), nil

	case valueobject.StrategyOptimized:
		budget := sumMinimums(debts).Add(availableSurplus(accounts, cashflow))
		sc := s.runPortfolio(debts, budget)
		sc.Strategy = valueobject.StrategyOptimized
		sc.MonthlyPayment = budget
		sc.Notes = append(sc.Notes, "monthly surplus allocated to the highest-rate balance first")
		return finishScenario(sc), nil

	case valueobject.StrategyConsolidation:
		if offer == nil {
			return model.Scenario{}, fmt.Errorf("consolidation strategy requires an offer")
		}
		return s.simulateConsolidation(accounts, *offer, requestedTermMonths, valueobject.StrategyConsolidation, decimal.Zero)

	case valueobject.StrategyConsolidationSurplus:
		if offer == nil {
			return model.Scenario{}, fmt.Errorf("consolidation strategy requires an offer")
		}
		return s.simulateConsolidation(accounts, *offer, requestedTermMonths, valueobject.StrategyConsolidationSurplus, availableSurplus(accounts, cashflow))

	default:
		return model.Scenario{}, fmt.Errorf("unknown strategy %q", string(strategy))
	}
}

// ---------------------------------------------------------------------------
// Portfolio stepping (minimum and optimized strategies)
// ---------------------------------------------------------------------------

type debt struct {
	id         string
	balance    decimal.Decimal
	rate       decimal.Decimal // annual fraction
	minPayment decimal.Decimal
}

func buildDebts(accounts []model.Account) []debt {
	debts := make([]debt, 0, len(accounts))
	for _, a := range accounts {
		if !a.Balance.IsPositive() {
			continue
		}
		debts = append(debts, debt{
			id:         a.ID,
			balance:    a.Balance,
			rate:       a.AnnualRate,
			minPayment: a.MinPayment,
		})
	}
	// Stable working order keeps the allocation tie-break reproducible.
	sort.Slice(debts, func(i, j int) bool { return debts[i].id < debts[j].id })
	return debts
}

// runPortfolio advances all debts month by month. Each open account accrues
// interest, then pays its contractual minimum (capped at the balance). Any
// budget beyond the minimums due is allocated avalanche-style: highest rate
// first, then largest balance, then account ID. Minimum payments freed by a
// closed account stay in the budget, so they fold back into the surplus for
// subsequent months.
func (s *ScenarioSimulator) runPortfolio(debts []debt, budget decimal.Decimal) model.Scenario {
	working := make([]debt, len(debts))
	copy(working, debts)

	totalInterest := decimal.Zero
	totalPaid := decimal.Zero
	steps := make([]model.MonthStep, 0, 64)

	for month := 1; month <= s.horizon; month++ {
		if allPaidOff(working) {
			return model.Scenario{
				PayoffMonths:  month - 1,
				TotalInterest: totalInterest,
				TotalPaid:     totalPaid,
				Steps:         steps,
			}
		}

		monthInterest := decimal.Zero
		for i := range working {
			if !working[i].balance.IsPositive() {
				continue
			}
			interest := monthlyInterest(working[i].balance, working[i].rate)
			working[i].balance = working[i].balance.Add(interest)
			monthInterest = monthInterest.Add(interest)
		}

		payments := make([]decimal.Decimal, len(working))
		required := decimal.Zero
		for i := range working {
			if !working[i].balance.IsPositive() {
				payments[i] = decimal.Zero
				continue
			}
			payments[i] = decimal.Min(working[i].minPayment, working[i].balance)
			required = required.Add(payments[i])
		}

		// Minimums are always funded; only a positive remainder is
		// discretionary.
		extra := budget.Sub(required)
		for extra.IsPositive() {
			target := avalancheTarget(working, payments)
			if target < 0 {
				break
			}
			capacity := working[target].balance.Sub(payments[target])
			applied := decimal.Min(extra, capacity)
			payments[target] = payments[target].Add(applied)
			extra = extra.Sub(applied)
		}

		monthPaid := decimal.Zero
		for i := range working {
			if !payments[i].IsPositive() {
				continue
			}
			working[i].balance = working[i].balance.Sub(payments[i])
			monthPaid = monthPaid.Add(payments[i])
		}

		totalInterest = totalInterest.Add(monthInterest)
		totalPaid = totalPaid.Add(monthPaid)
		steps = append(steps, model.MonthStep{
			Month:         month,
			Interest:      monthInterest,
			Payment:       monthPaid,
			EndingBalance: totalOutstanding(working),
		})

		if allPaidOff(working) {
			return model.Scenario{
				PayoffMonths:  month,
				TotalInterest: totalInterest,
				TotalPaid:     totalPaid,
				Steps:         steps,
			}
		}
	}

	return model.Scenario{
		PayoffMonths:  model.PayoffUnbounded,
		NonConvergent: true,
		TotalInterest: totalInterest,
		TotalPaid:     totalPaid,
		Steps:         steps,
		Notes:         []string{"balances do not amortize within the simulation horizon"},
	}
}

// avalancheTarget picks the open account with remaining payment capacity:
// highest rate first, then largest balance, then smallest account ID.
func avalancheTarget(working []debt, payments []decimal.Decimal) int {
	target := -1
	for i := range working {
		if !working[i].balance.IsPositive() {
			continue
		}
		if !working[i].balance.Sub(payments[i]).IsPositive() {
			continue
		}
		if target < 0 {
			target = i
			continue
		}
		switch {
		case working[i].rate.GreaterThan(working[target].rate):
			target = i
		case working[i].rate.Equal(working[target].rate) &&
			working[i].balance.GreaterThan(working[target].balance):
			target = i
		}
	}
	return target
}

// ---------------------------------------------------------------------------
// Consolidation stepping
// ---------------------------------------------------------------------------

func (s *ScenarioSimulator) simulateConsolidation(
	accounts []model.Account,
	offer model.Offer,
	requestedTermMonths int,
	strategy valueobject.Strategy,
	extra decimal.Decimal,
) (model.Scenario, error) {
	balance := model.TotalBalance(accounts)
	term := offer.TermMonths
	if requestedTermMonths > 0 && requestedTermMonths < term {
		term = requestedTermMonths
	}

	basePayment := AnnuityPayment(balance, offer.AnnualRate, term)
	payment := basePayment.Add(extra)

	remaining := balance
	totalInterest := decimal.Zero
	totalPaid := decimal.Zero
	steps := make([]model.MonthStep, 0, term)
	nonConvergent := false
	months := 0

	for month := 1; month <= s.horizon && remaining.IsPositive(); month++ {
		interest := monthlyInterest(remaining, offer.AnnualRate)
		remaining = remaining.Add(interest)

		paid := payment
		// The final month absorbs rounding drift so the ending balance is
		// exactly zero.
		if remaining.LessThanOrEqual(payment) || month == term {
			paid = remaining
		}
		if !paid.GreaterThan(interest) {
			nonConvergent = true
			months = model.PayoffUnbounded
			break
		}

		remaining = remaining.Sub(paid)
		totalInterest = totalInterest.Add(interest)
		totalPaid = totalPaid.Add(paid)
		months = month
		steps = append(steps, model.MonthStep{
			Month:         month,
			Interest:      interest,
			Payment:       paid,
			EndingBalance: remaining,
		})
	}

	if remaining.IsPositive() && !nonConvergent {
		nonConvergent = true
		months = model.PayoffUnbounded
	}

	notes := []string{
		fmt.Sprintf("consolidates %d accounts into offer %s at %s%% over %d months",
			len(accounts), offer.ID, offer.AnnualRate.Mul(decimal.NewFromInt(100)).String(), term),
	}
	// The tag follows the requested strategy even when the available surplus
	// is zero and both variants produce the same trajectory.
	if strategy == valueobject.StrategyConsolidationSurplus {
		notes = append(notes, "monthly surplus added to the fixed consolidation payment")
	}
	if nonConvergent {
		notes = append(notes, "balances do not amortize within the simulation horizon")
	}

	return finishScenario(model.Scenario{
		Strategy:       strategy,
		OfferID:        offer.ID,
		MonthlyPayment: payment,
		PayoffMonths:   months,
		NonConvergent:  nonConvergent,
		TotalInterest:  totalInterest,
		TotalPaid:      totalPaid,
		Steps:          steps,
		Notes:          notes,
	}), nil
}

// AnnuityPayment is the standard fixed-term amortizing payment for the
// given balance, annual rate, and term, rounded half-to-even to the cent.
func AnnuityPayment(balance, annualRate decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths <= 0 || !balance.IsPositive() {
		return decimal.Zero
	}
	monthlyRate := annualRate.Div(twelve)
	if monthlyRate.IsZero() {
		return balance.Div(decimal.NewFromInt(int64(termMonths))).RoundBank(2)
	}
	factor := decimal.NewFromInt(1).Add(monthlyRate).Pow(decimal.NewFromInt(int64(termMonths)))
	payment := balance.Mul(monthlyRate).Mul(factor).Div(factor.Sub(decimal.NewFromInt(1)))
	return payment.RoundBank(2)
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

// monthlyInterest is balance * APR / 12, rounded half-to-even to the cent.
func monthlyInterest(balance, annualRate decimal.Decimal) decimal.Decimal {
	return balance.Mul(annualRate).Div(twelve).RoundBank(2)
}

// availableSurplus is the discretionary budget beyond the minimums. A zero
// or negative surplus contributes nothing; minimum payments are always
// funded.
func availableSurplus(accounts []model.Account, cashflow model.CashflowProfile) decimal.Decimal {
	surplus := cashflow.Surplus(accounts)
	if surplus.IsNegative() {
		return decimal.Zero
	}
	return surplus
}

func sumMinimums(debts []debt) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		total = total.Add(d.minPayment)
	}
	return total
}

func allPaidOff(debts []debt) bool {
	for _, d := range debts {
		if d.balance.IsPositive() {
			return false
		}
	}
	return true
}

func totalOutstanding(debts []debt) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		if d.balance.IsPositive() {
			total = total.Add(d.balance)
		}
	}
	return total
}

func finishScenario(sc model.Scenario) model.Scenario {
	sc.PrincipalPaid = sc.TotalPaid.Sub(sc.TotalInterest)
	return sc
}

func emptyScenario(strategy valueobject.Strategy) model.Scenario {
	return model.Scenario{
		Strategy:      strategy,
		PayoffMonths:  0,
		TotalInterest: decimal.Zero,
		TotalPaid:     decimal.Zero,
		PrincipalPaid: decimal.Zero,
		Notes:         []string{"no active debts to analyze"},
	}
}
