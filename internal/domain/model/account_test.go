package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/consolidation-service/internal/domain/model"
	"github.com/bibbank/consolidation-service/internal/domain/valueobject"
)

func validAccount() model.Account {
	return model.Account{
		ID:          "acct-1",
		Type:        valueobject.ProductTypeCard,
		Balance:     decimal.NewFromInt(5000),
		AnnualRate:  decimal.NewFromFloat(0.21),
		MinPayment:  decimal.NewFromInt(150),
		Delinquency: valueobject.DelinquencyCurrent,
	}
}

func TestAccount_Validate(t *testing.T) {
	t.Run("valid account", func(t *testing.T) {
		require.NoError(t, validAccount().Validate())
	})

	cases := []struct {
		name   string
		mutate func(*model.Account)
		field  string
	}{
		{"empty ID", func(a *model.Account) { a.ID = "" }, "account.id"},
		{"unknown product type", func(a *model.Account) { a.Type = "mortgage" }, "account.product_type"},
		{"negative balance", func(a *model.Account) { a.Balance = decimal.NewFromInt(-1) }, "account.balance"},
		{"negative rate", func(a *model.Account) { a.AnnualRate = decimal.NewFromFloat(-0.01) }, "account.annual_rate"},
		{"negative minimum", func(a *model.Account) { a.MinPayment = decimal.NewFromInt(-5) }, "account.min_payment"},
		{"unknown delinquency", func(a *model.Account) { a.Delinquency = "defaulted" }, "account.delinquency"},
		{"negative term", func(a *model.Account) { a.TermMonths = -12 }, "account.term_months"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			account := validAccount()
			tc.mutate(&account)

			err := account.Validate()

			var validationErr *valueobject.DataValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestCreditProfile_Validate(t *testing.T) {
	require.NoError(t, model.CreditProfile{CustomerID: "cust-1", Score: 700}.Validate())

	err := model.CreditProfile{Score: 700}.Validate()
	var validationErr *valueobject.DataValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "credit_profile.customer_id", validationErr.Field)
}

func TestCashflowProfile(t *testing.T) {
	cf := model.CashflowProfile{
		MonthlyIncome:        decimal.NewFromInt(4000),
		RecurringObligations: decimal.NewFromInt(1500),
	}
	require.NoError(t, cf.Validate())
	assert.True(t, cf.DisposableIncome().Equal(decimal.NewFromInt(2500)))

	accounts := []model.Account{validAccount(), validAccount()}
	assert.True(t, cf.Surplus(accounts).Equal(decimal.NewFromInt(2200)))

	t.Run("surplus may be negative", func(t *testing.T) {
		tight := model.CashflowProfile{
			MonthlyIncome:        decimal.NewFromInt(1000),
			RecurringObligations: decimal.NewFromInt(900),
		}
		assert.True(t, tight.Surplus(accounts).Equal(decimal.NewFromInt(-200)))
	})

	t.Run("negative fields rejected", func(t *testing.T) {
		bad := model.CashflowProfile{MonthlyIncome: decimal.NewFromInt(-1)}
		require.Error(t, bad.Validate())
	})
}

func TestTotalBalanceAndWorstDelinquency(t *testing.T) {
	a := validAccount()
	b := validAccount()
	b.ID = "acct-2"
	b.Balance = decimal.NewFromInt(3000)
	b.Delinquency = valueobject.DelinquencyLate60Plus

	accounts := []model.Account{a, b}
	assert.True(t, model.TotalBalance(accounts).Equal(decimal.NewFromInt(8000)))
	assert.Equal(t, valueobject.DelinquencyLate60Plus, model.WorstDelinquency(accounts))

	assert.Equal(t, valueobject.DelinquencyCurrent, model.WorstDelinquency(nil),
		"an empty portfolio is current by definition")
}
