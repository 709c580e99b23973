package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/expenses/config"
	"github.com/rustyeddy/expenses/ledger"
	"github.com/rustyeddy/expenses/rules"
)

func strp(s string) *string { return &s }

func testConfig() *config.Config {
	return &config.Config{
		Exclusions: config.Exclusions{
			Exclusions: []config.Exclusion{
				{Source: strp("chase_credit_card"), Type: strp("Payment"), Reason: "card payments"},
			},
		},
		Rules: config.Rules{
			CustomRules: []config.CustomRule{
				{
					Name:       "Salary",
					Conditions: config.RuleConditions{DescriptionContains: strp("SALARY")},
					Action:     config.RuleAction{Category: "Salary Income", Flag: "recurring"},
				},
			},
			MerchantGroups: []config.MerchantGroup{
				{Name: "coffee", MasterName: "Coffee Shops", Patterns: []string{"STARBUCKS"}},
			},
		},
		CategoryMapping: config.CategoryMapping{
			DefaultCategory: "Uncategorized",
			MasterCategories: map[string]string{
				"Salary Income": "Income",
				"Food & Drink":  "Dining",
			},
		},
		Report: config.ReportConfig{
			ReportSettings: config.ReportSettings{
				AccountGroups: []config.AccountGroup{
					{Name: "shared", Sources: []string{"chase_checking", "chase_credit_card"}},
				},
			},
		},
	}
}

func TestRunFullPipeline(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	rows := []ledger.Transaction{
		{Date: date, Merchant: "PAYMENT THANK YOU", Type: "Payment", Amount: -500, Source: "chase_credit_card"},
		{Date: date, Merchant: "ACME CORP SALARY", Type: "Credit", Amount: 5000, Source: "chase_checking"},
		{Date: date, Merchant: "STARBUCKS #42", Type: "Sale", Category: "Food & Drink", Amount: -6.50, Source: "chase_credit_card"},
	}

	audit := &rules.Audit{}
	got := Run(rows, testConfig(), audit)

	require.Len(t, got, 2)

	// Custom rule overrode the category before mapping ran.
	salary := got[0]
	assert.Equal(t, "Salary Income", salary.Category)
	assert.Equal(t, "recurring", salary.Flag)
	assert.Equal(t, "Income", salary.MasterCategory)
	assert.Equal(t, ledger.Income, salary.TransactionType)
	assert.Equal(t, "shared", salary.AccountGroup)

	coffee := got[1]
	assert.Equal(t, "Dining", coffee.MasterCategory)
	assert.Equal(t, "Coffee Shops", coffee.MerchantGroup)
	assert.Equal(t, 6.50, coffee.AbsAmount)
	assert.Equal(t, "2024-06", coffee.YearMonth)

	// One exclusion event plus one rule event.
	require.Len(t, audit.Events, 2)
	assert.Equal(t, "exclusions", audit.Events[0].Stage)
	assert.Equal(t, 1, audit.Events[0].Matched)
	assert.Equal(t, "custom_rules", audit.Events[1].Stage)
	assert.Equal(t, 1, audit.Events[1].Matched)
}

func TestRunEmptyConfigIsEnrichmentOnly(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := []ledger.Transaction{
		{Date: date, Merchant: "SHOP", Amount: -10, Source: "somewhere"},
	}

	got := Run(rows, &config.Config{}, nil)

	require.Len(t, got, 1)
	assert.Equal(t, config.Uncategorized, got[0].MasterCategory)
	assert.Equal(t, "SHOP", got[0].MerchantGroup)
	assert.Equal(t, UnknownAccountGroup, got[0].AccountGroup)
	assert.Equal(t, ledger.Expense, got[0].TransactionType)
}

func TestRunDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := []ledger.Transaction{
		{Date: date, Merchant: "ACME SALARY", Amount: 5000, Source: "chase_checking"},
	}

	Run(rows, testConfig(), nil)

	assert.Empty(t, rows[0].Category)
	assert.Empty(t, rows[0].MasterCategory)
	assert.Empty(t, rows[0].MerchantGroup)
}
