package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/expenses/ledger"
)

func tx(ym, group, masterCat, merchantGroup string, amount float64) ledger.Transaction {
	date, _ := time.Parse("2006-01", ym)
	typ := ledger.Expense
	if amount > 0 {
		typ = ledger.Income
	}
	abs := amount
	if abs < 0 {
		abs = -abs
	}
	return ledger.Transaction{
		Date:            date,
		Amount:          amount,
		AccountGroup:    group,
		MasterCategory:  masterCat,
		MerchantGroup:   merchantGroup,
		YearMonth:       ym,
		AbsAmount:       abs,
		TransactionType: typ,
	}
}

func TestCashflow(t *testing.T) {
	t.Parallel()

	rows := []ledger.Transaction{
		tx("2024-05", "shared", "Income", "ACME", 5000),
		tx("2024-05", "shared", "Dining", "COFFEE", -50),
		tx("2024-05", "joe", "Shopping", "STORE", -200),
	}

	got := Cashflow(rows)

	require.Len(t, got, 2)
	// Sorted by account group name.
	assert.Equal(t, "joe", got[0].AccountGroup)
	assert.Equal(t, -200.0, got[0].Expense)
	assert.Equal(t, -200.0, got[0].Net)

	assert.Equal(t, "shared", got[1].AccountGroup)
	assert.Equal(t, 5000.0, got[1].Income)
	assert.Equal(t, -50.0, got[1].Expense)
	assert.Equal(t, 4950.0, got[1].Net)
}

func TestTopExpensesFiltersAndSorts(t *testing.T) {
	t.Parallel()

	rows := []ledger.Transaction{
		tx("2024-05", "shared", "Income", "ACME", 5000),
		tx("2024-05", "shared", "Dining", "COFFEE", -6.5),
		tx("2024-05", "shared", "Shopping", "STORE", -300),
		tx("2024-05", "shared", "Travel", "AIRLINE", -150),
	}

	got := TopExpenses(rows, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "STORE", got[0].MerchantGroup)
	assert.Equal(t, "AIRLINE", got[1].MerchantGroup)
}

func TestTopExpensesZeroLimitKeepsAll(t *testing.T) {
	t.Parallel()

	rows := []ledger.Transaction{
		tx("2024-05", "shared", "Dining", "A", -1),
		tx("2024-05", "shared", "Dining", "B", -2),
	}

	got := TopExpenses(rows, 0)
	assert.Len(t, got, 2)
}

func TestTopCategories(t *testing.T) {
	t.Parallel()

	rows := []ledger.Transaction{
		tx("2024-05", "shared", "Dining", "A", -30),
		tx("2024-05", "shared", "Dining", "B", -20),
		tx("2024-05", "shared", "Shopping", "C", -40),
		tx("2024-05", "shared", "Income", "ACME", 5000),
	}

	got := TopCategories(rows, 10)

	require.Len(t, got, 2)
	assert.Equal(t, "Dining", got[0].MasterCategory)
	assert.Equal(t, -50.0, got[0].Total)
	assert.Equal(t, 50.0, got[0].AbsTotal)
	assert.Equal(t, "Shopping", got[1].MasterCategory)
}

func TestTopCategoriesTiesBreakAlphabetically(t *testing.T) {
	t.Parallel()

	rows := []ledger.Transaction{
		tx("2024-05", "shared", "Zeta", "A", -10),
		tx("2024-05", "shared", "Alpha", "B", -10),
	}

	got := TopCategories(rows, 10)

	require.Len(t, got, 2)
	assert.Equal(t, "Alpha", got[0].MasterCategory)
	assert.Equal(t, "Zeta", got[1].MasterCategory)
}

func TestTopMerchantsMinAmountAndExclusions(t *testing.T) {
	t.Parallel()

	rows := []ledger.Transaction{
		tx("2024-05", "shared", "Dining", "COFFEE", -4),    // below min
		tx("2024-05", "shared", "Dining", "COFFEE", -40),   // counted
		tx("2024-05", "shared", "Savings", "BROKER", -900), // excluded category
		tx("2024-05", "shared", "Shopping", "STORE", -25),  // counted
		tx("2024-05", "shared", "Income", "ACME", 5000),    // income
	}

	got := TopMerchants(rows, 10, 5, []string{"Savings"})

	require.Len(t, got, 2)
	assert.Equal(t, "COFFEE", got[0].MerchantGroup)
	assert.Equal(t, 1, got[0].Count)
	assert.Equal(t, 40.0, got[0].AbsTotal)
	assert.Equal(t, "STORE", got[1].MerchantGroup)
}

func TestFilterBySources(t *testing.T) {
	t.Parallel()

	rows := []ledger.Transaction{
		{Source: "chase_checking", Merchant: "A"},
		{Source: "apple_card_joe", Merchant: "B"},
		{Source: "chase_credit_card", Merchant: "C"},
	}

	got := FilterBySources(rows, []string{"chase_checking", "chase_credit_card"})

	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Merchant)
	assert.Equal(t, "C", got[1].Merchant)
}

func TestMonthlySpendingByCategory(t *testing.T) {
	t.Parallel()

	rows := []ledger.Transaction{
		tx("2024-06", "shared", "Dining", "A", -10),
		tx("2024-05", "shared", "Dining", "B", -20),
		tx("2024-05", "shared", "Shopping", "C", -30),
		tx("2024-05", "shared", "Income", "ACME", 1000),
	}

	got := MonthlySpendingByCategory(rows)

	require.Len(t, got, 3)
	assert.Equal(t, MonthlyCategoryRow{YearMonth: "2024-05", MasterCategory: "Dining", Total: -20, AbsTotal: 20}, got[0])
	assert.Equal(t, "Shopping", got[1].MasterCategory)
	assert.Equal(t, "2024-06", got[2].YearMonth)
}

func TestMonthlyTotalsByAccount(t *testing.T) {
	t.Parallel()

	rows := []ledger.Transaction{
		tx("2024-05", "shared", "Income", "ACME", 5000),
		tx("2024-05", "shared", "Dining", "A", -10),
		tx("2024-05", "shared", "Dining", "B", -15),
		tx("2024-05", "joe", "Shopping", "C", -30),
	}

	got := MonthlyTotalsByAccount(rows)

	require.Len(t, got, 3)
	assert.Equal(t, "joe", got[0].AccountGroup)
	assert.Equal(t, -30.0, got[0].Total)

	assert.Equal(t, "shared", got[1].AccountGroup)
	assert.Equal(t, ledger.Expense, got[1].TransactionType)
	assert.Equal(t, -25.0, got[1].Total)

	assert.Equal(t, ledger.Income, got[2].TransactionType)
	assert.Equal(t, 5000.0, got[2].Total)
}

func TestMonthlyCashflow(t *testing.T) {
	t.Parallel()

	rows := []ledger.Transaction{
		tx("2024-06", "shared", "Dining", "A", -10),
		tx("2024-05", "shared", "Income", "ACME", 5000),
		tx("2024-05", "shared", "Shopping", "B", -300),
	}

	got := MonthlyCashflow(rows)

	require.Len(t, got, 2)
	assert.Equal(t, "2024-05", got[0].YearMonth)
	assert.Equal(t, 5000.0, got[0].Income)
	assert.Equal(t, -300.0, got[0].Expense)
	assert.Equal(t, 4700.0, got[0].Net)
	assert.Equal(t, "2024-06", got[1].YearMonth)
	assert.Equal(t, -10.0, got[1].Net)
}

func TestSummaryByCategoryMean(t *testing.T) {
	t.Parallel()

	rows := []ledger.Transaction{
		tx("2024-05", "shared", "Dining", "A", -10),
		tx("2024-05", "shared", "Dining", "B", -30),
		tx("2024-05", "joe", "Dining", "C", -5),
	}

	got := SummaryByCategory(rows)

	require.Len(t, got, 2)
	shared := got[0]
	assert.Equal(t, "Dining", shared.Key)
	assert.Equal(t, "shared", shared.AccountGroup)
	assert.Equal(t, 2, shared.Count)
	assert.Equal(t, -40.0, shared.Total)
	assert.Equal(t, -20.0, shared.Mean)
	assert.Equal(t, 40.0, shared.AbsTotal)

	assert.Equal(t, "joe", got[1].AccountGroup)
}

func TestSummaryByMerchant(t *testing.T) {
	t.Parallel()

	rows := []ledger.Transaction{
		tx("2024-05", "shared", "Dining", "COFFEE", -10),
		tx("2024-05", "shared", "Dining", "COFFEE", -20),
		tx("2024-05", "shared", "Shopping", "STORE", -5),
	}

	got := SummaryByMerchant(rows)

	require.Len(t, got, 2)
	assert.Equal(t, "COFFEE", got[0].Key)
	assert.Equal(t, 30.0, got[0].AbsTotal)
	assert.Equal(t, "STORE", got[1].Key)
}
