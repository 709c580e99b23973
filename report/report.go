// Package report aggregates the enriched dataset into the summaries the CLI
// prints and saves. All functions are pure; grouping output is sorted so
// reports are reproducible run to run.
package report

import (
	"sort"

	"github.com/rustyeddy/expenses/ledger"
)

// CashflowRow is income vs expense for one account group.
type CashflowRow struct {
	AccountGroup string
	Income       float64
	Expense      float64
	Net          float64
}

// Cashflow sums income and expenses per account group.
func Cashflow(rows []ledger.Transaction) []CashflowRow {
	byGroup := make(map[string]*CashflowRow)
	for _, tx := range rows {
		r, ok := byGroup[tx.AccountGroup]
		if !ok {
			r = &CashflowRow{AccountGroup: tx.AccountGroup}
			byGroup[tx.AccountGroup] = r
		}
		if tx.TransactionType == ledger.Income {
			r.Income += tx.Amount
		} else {
			r.Expense += tx.Amount
		}
	}

	out := make([]CashflowRow, 0, len(byGroup))
	for _, r := range byGroup {
		r.Net = r.Income + r.Expense
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountGroup < out[j].AccountGroup })
	return out
}

// TopExpenses returns the n largest expenses by absolute amount. Income rows
// are excluded; ties keep dataset order.
func TopExpenses(rows []ledger.Transaction, n int) []ledger.Transaction {
	var expenses []ledger.Transaction
	for _, tx := range rows {
		if tx.Amount < 0 {
			expenses = append(expenses, tx)
		}
	}
	sort.SliceStable(expenses, func(i, j int) bool { return expenses[i].AbsAmount > expenses[j].AbsAmount })
	if n > 0 && len(expenses) > n {
		expenses = expenses[:n]
	}
	return expenses
}

// CategoryTotal is summed spending for one master category.
type CategoryTotal struct {
	MasterCategory string
	Total          float64
	AbsTotal       float64
}

// TopCategories sums expense rows per master category, largest absolute
// spend first. Ties break alphabetically.
func TopCategories(rows []ledger.Transaction, n int) []CategoryTotal {
	byCat := make(map[string]*CategoryTotal)
	for _, tx := range rows {
		if tx.Amount >= 0 {
			continue
		}
		c, ok := byCat[tx.MasterCategory]
		if !ok {
			c = &CategoryTotal{MasterCategory: tx.MasterCategory}
			byCat[tx.MasterCategory] = c
		}
		c.Total += tx.Amount
		c.AbsTotal += tx.AbsAmount
	}

	out := make([]CategoryTotal, 0, len(byCat))
	for _, c := range byCat {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AbsTotal != out[j].AbsTotal {
			return out[i].AbsTotal > out[j].AbsTotal
		}
		return out[i].MasterCategory < out[j].MasterCategory
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// MerchantTotal is summed spending for one merchant group.
type MerchantTotal struct {
	MerchantGroup string
	Total         float64
	AbsTotal      float64
	Count         int
}

// TopMerchants sums expense rows per merchant group, dropping rows below
// minAmount (absolute) and rows in any of the excluded master categories.
func TopMerchants(rows []ledger.Transaction, n int, minAmount float64, excludedCategories []string) []MerchantTotal {
	excluded := make(map[string]bool, len(excludedCategories))
	for _, c := range excludedCategories {
		excluded[c] = true
	}

	byMerchant := make(map[string]*MerchantTotal)
	for _, tx := range rows {
		if tx.Amount >= 0 || tx.AbsAmount < minAmount || excluded[tx.MasterCategory] {
			continue
		}
		m, ok := byMerchant[tx.MerchantGroup]
		if !ok {
			m = &MerchantTotal{MerchantGroup: tx.MerchantGroup}
			byMerchant[tx.MerchantGroup] = m
		}
		m.Total += tx.Amount
		m.AbsTotal += tx.AbsAmount
		m.Count++
	}

	out := make([]MerchantTotal, 0, len(byMerchant))
	for _, m := range byMerchant {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AbsTotal != out[j].AbsTotal {
			return out[i].AbsTotal > out[j].AbsTotal
		}
		return out[i].MerchantGroup < out[j].MerchantGroup
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// FilterBySources keeps the rows whose source is in sources, preserving
// order.
func FilterBySources(rows []ledger.Transaction, sources []string) []ledger.Transaction {
	want := make(map[string]bool, len(sources))
	for _, s := range sources {
		want[s] = true
	}
	var out []ledger.Transaction
	for _, tx := range rows {
		if want[tx.Source] {
			out = append(out, tx)
		}
	}
	return out
}

// MonthlyCategoryRow is one month's spending within one master category.
type MonthlyCategoryRow struct {
	YearMonth      string
	MasterCategory string
	Total          float64
	AbsTotal       float64
}

// MonthlySpendingByCategory sums expense rows per (month, master category),
// sorted chronologically then by category.
func MonthlySpendingByCategory(rows []ledger.Transaction) []MonthlyCategoryRow {
	type key struct{ ym, cat string }
	byKey := make(map[key]*MonthlyCategoryRow)
	for _, tx := range rows {
		if tx.Amount >= 0 {
			continue
		}
		k := key{tx.YearMonth, tx.MasterCategory}
		r, ok := byKey[k]
		if !ok {
			r = &MonthlyCategoryRow{YearMonth: tx.YearMonth, MasterCategory: tx.MasterCategory}
			byKey[k] = r
		}
		r.Total += tx.Amount
		r.AbsTotal += tx.AbsAmount
	}

	out := make([]MonthlyCategoryRow, 0, len(byKey))
	for _, r := range byKey {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].YearMonth != out[j].YearMonth {
			return out[i].YearMonth < out[j].YearMonth
		}
		return out[i].MasterCategory < out[j].MasterCategory
	})
	return out
}

// MonthlyAccountRow is one month's total for one account group and
// transaction type.
type MonthlyAccountRow struct {
	YearMonth       string
	AccountGroup    string
	TransactionType ledger.TransactionType
	Total           float64
}

// MonthlyTotalsByAccount sums all rows per (month, account group, type).
func MonthlyTotalsByAccount(rows []ledger.Transaction) []MonthlyAccountRow {
	type key struct {
		ym, group string
		typ       ledger.TransactionType
	}
	byKey := make(map[key]*MonthlyAccountRow)
	for _, tx := range rows {
		k := key{tx.YearMonth, tx.AccountGroup, tx.TransactionType}
		r, ok := byKey[k]
		if !ok {
			r = &MonthlyAccountRow{YearMonth: tx.YearMonth, AccountGroup: tx.AccountGroup, TransactionType: tx.TransactionType}
			byKey[k] = r
		}
		r.Total += tx.Amount
	}

	out := make([]MonthlyAccountRow, 0, len(byKey))
	for _, r := range byKey {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].YearMonth != out[j].YearMonth {
			return out[i].YearMonth < out[j].YearMonth
		}
		if out[i].AccountGroup != out[j].AccountGroup {
			return out[i].AccountGroup < out[j].AccountGroup
		}
		return out[i].TransactionType < out[j].TransactionType
	})
	return out
}

// MonthlyCashflowRow is one month's income, expense, and net.
type MonthlyCashflowRow struct {
	YearMonth string
	Income    float64
	Expense   float64
	Net       float64
}

// MonthlyCashflow sums income and expenses per calendar month, sorted
// chronologically.
func MonthlyCashflow(rows []ledger.Transaction) []MonthlyCashflowRow {
	byMonth := make(map[string]*MonthlyCashflowRow)
	for _, tx := range rows {
		r, ok := byMonth[tx.YearMonth]
		if !ok {
			r = &MonthlyCashflowRow{YearMonth: tx.YearMonth}
			byMonth[tx.YearMonth] = r
		}
		if tx.TransactionType == ledger.Income {
			r.Income += tx.Amount
		} else {
			r.Expense += tx.Amount
		}
	}

	out := make([]MonthlyCashflowRow, 0, len(byMonth))
	for _, r := range byMonth {
		r.Net = r.Income + r.Expense
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].YearMonth < out[j].YearMonth })
	return out
}

// GroupSummary is the sum/count/mean aggregate for one (key, account group)
// pair, used by the intermediate dumps.
type GroupSummary struct {
	Key          string // master category or merchant group
	AccountGroup string
	Total        float64
	Count        int
	Mean         float64
	AbsTotal     float64
}

// SummaryByCategory aggregates all rows per (master category, account
// group), largest absolute total first.
func SummaryByCategory(rows []ledger.Transaction) []GroupSummary {
	return groupSummary(rows, func(tx ledger.Transaction) string { return tx.MasterCategory })
}

// SummaryByMerchant aggregates all rows per (merchant group, account group),
// largest absolute total first.
func SummaryByMerchant(rows []ledger.Transaction) []GroupSummary {
	return groupSummary(rows, func(tx ledger.Transaction) string { return tx.MerchantGroup })
}

func groupSummary(rows []ledger.Transaction, keyOf func(ledger.Transaction) string) []GroupSummary {
	type key struct{ k, group string }
	byKey := make(map[key]*GroupSummary)
	for _, tx := range rows {
		k := key{keyOf(tx), tx.AccountGroup}
		r, ok := byKey[k]
		if !ok {
			r = &GroupSummary{Key: k.k, AccountGroup: k.group}
			byKey[k] = r
		}
		r.Total += tx.Amount
		r.AbsTotal += tx.AbsAmount
		r.Count++
	}

	out := make([]GroupSummary, 0, len(byKey))
	for _, r := range byKey {
		r.Mean = r.Total / float64(r.Count)
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AbsTotal != out[j].AbsTotal {
			return out[i].AbsTotal > out[j].AbsTotal
		}
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].AccountGroup < out[j].AccountGroup
	})
	return out
}
