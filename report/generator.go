package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/rustyeddy/expenses/config"
	"github.com/rustyeddy/expenses/export"
	"github.com/rustyeddy/expenses/ledger"
)

// Generator writes report CSVs under <output>/reports and intermediate dumps
// under <output>/intermediate, printing the headline numbers as it goes.
type Generator struct {
	cfg    *config.Config
	outDir string
}

func NewGenerator(cfg *config.Config, outputFolder string) *Generator {
	return &Generator{cfg: cfg, outDir: outputFolder}
}

func (g *Generator) ReportsDir() string      { return filepath.Join(g.outDir, "reports") }
func (g *Generator) IntermediateDir() string { return filepath.Join(g.outDir, "intermediate") }

// GenerateAll writes every report for the enriched dataset.
func (g *Generator) GenerateAll(rows []ledger.Transaction) error {
	if err := os.MkdirAll(g.ReportsDir(), 0755); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}
	rs := g.cfg.Report.ReportSettings

	cashflow := Cashflow(rows)
	if err := g.saveCashflow(cashflow); err != nil {
		return err
	}
	g.printCashflow(cashflow)

	top := TopExpenses(rows, rs.TopNTransactions)
	if err := g.saveTopExpenses(top); err != nil {
		return err
	}
	g.printTopExpenses(top, 10)

	for _, group := range rs.AccountGroups {
		// the catch-all group is already covered by the dataset-level reports
		if group.Name == "all" {
			continue
		}
		groupRows := FilterBySources(rows, group.Sources)
		if len(groupRows) == 0 {
			continue
		}
		if err := g.generateGroupReports(group.Name, groupRows); err != nil {
			return err
		}
	}

	if err := g.generateMonthlyReports(rows); err != nil {
		return err
	}

	fmt.Printf("\nAll reports saved to: %s\n", g.ReportsDir())
	return nil
}

// SaveIntermediate dumps the processed dataset via store and writes the
// category and merchant summary CSVs.
func (g *Generator) SaveIntermediate(rows []ledger.Transaction, store export.Store) error {
	if err := os.MkdirAll(g.IntermediateDir(), 0755); err != nil {
		return fmt.Errorf("create intermediate dir: %w", err)
	}

	if err := store.WriteTransactions(rows); err != nil {
		return fmt.Errorf("write processed transactions: %w", err)
	}

	files := g.cfg.Report.OutputSettings.Files

	catRows := make([][]string, 0)
	for _, s := range SummaryByCategory(rows) {
		catRows = append(catRows, summaryRecord(s))
	}
	header := []string{"master_category", "account_group", "total_amount", "transaction_count", "avg_amount", "total_abs_amount"}
	if err := writeCSV(filepath.Join(g.IntermediateDir(), files.CategorySummary), header, catRows); err != nil {
		return err
	}

	merchRows := make([][]string, 0)
	for _, s := range SummaryByMerchant(rows) {
		merchRows = append(merchRows, summaryRecord(s))
	}
	header[0] = "merchant_group"
	if err := writeCSV(filepath.Join(g.IntermediateDir(), files.MerchantSummary), header, merchRows); err != nil {
		return err
	}

	fmt.Printf("Saved intermediate data to: %s\n", g.IntermediateDir())
	return nil
}

func summaryRecord(s GroupSummary) []string {
	return []string{s.Key, s.AccountGroup, money(s.Total), strconv.Itoa(s.Count), money(s.Mean), money(s.AbsTotal)}
}

func (g *Generator) saveCashflow(cashflow []CashflowRow) error {
	records := make([][]string, 0, len(cashflow))
	for _, r := range cashflow {
		records = append(records, []string{r.AccountGroup, money(r.Income), money(r.Expense), money(r.Net)})
	}
	return g.saveReport("cashflow_summary.csv",
		[]string{"account_group", "income", "expense", "net_cashflow"}, records)
}

func (g *Generator) saveTopExpenses(top []ledger.Transaction) error {
	records := make([][]string, 0, len(top))
	for _, tx := range top {
		records = append(records, []string{
			tx.Date.Format("2006-01-02"), tx.Merchant, tx.MerchantGroup, tx.MasterCategory,
			money(tx.Amount), tx.AccountGroup, tx.Source, tx.Flag,
		})
	}
	return g.saveReport("top_expenses.csv",
		[]string{"date", "merchant", "merchant_group", "master_category", "amount", "account_group", "source", "flag"},
		records)
}

func (g *Generator) generateGroupReports(groupName string, groupRows []ledger.Transaction) error {
	rs := g.cfg.Report.ReportSettings

	categories := TopCategories(groupRows, rs.TopNCategories)
	if len(categories) > 0 {
		records := make([][]string, 0, len(categories))
		for _, c := range categories {
			records = append(records, []string{c.MasterCategory, money(c.Total), money(c.AbsTotal)})
		}
		name := fmt.Sprintf("top_categories_%s.csv", groupName)
		if err := g.saveReport(name, []string{"master_category", "amount", "abs_amount"}, records); err != nil {
			return err
		}

		fmt.Printf("\n--- TOP EXPENSE CATEGORIES: %s ---\n", groupName)
		for _, c := range categories {
			fmt.Printf("  %-30s %12s\n", c.MasterCategory, money(c.Total))
		}
	}

	merchants := TopMerchants(groupRows, rs.TopNMerchants, rs.MinTransactionAmount, rs.ExcludedCategories)
	if len(merchants) > 0 {
		records := make([][]string, 0, len(merchants))
		for _, m := range merchants {
			records = append(records, []string{m.MerchantGroup, money(m.Total), money(m.AbsTotal), strconv.Itoa(m.Count)})
		}
		name := fmt.Sprintf("top_merchants_%s.csv", groupName)
		if err := g.saveReport(name, []string{"merchant_group", "total_spent", "total_abs_amount", "transaction_count"}, records); err != nil {
			return err
		}

		fmt.Printf("\n--- TOP DISCRETIONARY MERCHANTS: %s ---\n", groupName)
		for _, m := range merchants {
			fmt.Printf("  %-30s %12s  (%d transactions)\n", m.MerchantGroup, money(m.Total), m.Count)
		}
	}

	return nil
}

func (g *Generator) generateMonthlyReports(rows []ledger.Transaction) error {
	byCategory := MonthlySpendingByCategory(rows)
	records := make([][]string, 0, len(byCategory))
	for _, r := range byCategory {
		records = append(records, []string{r.YearMonth, r.MasterCategory, money(r.Total), money(r.AbsTotal)})
	}
	if err := g.saveReport("monthly_spending_by_category.csv",
		[]string{"year_month", "master_category", "amount", "abs_amount"}, records); err != nil {
		return err
	}

	byAccount := MonthlyTotalsByAccount(rows)
	records = records[:0]
	for _, r := range byAccount {
		records = append(records, []string{r.YearMonth, r.AccountGroup, string(r.TransactionType), money(r.Total)})
	}
	if err := g.saveReport("monthly_totals_by_account.csv",
		[]string{"year_month", "account_group", "transaction_type", "amount"}, records); err != nil {
		return err
	}

	cashflow := MonthlyCashflow(rows)
	records = records[:0]
	for _, r := range cashflow {
		records = append(records, []string{r.YearMonth, money(r.Income), money(r.Expense), money(r.Net)})
	}
	if err := g.saveReport("monthly_cashflow_summary.csv",
		[]string{"year_month", "income", "expense", "net_cashflow"}, records); err != nil {
		return err
	}

	fmt.Printf("\n--- MONTHLY CASHFLOW TRENDS ---\n")
	for _, r := range cashflow {
		fmt.Printf("  %s  income %12s  expense %12s  net %12s\n", r.YearMonth, money(r.Income), money(r.Expense), money(r.Net))
	}
	return nil
}

// PrintSummaryStatistics prints the headline numbers for the whole dataset.
func (g *Generator) PrintSummaryStatistics(rows []ledger.Transaction) {
	if len(rows) == 0 {
		return
	}

	fmt.Printf("\n=== SUMMARY STATISTICS ===\n")
	fmt.Printf("Total Transactions: %d\n", len(rows))

	minDate, maxDate := rows[0].Date, rows[0].Date
	var income, expenses float64
	bySource := make(map[string]int)
	for _, tx := range rows {
		if tx.Date.Before(minDate) {
			minDate = tx.Date
		}
		if tx.Date.After(maxDate) {
			maxDate = tx.Date
		}
		if tx.Amount > 0 {
			income += tx.Amount
		} else {
			expenses += tx.Amount
		}
		bySource[tx.Source]++
	}
	fmt.Printf("Date Range: %s to %s\n", minDate.Format("2006-01-02"), maxDate.Format("2006-01-02"))
	fmt.Printf("\nTotal Income: $%s\n", money(income))
	fmt.Printf("Total Expenses: $%s\n", money(expenses))
	fmt.Printf("Net Cashflow: $%s\n", money(income+expenses))

	fmt.Printf("\nBy Account Group:\n")
	for _, r := range Cashflow(rows) {
		fmt.Printf("  %s: $%s\n", r.AccountGroup, money(r.Net))
	}

	fmt.Printf("\nTransactions by Source:\n")
	for _, src := range sortedKeys(bySource) {
		fmt.Printf("  %s: %d\n", src, bySource[src])
	}
}

func (g *Generator) printCashflow(cashflow []CashflowRow) {
	fmt.Printf("\n--- CASHFLOW SUMMARY ---\n")
	for _, r := range cashflow {
		fmt.Printf("  %-15s income %12s  expense %12s  net %12s\n",
			r.AccountGroup, money(r.Income), money(r.Expense), money(r.Net))
	}
}

func (g *Generator) printTopExpenses(top []ledger.Transaction, n int) {
	if len(top) > n {
		top = top[:n]
	}
	fmt.Printf("\n--- TOP %d EXPENSES ---\n", n)
	for _, tx := range top {
		fmt.Printf("  %s  %-30s %12s  %s (%s)\n",
			tx.Date.Format("2006-01-02"), tx.MerchantGroup, money(tx.Amount), tx.MasterCategory, tx.AccountGroup)
	}
}

func (g *Generator) saveReport(filename string, header []string, records [][]string) error {
	path := filepath.Join(g.ReportsDir(), filename)
	if err := writeCSV(path, header, records); err != nil {
		return err
	}
	fmt.Printf("Saved: %s\n", path)
	return nil
}

func writeCSV(path string, header []string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func money(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
