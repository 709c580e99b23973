package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/expenses/export"
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Query a SQLite dump for the largest expenses",
	Long: `Read a SQLite dump produced by a run with output format "sqlite" and
print the largest expenses by absolute amount.

Example:
  expenses top --db output/intermediate/processed_transactions.db -n 10`,
	RunE: runTop,
}

var (
	topDBPath  string
	topN       int
	topMonthly bool
)

func init() {
	rootCmd.AddCommand(topCmd)

	topCmd.Flags().StringVarP(&topDBPath, "db", "d", "", "path to SQLite dump (required)")
	topCmd.Flags().IntVarP(&topN, "limit", "n", 10, "number of expenses to show")
	topCmd.Flags().BoolVar(&topMonthly, "monthly", false, "also print monthly net cashflow")
	topCmd.MarkFlagRequired("db")
}

func runTop(cmd *cobra.Command, args []string) error {
	store, err := export.NewSQLite(topDBPath, "")
	if err != nil {
		return fmt.Errorf("open dump: %w", err)
	}
	defer store.Close()

	expenses, err := store.TopExpenses(topN)
	if err != nil {
		return fmt.Errorf("query top expenses: %w", err)
	}

	fmt.Printf("--- TOP %d EXPENSES ---\n", topN)
	for _, tx := range expenses {
		fmt.Printf("  %s  %-30s %12.2f  %s (%s)\n",
			tx.Date.Format("2006-01-02"), tx.MerchantGroup, tx.Amount, tx.MasterCategory, tx.AccountGroup)
	}

	if topMonthly {
		monthly, err := store.MonthlyNetCashflow()
		if err != nil {
			return fmt.Errorf("query monthly cashflow: %w", err)
		}
		fmt.Printf("\n--- MONTHLY NET CASHFLOW ---\n")
		for _, m := range monthly {
			fmt.Printf("  %s  %12.2f\n", m.YearMonth, m.Net)
		}
	}

	return nil
}
