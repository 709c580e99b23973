package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "expenses",
	Short: "Household expense report generator",
	Long: `Expenses ingests transaction exports from multiple institutions,
normalizes them into one schema, applies configurable exclusion and
categorization rules, and produces spending reports.

It provides tools for:
  - Loading CSV exports (Chase checking, Chase credit card, Apple Card)
  - Rule-driven exclusion, categorization, and merchant grouping
  - Category and cashflow reports by account group and by month
  - Dumping the processed dataset to CSV or SQLite for further analysis`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
