package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/expenses/config"
	"github.com/rustyeddy/expenses/pkg/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage the configuration folder used by the processing pipeline.

Subcommands:
  init     - Write a starter set of configuration files
  validate - Load and validate an existing configuration folder

Examples:
  expenses config init --output ./config
  expenses config validate --config ./config`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration folder",
	Long: `Create exclusions.yaml, rules.yaml, category_mapping.yaml, and
report_config.yaml with example entries.

Example:
  expenses config init --output ./config`,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration folder",
	Long: `Check that the configuration folder loads cleanly. Unknown keys and
malformed values are reported as errors; missing files only warn.

Example:
  expenses config validate --config ./config`,
	RunE: runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "config", "configuration folder to create")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "config", "c", "config", "configuration folder to validate")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveDir(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("Created starter configuration in: %s\n", configInitOutput)
	fmt.Println("\nEdit the files and run with:")
	fmt.Printf("  expenses run <data-folder> --config %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	logger := logging.Setup(logging.DefaultConfig())

	cfg, err := config.LoadDir(configValidatePath, logger)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("Configuration valid: %s\n", configValidatePath)
	fmt.Printf("  Exclusions: %d\n", len(cfg.Exclusions.Exclusions))
	fmt.Printf("  Custom rules: %d\n", len(cfg.Rules.CustomRules))
	fmt.Printf("  Merchant groups: %d\n", len(cfg.Rules.MerchantGroups))
	fmt.Printf("  Category mappings: %d (default %q)\n",
		len(cfg.CategoryMapping.MasterCategories), cfg.CategoryMapping.DefaultCategory)
	fmt.Printf("  Account groups: %d\n", len(cfg.Report.ReportSettings.AccountGroups))
	fmt.Printf("  Dump format: %s\n", cfg.Report.OutputSettings.Format)
	return nil
}
