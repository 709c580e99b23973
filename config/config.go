package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File names expected inside the configuration folder.
const (
	ExclusionsFile      = "exclusions.yaml"
	RulesFile           = "rules.yaml"
	CategoryMappingFile = "category_mapping.yaml"
	ReportConfigFile    = "report_config.yaml"
)

// Uncategorized is the master category assigned when no mapping entry
// matches and no default is configured.
const Uncategorized = "Uncategorized"

// Exclusion removes matching rows from the dataset. Every condition is
// optional; conditions that are present are ANDed. A condition left unset
// constrains nothing, so an exclusion with no conditions matches every row.
type Exclusion struct {
	Source              *string `yaml:"source,omitempty"`
	Type                *string `yaml:"type,omitempty"`
	Category            *string `yaml:"category,omitempty"`
	DescriptionContains *string `yaml:"description_contains,omitempty"`
	Reason              string  `yaml:"reason,omitempty"`
}

// HasConditions reports whether the exclusion constrains anything at all.
func (e Exclusion) HasConditions() bool {
	return e.Source != nil || e.Type != nil || e.Category != nil || e.DescriptionContains != nil
}

// Exclusions is the document shape of exclusions.yaml.
type Exclusions struct {
	Exclusions []Exclusion `yaml:"exclusions"`
}

// RuleConditions are the optional, ANDed match conditions of a custom rule.
// Amount bounds are inclusive; nil means unconstrained, not zero.
type RuleConditions struct {
	Source              *string  `yaml:"source,omitempty"`
	Type                *string  `yaml:"type,omitempty"`
	Category            *string  `yaml:"category,omitempty"`
	DescriptionContains *string  `yaml:"description_contains,omitempty"`
	AmountMin           *float64 `yaml:"amount_min,omitempty"`
	AmountMax           *float64 `yaml:"amount_max,omitempty"`
}

// RuleAction holds the fields a custom rule writes on matched rows.
type RuleAction struct {
	Category string `yaml:"category,omitempty"`
	Flag     string `yaml:"flag,omitempty"`
}

// CustomRule overrides category and flag on every row its conditions match.
type CustomRule struct {
	Name       string         `yaml:"name"`
	Conditions RuleConditions `yaml:"conditions"`
	Action     RuleAction     `yaml:"action"`
}

// MerchantGroup folds free-text merchant names into one display name via
// case-insensitive substring patterns. Groups are declared as an ordered
// list so that overlapping patterns resolve reproducibly: the last declared
// (group, pattern) pair that matches a row wins.
type MerchantGroup struct {
	Name       string   `yaml:"name"`
	MasterName string   `yaml:"master_name,omitempty"`
	Patterns   []string `yaml:"patterns"`
}

// Rules is the document shape of rules.yaml.
type Rules struct {
	CustomRules    []CustomRule    `yaml:"custom_rules"`
	MerchantGroups []MerchantGroup `yaml:"merchant_groups"`
}

// CategoryMapping is the document shape of category_mapping.yaml. The map is
// keyed by original category label; a row's category equals at most one key,
// so iteration order cannot affect the result.
type CategoryMapping struct {
	DefaultCategory  string            `yaml:"default_category"`
	MasterCategories map[string]string `yaml:"master_categories"`
}

// AccountGroup names a partition of transaction sources for grouped
// reporting. Groups are an ordered list; a source listed in several groups
// resolves to the last group that contains it.
type AccountGroup struct {
	Name    string   `yaml:"name"`
	Sources []string `yaml:"sources"`
}

// ReportSettings controls the report generator.
type ReportSettings struct {
	AccountGroups        []AccountGroup `yaml:"account_groups"`
	TopNTransactions     int            `yaml:"top_n_transactions"`
	TopNCategories       int            `yaml:"top_n_categories"`
	TopNMerchants        int            `yaml:"top_n_merchants"`
	MinTransactionAmount float64        `yaml:"min_transaction_amount"`
	// ExcludedCategories lists master categories dropped from the
	// discretionary merchant reports (fixed/structural spending).
	ExcludedCategories []string `yaml:"excluded_categories"`
}

// OutputFiles names the intermediate dump files.
type OutputFiles struct {
	ProcessedTransactions string `yaml:"processed_transactions"`
	CategorySummary       string `yaml:"category_summary"`
	MerchantSummary       string `yaml:"merchant_summary"`
	Database              string `yaml:"database,omitempty"`
}

// OutputSettings controls where and how the enriched dataset is dumped.
type OutputSettings struct {
	SaveIntermediate bool        `yaml:"save_intermediate"`
	Format           string      `yaml:"format"` // "csv" or "sqlite"
	Files            OutputFiles `yaml:"files"`
}

// SourceSettings configures the source loaders.
type SourceSettings struct {
	AppleCardOwners []string `yaml:"apple_card_owners"`
}

// ReportConfig is the document shape of report_config.yaml.
type ReportConfig struct {
	ReportSettings ReportSettings `yaml:"report_settings"`
	OutputSettings OutputSettings `yaml:"output_settings"`
	Sources        SourceSettings `yaml:"sources"`
}

// Config aggregates the four configuration documents for one pipeline run.
// It is loaded once and never mutated by the engine.
type Config struct {
	Exclusions      Exclusions
	Rules           Rules
	CategoryMapping CategoryMapping
	Report          ReportConfig
}

// LoadDir loads all four configuration files from dir. A missing file is not
// an error: the section stays at its zero value and a warning is logged.
// Unknown keys and malformed YAML fail loudly.
func LoadDir(dir string, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cfg := &Config{}

	if err := loadFile(filepath.Join(dir, ExclusionsFile), &cfg.Exclusions, logger); err != nil {
		return nil, err
	}
	if err := loadFile(filepath.Join(dir, RulesFile), &cfg.Rules, logger); err != nil {
		return nil, err
	}
	if err := loadFile(filepath.Join(dir, CategoryMappingFile), &cfg.CategoryMapping, logger); err != nil {
		return nil, err
	}
	if err := loadFile(filepath.Join(dir, ReportConfigFile), &cfg.Report, logger); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	for _, ex := range cfg.Exclusions.Exclusions {
		if !ex.HasConditions() {
			logger.Warn("exclusion has no conditions and will remove every remaining row",
				"reason", ex.Reason)
		}
	}

	return cfg, nil
}

func loadFile(path string, out any, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("config file not found, using defaults", "path", path)
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// applyDefaults fills zero values with working defaults so an absent or
// partial configuration still yields a runnable pipeline.
func (c *Config) applyDefaults() {
	if c.CategoryMapping.DefaultCategory == "" {
		c.CategoryMapping.DefaultCategory = Uncategorized
	}

	rs := &c.Report.ReportSettings
	if rs.TopNTransactions == 0 {
		rs.TopNTransactions = 20
	}
	if rs.TopNCategories == 0 {
		rs.TopNCategories = 10
	}
	if rs.TopNMerchants == 0 {
		rs.TopNMerchants = 15
	}

	out := &c.Report.OutputSettings
	if out.Format == "" {
		out.Format = "csv"
	}
	if out.Files.ProcessedTransactions == "" {
		out.Files.ProcessedTransactions = "processed_transactions.csv"
	}
	if out.Files.CategorySummary == "" {
		out.Files.CategorySummary = "category_summary.csv"
	}
	if out.Files.MerchantSummary == "" {
		out.Files.MerchantSummary = "merchant_summary.csv"
	}
	if out.Files.Database == "" {
		out.Files.Database = "processed_transactions.db"
	}
}

// Validate checks for configuration values the pipeline cannot work with.
func (c *Config) Validate() error {
	for i, r := range c.Rules.CustomRules {
		if r.Name == "" {
			return fmt.Errorf("custom_rules[%d]: name is required", i)
		}
		if r.Conditions.AmountMin != nil && r.Conditions.AmountMax != nil &&
			*r.Conditions.AmountMin > *r.Conditions.AmountMax {
			return fmt.Errorf("custom_rules[%d] (%s): amount_min exceeds amount_max", i, r.Name)
		}
	}
	for i, g := range c.Rules.MerchantGroups {
		if g.Name == "" {
			return fmt.Errorf("merchant_groups[%d]: name is required", i)
		}
	}
	for i, g := range c.Report.ReportSettings.AccountGroups {
		if g.Name == "" {
			return fmt.Errorf("account_groups[%d]: name is required", i)
		}
	}
	if f := c.Report.OutputSettings.Format; f != "csv" && f != "sqlite" {
		return fmt.Errorf("output_settings.format must be 'csv' or 'sqlite', got %q", f)
	}
	if c.Report.ReportSettings.MinTransactionAmount < 0 {
		return fmt.Errorf("report_settings.min_transaction_amount must not be negative")
	}
	return nil
}

// SaveDir writes all four configuration documents into dir, creating it if
// needed.
func (c *Config) SaveDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	files := []struct {
		name string
		doc  any
	}{
		{ExclusionsFile, c.Exclusions},
		{RulesFile, c.Rules},
		{CategoryMappingFile, c.CategoryMapping},
		{ReportConfigFile, c.Report},
	}

	for _, f := range files {
		data, err := yaml.Marshal(f.doc)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", f.name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, f.name), data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	return nil
}

// Default returns a starter configuration with one example of each rule type.
func Default() *Config {
	cardPayment := "Payment"
	chaseCard := "chase_credit_card"
	salary := "SALARY"

	cfg := &Config{
		Exclusions: Exclusions{
			Exclusions: []Exclusion{
				{
					Source: &chaseCard,
					Type:   &cardPayment,
					Reason: "Card payments double-count checking outflows",
				},
			},
		},
		Rules: Rules{
			CustomRules: []CustomRule{
				{
					Name: "Salary deposits",
					Conditions: RuleConditions{
						DescriptionContains: &salary,
					},
					Action: RuleAction{Category: "Salary Income", Flag: "recurring"},
				},
			},
			MerchantGroups: []MerchantGroup{
				{
					Name:       "coffee",
					MasterName: "Coffee Shops",
					Patterns:   []string{"STARBUCKS", "PEETS", "BLUE BOTTLE"},
				},
			},
		},
		CategoryMapping: CategoryMapping{
			DefaultCategory: Uncategorized,
			MasterCategories: map[string]string{
				"Shopping":          "Discretionary",
				"Food & Drink":      "Dining",
				"Groceries":         "Groceries",
				"Gas":               "Transportation",
				"Bills & Utilities": "Utilities",
			},
		},
		Report: ReportConfig{
			ReportSettings: ReportSettings{
				AccountGroups: []AccountGroup{
					{Name: "shared", Sources: []string{"chase_checking", "chase_credit_card"}},
					{Name: "joe", Sources: []string{"apple_card_joe"}},
					{Name: "nikita", Sources: []string{"apple_card_nikita"}},
				},
				TopNTransactions:     20,
				TopNCategories:       10,
				TopNMerchants:        15,
				MinTransactionAmount: 10.0,
				ExcludedCategories:   []string{"Home & Garden", "Debt Payments", "Childcare", "Savings"},
			},
			OutputSettings: OutputSettings{
				SaveIntermediate: true,
				Format:           "csv",
			},
			Sources: SourceSettings{
				AppleCardOwners: []string{"joe", "nikita"},
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}
