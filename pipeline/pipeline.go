// Package pipeline sequences the transaction processing stages.
//
// A run is a pure function of (dataset, configuration): each stage consumes
// the full dataset produced by the one before it and returns a fresh slice,
// and the configuration is never mutated. The engine keeps no state between
// runs.
package pipeline

import (
	"github.com/rustyeddy/expenses/config"
	"github.com/rustyeddy/expenses/ledger"
	"github.com/rustyeddy/expenses/rules"
)

// Run executes the five stages in fixed order:
//
//	exclusions -> custom rules -> category mapping -> merchant grouping -> derived fields
//
// An empty configuration section makes its stage a pass-through. The audit
// may be nil.
func Run(rows []ledger.Transaction, cfg *config.Config, audit *rules.Audit) []ledger.Transaction {
	rows = rules.ApplyExclusions(rows, cfg.Exclusions.Exclusions, audit)
	rows = rules.ApplyCustomRules(rows, cfg.Rules.CustomRules, audit)
	rows = rules.ApplyCategoryMapping(rows, cfg.CategoryMapping)
	rows = rules.ApplyMerchantGrouping(rows, cfg.Rules.MerchantGroups)
	rows = AddDerivedFields(rows, cfg.Report.ReportSettings.AccountGroups)
	return rows
}
