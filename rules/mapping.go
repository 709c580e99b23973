package rules

import (
	"github.com/rustyeddy/expenses/config"
	"github.com/rustyeddy/expenses/ledger"
)

// ApplyCategoryMapping derives a master category from each row's (possibly
// rule-overwritten) category. Rows whose category matches no mapping key get
// the configured default label; unmapped categories are expected, not an
// error. Every row leaves this stage with a non-empty master category.
func ApplyCategoryMapping(rows []ledger.Transaction, mapping config.CategoryMapping) []ledger.Transaction {
	def := mapping.DefaultCategory
	if def == "" {
		def = config.Uncategorized
	}

	out := append([]ledger.Transaction(nil), rows...)
	for i := range out {
		out[i].MasterCategory = def
		if master, ok := mapping.MasterCategories[out[i].Category]; ok {
			out[i].MasterCategory = master
		}
	}
	return out
}
