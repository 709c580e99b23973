package rules

import (
	"github.com/rustyeddy/expenses/config"
	"github.com/rustyeddy/expenses/ledger"
)

// ApplyMerchantGrouping derives a merchant group for every row. The group
// starts as the raw merchant text; each (group, pattern) pair is then tested
// in declared order against the merchant as a case-insensitive substring,
// overwriting the group on match. Last write wins, so a row always belongs
// to exactly one group after this stage.
func ApplyMerchantGrouping(rows []ledger.Transaction, groups []config.MerchantGroup) []ledger.Transaction {
	out := append([]ledger.Transaction(nil), rows...)
	for i := range out {
		out[i].MerchantGroup = out[i].Merchant
	}

	for _, g := range groups {
		master := g.MasterName
		if master == "" {
			master = g.Name
		}
		for _, pattern := range g.Patterns {
			for i := range out {
				if containsFold(out[i].Merchant, pattern) {
					out[i].MerchantGroup = master
				}
			}
		}
	}
	return out
}
