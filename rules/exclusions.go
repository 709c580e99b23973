package rules

import (
	"github.com/rustyeddy/expenses/config"
	"github.com/rustyeddy/expenses/ledger"
)

// ApplyExclusions removes every row matching any configured exclusion.
// Predicates run in declared order, each against the dataset as reduced by
// the predicates before it; surviving rows keep their relative order.
// Because rows only ever leave, applying the same list twice removes nothing
// on the second pass.
//
// A predicate that removed at least one row is reported to the audit with
// its reason and count; a predicate matching nothing reports silently.
func ApplyExclusions(rows []ledger.Transaction, exclusions []config.Exclusion, audit *Audit) []ledger.Transaction {
	out := append([]ledger.Transaction(nil), rows...)

	for _, ex := range exclusions {
		kept := out[:0]
		removed := 0
		for _, tx := range out {
			if matchesExclusion(tx, ex) {
				removed++
				continue
			}
			kept = append(kept, tx)
		}
		out = kept

		if removed > 0 {
			reason := ex.Reason
			if reason == "" {
				reason = "No reason provided"
			}
			audit.record(Event{Stage: "exclusions", Name: reason, Matched: removed})
		}
	}
	return out
}

func matchesExclusion(tx ledger.Transaction, ex config.Exclusion) bool {
	if ex.Source != nil && tx.Source != *ex.Source {
		return false
	}
	if ex.Type != nil && tx.Type != *ex.Type {
		return false
	}
	if ex.Category != nil && tx.Category != *ex.Category {
		return false
	}
	if ex.DescriptionContains != nil && !containsFold(tx.Merchant, *ex.DescriptionContains) {
		return false
	}
	return true
}
