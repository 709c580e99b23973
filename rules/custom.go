package rules

import (
	"github.com/rustyeddy/expenses/config"
	"github.com/rustyeddy/expenses/ledger"
)

// ApplyCustomRules overrides category and flag on rows matching each rule's
// conditions. Rules run strictly in declared order, so a later rule's
// assignment wins on rows matched by more than one rule. Row count and order
// are always preserved; only field values change.
//
// Every rule is reported to the audit with its matched-row count, including
// rules that matched nothing.
func ApplyCustomRules(rows []ledger.Transaction, customRules []config.CustomRule, audit *Audit) []ledger.Transaction {
	out := append([]ledger.Transaction(nil), rows...)

	for _, r := range customRules {
		matched := 0
		for i := range out {
			if !matchesConditions(out[i], r.Conditions) {
				continue
			}
			matched++
			if r.Action.Category != "" {
				out[i].Category = r.Action.Category
			}
			if r.Action.Flag != "" {
				out[i].Flag = r.Action.Flag
			}
		}
		audit.record(Event{Stage: "custom_rules", Name: r.Name, Matched: matched})
	}
	return out
}

func matchesConditions(tx ledger.Transaction, c config.RuleConditions) bool {
	if c.Source != nil && tx.Source != *c.Source {
		return false
	}
	if c.Type != nil && tx.Type != *c.Type {
		return false
	}
	if c.Category != nil && tx.Category != *c.Category {
		return false
	}
	if c.DescriptionContains != nil && !containsFold(tx.Merchant, *c.DescriptionContains) {
		return false
	}
	if c.AmountMin != nil && tx.Amount < *c.AmountMin {
		return false
	}
	if c.AmountMax != nil && tx.Amount > *c.AmountMax {
		return false
	}
	return true
}
