package pipeline

import (
	"math"

	"github.com/rustyeddy/expenses/config"
	"github.com/rustyeddy/expenses/ledger"
)

// UnknownAccountGroup is assigned to rows whose source belongs to no
// configured account group.
const UnknownAccountGroup = "unknown"

// AddDerivedFields computes the per-row analysis fields: year, month and
// year-month bucket from the date, the absolute amount, the income/expense
// classification, and the account group. Account groups are applied in
// declared order with overwrite semantics, so a source listed in several
// groups lands in the last one that contains it.
func AddDerivedFields(rows []ledger.Transaction, groups []config.AccountGroup) []ledger.Transaction {
	out := append([]ledger.Transaction(nil), rows...)

	for i := range out {
		tx := &out[i]
		tx.Year = tx.Date.Year()
		tx.Month = int(tx.Date.Month())
		tx.YearMonth = tx.Date.Format("2006-01")
		tx.AbsAmount = math.Abs(tx.Amount)
		tx.TransactionType = ledger.Classify(tx.Amount)
		tx.AccountGroup = UnknownAccountGroup
	}

	for _, g := range groups {
		members := make(map[string]bool, len(g.Sources))
		for _, s := range g.Sources {
			members[s] = true
		}
		for i := range out {
			if members[out[i].Source] {
				out[i].AccountGroup = g.Name
			}
		}
	}
	return out
}
