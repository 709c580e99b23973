// Package export dumps the enriched dataset to flat files: a CSV dump for
// spreadsheet work or a SQLite dump for ad-hoc querying. Both write the full
// enriched schema; neither holds state across runs.
package export

import "github.com/rustyeddy/expenses/ledger"

// Store persists one run's enriched dataset.
type Store interface {
	WriteTransactions([]ledger.Transaction) error
	Close() error
}

// Columns is the enriched-transaction column order shared by the CSV dump
// and the SQLite schema.
var Columns = []string{
	"date", "merchant", "type", "category", "flag", "amount",
	"source", "account_owner", "source_file",
	"master_category", "merchant_group",
	"year", "month", "year_month",
	"abs_amount", "transaction_type", "account_group",
}
