package export

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/expenses/ledger"
)

// SQLite dumps the enriched dataset into a SQLite database file. Rows are
// tagged with the run ID so several dumps can share one file.
type SQLite struct {
	db    *sql.DB
	runID string
}

// NewSQLite opens (or creates) the database at path and applies the schema.
// runID may be empty when the store is only used for querying.
func NewSQLite(path, runID string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db, runID: runID}, nil
}

func (s *SQLite) WriteTransactions(rows []ledger.Transaction) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO transactions
		(run_id, date, merchant, type, category, flag, amount, source, account_owner, source_file,
		 master_category, merchant_group, year, month, year_month, abs_amount, transaction_type, account_group)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err := stmt.Exec(
			s.runID, r.Date, r.Merchant, r.Type, r.Category, r.Flag, r.Amount,
			r.Source, r.AccountOwner, r.SourceFile,
			r.MasterCategory, r.MerchantGroup,
			r.Year, r.Month, r.YearMonth,
			r.AbsAmount, string(r.TransactionType), r.AccountGroup,
		)
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// RecordRun stores the run metadata row for this dump.
func (s *SQLite) RecordRun(started, finished time.Time, rowCount int) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (run_id, started, finished, row_count)
		VALUES (?, ?, ?, ?)`,
		s.runID, started, finished, rowCount,
	)
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
