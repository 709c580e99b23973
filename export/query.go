package export

import (
	"time"

	"github.com/rustyeddy/expenses/ledger"
)

// MonthlyNet is one calendar month's summed signed amount.
type MonthlyNet struct {
	YearMonth string
	Net       float64
}

// TopExpenses returns the largest expenses in the dump by absolute amount.
// Income rows are excluded.
func (s *SQLite) TopExpenses(limit int) ([]ledger.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT date, merchant, type, category, flag, amount, source, account_owner, source_file,
		       master_category, merchant_group, year, month, year_month, abs_amount, transaction_type, account_group
		FROM transactions
		WHERE amount < 0
		ORDER BY abs_amount DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Transaction
	for rows.Next() {
		var (
			tx     ledger.Transaction
			date   time.Time
			txType string
		)
		if err := rows.Scan(
			&date, &tx.Merchant, &tx.Type, &tx.Category, &tx.Flag, &tx.Amount,
			&tx.Source, &tx.AccountOwner, &tx.SourceFile,
			&tx.MasterCategory, &tx.MerchantGroup,
			&tx.Year, &tx.Month, &tx.YearMonth,
			&tx.AbsAmount, &txType, &tx.AccountGroup,
		); err != nil {
			return nil, err
		}
		tx.Date = date
		tx.TransactionType = ledger.TransactionType(txType)
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MonthlyNetCashflow returns the summed signed amount per calendar month,
// in chronological order.
func (s *SQLite) MonthlyNetCashflow() ([]MonthlyNet, error) {
	rows, err := s.db.Query(`
		SELECT year_month, SUM(amount)
		FROM transactions
		GROUP BY year_month
		ORDER BY year_month ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyNet
	for rows.Next() {
		var m MonthlyNet
		if err := rows.Scan(&m.YearMonth, &m.Net); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
