package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rustyeddy/expenses/ledger"
)

// CSV writes the enriched dataset to a single CSV file with a header row.
type CSV struct {
	w *csv.Writer
	f *os.File
}

func NewCSV(path string) (*CSV, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return &CSV{w: w, f: f}, nil
}

func (c *CSV) WriteTransactions(rows []ledger.Transaction) error {
	for _, tx := range rows {
		err := c.w.Write([]string{
			tx.Date.Format("2006-01-02"),
			tx.Merchant,
			tx.Type,
			tx.Category,
			tx.Flag,
			f(tx.Amount),
			tx.Source,
			tx.AccountOwner,
			tx.SourceFile,
			tx.MasterCategory,
			tx.MerchantGroup,
			strconv.Itoa(tx.Year),
			strconv.Itoa(tx.Month),
			tx.YearMonth,
			f(tx.AbsAmount),
			string(tx.TransactionType),
			tx.AccountGroup,
		})
		if err != nil {
			return err
		}
	}
	c.w.Flush()
	return c.w.Error()
}

func (c *CSV) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return err
	}
	return c.f.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
