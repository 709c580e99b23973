package ledger

import (
	"strings"
	"time"
)

// TransactionType classifies a row by cash direction.
type TransactionType string

const (
	Income  TransactionType = "Income"
	Expense TransactionType = "Expense"
)

// Source identifiers for the supported institutions.
const (
	SourceChaseChecking   = "chase_checking"
	SourceChaseCreditCard = "chase_credit_card"
)

// Account owner used for joint accounts.
const OwnerShared = "shared"

// AppleCardSource returns the source identifier for an Apple Card owner.
func AppleCardSource(owner string) string {
	return "apple_card_" + strings.ToLower(owner)
}

// Transaction is one normalized financial event. The first block of fields is
// populated by the source loaders; the second block is filled in by the
// processing pipeline.
type Transaction struct {
	Date         time.Time
	Merchant     string
	Type         string
	Category     string  // empty when the source export has no category column
	Amount       float64 // positive = inflow, negative = outflow
	Source       string
	AccountOwner string
	SourceFile   string

	Flag            string
	MasterCategory  string
	MerchantGroup   string
	Year            int
	Month           int // 1-12
	YearMonth       string
	AbsAmount       float64
	TransactionType TransactionType
	AccountGroup    string
}

// Classify returns Income for strictly positive amounts. Zero-amount rows
// classify as Expense.
func Classify(amount float64) TransactionType {
	if amount > 0 {
		return Income
	}
	return Expense
}
