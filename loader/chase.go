package loader

import (
	"fmt"

	"github.com/rustyeddy/expenses/ledger"
)

// ChaseChecking loads Chase checking account exports. Checking exports carry
// no category column, so Category stays empty until the rules stages run.
type ChaseChecking struct {
	folder string
}

func NewChaseChecking(folder string) *ChaseChecking {
	return &ChaseChecking{folder: folder}
}

func (l *ChaseChecking) Name() string { return ledger.SourceChaseChecking }

func (l *ChaseChecking) Load() ([]ledger.Transaction, error) {
	raw, err := readCSVFolder(l.folder)
	if err != nil {
		return nil, err
	}

	out := make([]ledger.Transaction, 0, len(raw))
	for _, r := range raw {
		date, err := parseDate(r.get("Posting Date"))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.file, err)
		}
		amount, err := parseAmount(r.get("Amount"))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.file, err)
		}
		out = append(out, ledger.Transaction{
			Date:         date,
			Merchant:     r.get("Description"),
			Type:         r.get("Type"),
			Amount:       amount,
			Source:       ledger.SourceChaseChecking,
			AccountOwner: ledger.OwnerShared,
			SourceFile:   r.file,
		})
	}
	return out, nil
}

// ChaseCard loads Chase credit card exports.
type ChaseCard struct {
	folder string
}

func NewChaseCard(folder string) *ChaseCard {
	return &ChaseCard{folder: folder}
}

func (l *ChaseCard) Name() string { return ledger.SourceChaseCreditCard }

func (l *ChaseCard) Load() ([]ledger.Transaction, error) {
	raw, err := readCSVFolder(l.folder)
	if err != nil {
		return nil, err
	}

	out := make([]ledger.Transaction, 0, len(raw))
	for _, r := range raw {
		date, err := parseDate(r.get("Transaction Date"))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.file, err)
		}
		amount, err := parseAmount(r.get("Amount"))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.file, err)
		}
		out = append(out, ledger.Transaction{
			Date:         date,
			Merchant:     r.get("Description"),
			Type:         r.get("Type"),
			Category:     r.get("Category"),
			Amount:       amount,
			Source:       ledger.SourceChaseCreditCard,
			AccountOwner: ledger.OwnerShared,
			SourceFile:   r.file,
		})
	}
	return out, nil
}
