package loader

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/expenses/ledger"
)

// AppleCard loads Apple Card exports for one owner. Each owner's card is a
// distinct source (apple_card_<owner>) with its own data folder.
type AppleCard struct {
	folder string
	owner  string
}

func NewAppleCard(folder, owner string) *AppleCard {
	return &AppleCard{folder: folder, owner: strings.ToLower(owner)}
}

func (l *AppleCard) Name() string { return ledger.AppleCardSource(l.owner) }

func (l *AppleCard) Load() ([]ledger.Transaction, error) {
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
		amount, err := parseAmount(r.get("Amount (USD)"))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.file, err)
		}
		out = append(out, ledger.Transaction{
			Date:         date,
			Merchant:     r.get("Description"),
			Type:         r.get("Type"),
			Category:     r.get("Category"),
			Amount:       amount,
			Source:       ledger.AppleCardSource(l.owner),
			AccountOwner: l.owner,
			SourceFile:   r.file,
		})
	}
	return out, nil
}
