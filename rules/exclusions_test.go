package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/expenses/config"
	"github.com/rustyeddy/expenses/ledger"
)

func strp(s string) *string   { return &s }
func amtp(v float64) *float64 { return &v }

func tx(source, typ, merchant string, amount float64) ledger.Transaction {
	return ledger.Transaction{
		Date:     time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Merchant: merchant,
		Type:     typ,
		Amount:   amount,
		Source:   source,
	}
}

func TestApplyExclusionsSourceAndType(t *testing.T) {
	t.Parallel()

	rows := []ledger.Transaction{
		tx("cardA", "Payment", "PAYMENT THANK YOU", -100),
		tx("cardA", "Sale", "GROCERY STORE", -50),
	}
	exclusions := []config.Exclusion{
		{Source: strp("cardA"), Type: strp("Payment")},
	}

	got := ApplyExclusions(rows, exclusions, nil)

	assert.Len(t, got, 1)
	assert.Equal(t, -50.0, got[0].Amount)
}

func TestApplyExclusionsDescriptionContainsCaseInsensitive(t *testing.T) {
	t.Parallel()

	rows := []ledger.Transaction{
		tx("cardA", "Sale", "Venmo Payment 12345", -20),
		tx("cardA", "Sale", "COFFEE SHOP", -5),
	}
	exclusions := []config.Exclusion{
		{DescriptionContains: strp("VENMO")},
	}

	got := ApplyExclusions(rows, exclusions, nil)

	assert.Len(t, got, 1)
	assert.Equal(t, "COFFEE SHOP", got[0].Merchant)
}

func TestApplyExclusionsMissingMerchantNeverMatchesSubstring(t *testing.T) {
	t.Parallel()

	rows := []ledger.Transaction{
		tx("cardA", "Sale", "", -20),
	}
	exclusions := []config.Exclusion{
		{DescriptionContains: strp("VENMO")},
	}

	got := ApplyExclusions(rows, exclusions, nil)
	assert.Len(t, got, 1)
}

func TestApplyExclusionsNoConditionsMatchesEverything(t *testing.T) {
	t.Parallel()

	rows := []ledger.Transaction{
		tx("a", "Sale", "X", -1),
		tx("b", "Sale", "Y", -2),
	}
	exclusions := []config.Exclusion{{Reason: "drop all"}}

	got := ApplyExclusions(rows, exclusions, nil)
	assert.Empty(t, got)
}

func TestApplyExclusionsMonotonicAndIdempotent(t *testing.T) {
	t.Parallel()

	rows := []ledger.Transaction{
		tx("cardA", "Payment", "PAYMENT", -100),
		tx("cardA", "Sale", "STORE A", -10),
		tx("cardB", "Sale", "STORE B", -20),
	}
	exclusions := []config.Exclusion{
		{Type: strp("Payment")},
		{Source: strp("cardB")},
	}

	once := ApplyExclusions(rows, exclusions, nil)
	assert.Len(t, once, 1)

	twice := ApplyExclusions(once, exclusions, nil)
	assert.Equal(t, once, twice)
}

func TestApplyExclusionsPreservesOrderAndInput(t *testing.T) {
	t.Parallel()

	rows := []ledger.Transaction{
		tx("a", "Sale", "FIRST", -1),
		tx("b", "Payment", "SECOND", -2),
		tx("c", "Sale", "THIRD", -3),
	}
	exclusions := []config.Exclusion{{Type: strp("Payment")}}

	got := ApplyExclusions(rows, exclusions, nil)

	assert.Len(t, got, 2)
	assert.Equal(t, "FIRST", got[0].Merchant)
	assert.Equal(t, "THIRD", got[1].Merchant)

	// Input slice untouched.
	assert.Len(t, rows, 3)
	assert.Equal(t, "SECOND", rows[1].Merchant)
}

func TestApplyExclusionsAuditOnlyOnRemoval(t *testing.T) {
	t.Parallel()

	rows := []ledger.Transaction{
		tx("cardA", "Payment", "PAYMENT", -100),
	}
	exclusions := []config.Exclusion{
		{Source: strp("nope")},                       // matches nothing, silent
		{Type: strp("Payment"), Reason: "card pays"}, // removes one row
	}

	audit := &Audit{}
	got := ApplyExclusions(rows, exclusions, audit)

	assert.Empty(t, got)
	assert.Len(t, audit.Events, 1)
	assert.Equal(t, Event{Stage: "exclusions", Name: "card pays", Matched: 1}, audit.Events[0])
}

func TestApplyExclusionsEmptyListIsIdentity(t *testing.T) {
	t.Parallel()

	rows := []ledger.Transaction{tx("a", "Sale", "X", -1)}
	got := ApplyExclusions(rows, nil, nil)
	assert.Equal(t, rows, got)
}
