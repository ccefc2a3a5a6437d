package banking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fernhill/farmbox/pkg/types"
)

func TestMapRow_StandardExport(t *testing.T) {
	header := []string{"Date", "Transaction Description", "Paid Out", "Paid In", "Balance"}

	c := MapRow(header, []string{"05/03/2026", "FARM SUPPLIES LTD", "42.50", "", "1200.00"})
	require.NotNil(t, c)
	require.Equal(t, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC), c.Date)
	require.Equal(t, "FARM SUPPLIES LTD", c.Description)
	require.Equal(t, types.TransactionTypeDebit, c.Type)
	require.True(t, c.Amount.Equal(decimal.NewFromFloat(42.5)))
	require.NotNil(t, c.Balance)
	require.True(t, c.Balance.Equal(decimal.NewFromInt(1200)))
}

func TestMapRow_CreditColumn(t *testing.T) {
	header := []string{"Date", "Description", "Money Out", "Money In"}

	c := MapRow(header, []string{"2026-03-05", "BOX SUBSCRIPTION W10", "", "18.00"})
	require.NotNil(t, c)
	require.Equal(t, types.TransactionTypeCredit, c.Type)
	require.True(t, c.Amount.Equal(decimal.NewFromInt(18)))
}

func TestMapRow_MixedAliasHeaders(t *testing.T) {
	// One row may mix vocabulary from different bank formats; each field
	// resolves on its own.
	header := []string{"Transaction Date", "Memo", "Debit", "Credit", "Ref"}

	c := MapRow(header, []string{"5 Mar 2026", "SEED ORDER", "12.00", "", "INV-77"})
	require.NotNil(t, c)
	require.Equal(t, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC), c.Date)
	require.NotNil(t, c.Reference)
	require.Equal(t, "INV-77", *c.Reference)
}

func TestMapRow_DebitWinsWhenBothPresent(t *testing.T) {
	header := []string{"Date", "Description", "Debit", "Credit"}

	c := MapRow(header, []string{"05/03/2026", "ADJUSTMENT", "5.00", "5.00"})
	require.NotNil(t, c)
	require.Equal(t, types.TransactionTypeDebit, c.Type)
}

func TestMapRow_NegativeAmountNormalized(t *testing.T) {
	header := []string{"Date", "Description", "Debit", "Credit"}

	c := MapRow(header, []string{"05/03/2026", "CARD PAYMENT", "-42.50", ""})
	require.NotNil(t, c)
	require.Equal(t, types.TransactionTypeDebit, c.Type)
	require.True(t, c.Amount.Equal(decimal.NewFromFloat(42.5)))
}

func TestMapRow_ThousandsSeparatorsAndCurrencySymbols(t *testing.T) {
	header := []string{"Date", "Description", "Debit", "Credit"}

	c := MapRow(header, []string{"05/03/2026", "TRACTOR DEPOSIT", "£1,250.00", ""})
	require.NotNil(t, c)
	require.True(t, c.Amount.Equal(decimal.NewFromInt(1250)))
}

func TestMapRow_SkipsUnusableRows(t *testing.T) {
	header := []string{"Date", "Description", "Debit", "Credit"}

	tests := []struct {
		name string
		row  []string
	}{
		{"missing date", []string{"", "SOMETHING", "5.00", ""}},
		{"missing description", []string{"05/03/2026", "  ", "5.00", ""}},
		{"unparseable date", []string{"March the fifth", "SOMETHING", "5.00", ""}},
		{"no amount", []string{"05/03/2026", "SOMETHING", "", ""}},
		{"zero amounts", []string{"05/03/2026", "SOMETHING", "0.00", "0"}},
		{"unparseable amount", []string{"05/03/2026", "SOMETHING", "five", ""}},
		{"row shorter than header", []string{"05/03/2026"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Nil(t, MapRow(header, tt.row))
		})
	}
}

func TestMapRow_DateFormats(t *testing.T) {
	header := []string{"Date", "Description", "Debit"}
	want := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{"05/03/2026", "2026-03-05", "05-03-2026", "5 Mar 2026", "05 Mar 2026", "5/3/2026"} {
		c := MapRow(header, []string{raw, "X", "1.00"})
		require.NotNil(t, c, "format %q", raw)
		require.Equal(t, want, c.Date, "format %q", raw)
	}
}
