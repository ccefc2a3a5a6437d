package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fernhill/farmbox/pkg/types"
)

func TestBankTransactionDedupKey(t *testing.T) {
	txn := &BankTransaction{
		TransactionDate: time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
		Description:     "FARM SHOP CARD 1234",
		Amount:          decimal.NewFromFloat(42.5),
		Type:            types.TransactionTypeDebit,
	}
	require.Equal(t, "2026-03-05|FARM SHOP CARD 1234|42.50", txn.DedupKey())
}

func TestBankTransactionDedupKey_IgnoresNonKeyFields(t *testing.T) {
	ref := "FP-123"
	bal := decimal.NewFromInt(100)

	a := &BankTransaction{
		TransactionDate: time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
		Description:     "SUPPLIER PAYMENT",
		Amount:          decimal.NewFromInt(10),
	}
	b := &BankTransaction{
		TransactionDate: a.TransactionDate,
		Description:     a.Description,
		Amount:          decimal.NewFromInt(10),
		Reference:       &ref,
		Balance:         &bal,
		ImportFilename:  "statement-2.csv",
	}
	require.Equal(t, a.DedupKey(), b.DedupKey())
}
