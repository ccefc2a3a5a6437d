package banking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fernhill/farmbox/internal/models"
	"github.com/fernhill/farmbox/pkg/types"
)

func strPtr(s string) *string { return &s }

func txn(amount float64, txnType types.TransactionType, category *string) *models.BankTransaction {
	return &models.BankTransaction{
		TransactionDate: time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
		Description:     "row",
		Amount:          decimal.NewFromFloat(amount),
		Type:            txnType,
		Category:        category,
	}
}

func TestAggregate_TotalsAndNetProfit(t *testing.T) {
	rows := []*models.BankTransaction{
		txn(100, types.TransactionTypeCredit, strPtr("veg boxes")),
		txn(40, types.TransactionTypeCredit, strPtr("veg boxes")),
		txn(25.5, types.TransactionTypeDebit, strPtr("seeds")),
	}
	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)

	sum := Aggregate(rows, from, to)
	require.Equal(t, 3, sum.Count)
	require.Equal(t, "140.00", sum.TotalCredit.StringFixed(2))
	require.Equal(t, "25.50", sum.TotalDebit.StringFixed(2))
	require.Equal(t, "114.50", sum.NetProfit.StringFixed(2))
}

func TestAggregate_CategoryTotalsMatchOverallTotals(t *testing.T) {
	rows := []*models.BankTransaction{
		txn(100, types.TransactionTypeCredit, strPtr("veg boxes")),
		txn(30, types.TransactionTypeDebit, strPtr("seeds")),
		txn(20, types.TransactionTypeDebit, strPtr("seeds")),
		txn(9.99, types.TransactionTypeDebit, nil),
	}

	sum := Aggregate(rows, time.Time{}, time.Time{})

	var credit, debit decimal.Decimal
	count := 0
	for _, ct := range sum.ByCategory {
		credit = credit.Add(ct.Credit)
		debit = debit.Add(ct.Debit)
		count += ct.Count
	}
	require.True(t, credit.Equal(sum.TotalCredit))
	require.True(t, debit.Equal(sum.TotalDebit))
	require.Equal(t, sum.Count, count)
}

func TestAggregate_UncategorizedBucket(t *testing.T) {
	rows := []*models.BankTransaction{
		txn(10, types.TransactionTypeDebit, nil),
		txn(5, types.TransactionTypeDebit, strPtr("")),
	}

	sum := Aggregate(rows, time.Time{}, time.Time{})
	require.Len(t, sum.ByCategory, 1)
	require.Equal(t, "uncategorized", sum.ByCategory[0].Category)
	require.Equal(t, 2, sum.ByCategory[0].Count)
	require.Equal(t, "15.00", sum.ByCategory[0].Debit.StringFixed(2))
}

func TestAggregate_CategoriesSorted(t *testing.T) {
	rows := []*models.BankTransaction{
		txn(1, types.TransactionTypeDebit, strPtr("wages")),
		txn(1, types.TransactionTypeDebit, strPtr("compost")),
		txn(1, types.TransactionTypeDebit, strPtr("seeds")),
	}

	sum := Aggregate(rows, time.Time{}, time.Time{})
	require.Len(t, sum.ByCategory, 3)
	require.Equal(t, "compost", sum.ByCategory[0].Category)
	require.Equal(t, "seeds", sum.ByCategory[1].Category)
	require.Equal(t, "wages", sum.ByCategory[2].Category)
}

func TestAggregate_Empty(t *testing.T) {
	sum := Aggregate(nil, time.Time{}, time.Time{})
	require.Equal(t, 0, sum.Count)
	require.True(t, sum.NetProfit.IsZero())
	require.Empty(t, sum.ByCategory)
}
