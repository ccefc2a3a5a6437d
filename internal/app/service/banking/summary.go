package banking

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fernhill/farmbox/internal/models"
	"github.com/fernhill/farmbox/pkg/types"
)

const uncategorized = "uncategorized"

type SummaryRequest struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
	// Type optionally restricts the summary to debit or credit rows.
	Type *types.TransactionType `json:"type"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Credit   decimal.Decimal `json:"credit"`
	Debit    decimal.Decimal `json:"debit"`
	Count    int             `json:"count"`
}

// Summary is a read-only projection over the ledger for a date range.
// NetProfit is income minus expenses over the matched rows.
type Summary struct {
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	NetProfit   decimal.Decimal `json:"net_profit"`
	Count       int             `json:"count"`
	ByCategory  []CategoryTotal `json:"by_category"`
}

// Aggregate folds transactions into a Summary. Computed row by row, so the
// grouped figures agree with a brute-force sum over the same rows by
// construction.
func Aggregate(rows []*models.BankTransaction, from, to time.Time) *Summary {
	sum := &Summary{From: from, To: to}
	byCat := make(map[string]*CategoryTotal)

	for _, row := range rows {
		cat := uncategorized
		if row.Category != nil && *row.Category != "" {
			cat = *row.Category
		}
		ct, ok := byCat[cat]
		if !ok {
			ct = &CategoryTotal{Category: cat}
			byCat[cat] = ct
		}

		switch row.Type {
		case types.TransactionTypeCredit:
			sum.TotalCredit = sum.TotalCredit.Add(row.Amount)
			ct.Credit = ct.Credit.Add(row.Amount)
		case types.TransactionTypeDebit:
			sum.TotalDebit = sum.TotalDebit.Add(row.Amount)
			ct.Debit = ct.Debit.Add(row.Amount)
		}
		ct.Count++
		sum.Count++
	}

	for _, ct := range byCat {
		sum.ByCategory = append(sum.ByCategory, *ct)
	}
	sortCategoryTotals(sum.ByCategory)

	sum.NetProfit = sum.TotalCredit.Sub(sum.TotalDebit)
	return sum
}

func sortCategoryTotals(totals []CategoryTotal) {
	for i := 1; i < len(totals); i++ {
		for j := i; j > 0 && totals[j].Category < totals[j-1].Category; j-- {
			totals[j], totals[j-1] = totals[j-1], totals[j]
		}
	}
}

// Summary loads the rows matching the range/type filter and aggregates them.
func (s *Service) Summary(ctx context.Context, req *SummaryRequest) (*Summary, error) {
	if req == nil || req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("summary requires a from/to date range")
	}

	q := s.db.WithContext(ctx).
		Where("transaction_date >= ? AND transaction_date <= ?",
			req.From.Format("2006-01-02"), req.To.Format("2006-01-02"))
	if req.Type != nil {
		q = q.Where("type = ?", *req.Type)
	}

	var rows []*models.BankTransaction
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load transactions for summary: %w", err)
	}
	return Aggregate(rows, req.From, req.To), nil
}
