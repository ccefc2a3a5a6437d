package banking

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fernhill/farmbox/pkg/types"
)

// Candidate is a bank CSV row normalized into canonical transaction fields,
// before dedup and persistence.
type Candidate struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        types.TransactionType
	Reference   *string
	Balance     *decimal.Decimal
}

// Column-name aliases per logical field. Each field resolves independently,
// so one header row may mix naming from different bank export formats.
var fieldAliases = map[string][]string{
	"date":        {"date", "transaction date"},
	"description": {"transaction description", "description", "memo"},
	"debit":       {"paid out", "debit", "money out"},
	"credit":      {"paid in", "credit", "money in"},
	"balance":     {"balance"},
	"reference":   {"reference", "transaction id", "ref"},
}

var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2/1/2006",
}

// headerIndex maps each logical field to its column position in the header
// row, if any alias matches. Matching is case-insensitive with surrounding
// whitespace ignored.
func headerIndex(header []string) map[string]int {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	idx := make(map[string]int, len(fieldAliases))
	for field, aliases := range fieldAliases {
		for _, alias := range aliases {
			for i, h := range normalized {
				if h == alias {
					idx[field] = i
					break
				}
			}
			if _, ok := idx[field]; ok {
				break
			}
		}
	}
	return idx
}

// MapRow normalizes one CSV data row against the header. It returns nil when
// the row should be skipped: missing date or description, no non-zero debit
// or credit value, or any parse failure. A malformed row never aborts the
// batch.
func MapRow(header, row []string) *Candidate {
	idx := headerIndex(header)

	dateStr := cell(row, idx, "date")
	desc := strings.TrimSpace(cell(row, idx, "description"))
	if dateStr == "" || desc == "" {
		return nil
	}

	date, ok := parseDate(dateStr)
	if !ok {
		return nil
	}

	debit, debitOK := parseAmount(cell(row, idx, "debit"))
	credit, creditOK := parseAmount(cell(row, idx, "credit"))

	c := &Candidate{Date: date, Description: desc}
	switch {
	case debitOK && !debit.IsZero():
		c.Amount = debit.Abs()
		c.Type = types.TransactionTypeDebit
	case creditOK && !credit.IsZero():
		c.Amount = credit.Abs()
		c.Type = types.TransactionTypeCredit
	default:
		return nil
	}

	if ref := strings.TrimSpace(cell(row, idx, "reference")); ref != "" {
		c.Reference = &ref
	}
	if bal, ok := parseAmount(cell(row, idx, "balance")); ok {
		c.Balance = &bal
	}
	return c
}

func cell(row []string, idx map[string]int, field string) string {
	i, ok := idx[field]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAmount strips thousands separators and currency symbols, then parses
// the remainder as a decimal.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	s = strings.NewReplacer(",", "", "£", "", "$", "", "€", "").Replace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
