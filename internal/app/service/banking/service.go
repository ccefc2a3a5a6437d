package banking

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fernhill/farmbox/internal/app/service/categorize"
	"github.com/fernhill/farmbox/internal/models"
	"github.com/fernhill/farmbox/pkg/logctx"
	"github.com/fernhill/farmbox/pkg/metrics"
	"github.com/fernhill/farmbox/pkg/tool"
	"github.com/fernhill/farmbox/pkg/types"
)

type Service struct {
	db    *gorm.DB
	log   *zap.SugaredLogger
	rules *categorize.RuleSet
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, rules *categorize.RuleSet) *Service {
	return &Service{db: db, log: log, rules: rules}
}

// ImportResult counts the outcome of one CSV import batch.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportCSV reads a bank export and creates one BankTransaction per new row.
// Malformed rows are skipped; rows whose (date, description, amount) triple
// already exists are skipped; everything imported in this batch commits or
// rolls back as one transaction.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader, filename, importedBy string, autoCategorize bool) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	result := &ImportResult{}
	var candidates []*Candidate
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// ragged or unquotable row: skip it, keep the batch going
			result.Skipped++
			continue
		}
		c := MapRow(header, row)
		if c == nil {
			result.Skipped++
			continue
		}
		candidates = append(candidates, c)
	}

	now := time.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// seen catches the same key appearing twice within one file
		seen := make(map[string]struct{}, len(candidates))
		for _, c := range candidates {
			record := &models.BankTransaction{
				ID:              tool.GenerateUUIDV7(),
				TransactionDate: c.Date,
				Description:     c.Description,
				Amount:          c.Amount,
				Type:            c.Type,
				Reference:       c.Reference,
				Balance:         c.Balance,
				ImportFilename:  filename,
				ImportedAt:      now,
				ImportedBy:      importedBy,
			}

			key := record.DedupKey()
			if _, dup := seen[key]; dup {
				result.Skipped++
				continue
			}
			seen[key] = struct{}{}

			var count int64
			if err := tx.WithContext(ctx).Model(&models.BankTransaction{}).
				Where("transaction_date = ? AND description = ? AND amount = ?",
					c.Date.Format("2006-01-02"), c.Description, c.Amount).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check for duplicate transaction: %w", err)
			}
			if count > 0 {
				result.Skipped++
				continue
			}

			if autoCategorize {
				record.Category = s.rules.Categorize(categorize.Fields{
					Description: c.Description,
					Reference:   deref(c.Reference),
					Amount:      c.Amount,
					Type:        c.Type,
				})
			}

			if err := tx.WithContext(ctx).Create(record).Error; err != nil {
				return fmt.Errorf("failed to create bank transaction: %w", err)
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("import of %s rolled back: %w", filename, err)
	}

	metrics.ImportRowsTotal.WithLabelValues("imported").Add(float64(result.Imported))
	metrics.ImportRowsTotal.WithLabelValues("skipped").Add(float64(result.Skipped))
	logctx.FromCtx(ctx, s.log).Infow("bank CSV imported",
		"filename", filename, "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Recategorize sets (or clears) the operator-assigned category of one
// transaction.
func (s *Service) Recategorize(ctx context.Context, id string, category *string) (*models.BankTransaction, error) {
	var txn models.BankTransaction
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&txn).Error; err != nil {
		return nil, fmt.Errorf("failed to load bank transaction %s: %w", id, err)
	}
	txn.Category = category
	if err := s.db.WithContext(ctx).Save(&txn).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &txn, nil
}

type ListRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ListResponse struct {
	Items []*models.BankTransaction `json:"items"`
	Total int64                     `json:"total"`
}

type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

// List implements the paginated admin ledger listing with filters.
func (s *Service) List(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.BankTransaction{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count bank transactions: %w", err)
	}

	q := tx.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = "transaction_date"
	}
	q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: sortBy}, Desc: req.SortOrder != "asc"}}})

	var rows []*models.BankTransaction
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list bank transactions: %w", err)
	}
	return &ListResponse{Items: rows, Total: total}, nil
}
