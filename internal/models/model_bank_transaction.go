package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fernhill/farmbox/pkg/types"
)

// BankTransaction is one ledger row imported from a bank CSV export.
// (transaction_date, description, amount) is the dedup key: re-importing the
// same statement never creates duplicates. Reference and balance are
// bank-reported extras and deliberately excluded from the key.
type BankTransaction struct {
	ID              string          `gorm:"column:id;type:uuid;primary_key" json:"id"`
	TransactionDate time.Time       `gorm:"column:transaction_date;type:date;not null;uniqueIndex:uniq_txn_key,priority:1;index" json:"transaction_date"`
	Description     string          `gorm:"column:description;type:text;not null;uniqueIndex:uniq_txn_key,priority:2" json:"description"`
	Amount          decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null;uniqueIndex:uniq_txn_key,priority:3" json:"amount"`
	Type            types.TransactionType `gorm:"column:type;type:varchar(8);not null;index" json:"type"`
	Reference       *string         `gorm:"column:reference;type:varchar(128);default:null" json:"reference"`
	// Balance is the running balance as reported by the bank, when present.
	Balance  *decimal.Decimal `gorm:"column:balance;type:numeric(12,2);default:null" json:"balance"`
	Category *string          `gorm:"column:category;type:varchar(64);index;default:null" json:"category"`

	ImportFilename string    `gorm:"column:import_filename;type:varchar(255);not null" json:"import_filename"`
	ImportedAt     time.Time `gorm:"column:imported_at;not null" json:"imported_at"`
	ImportedBy     string    `gorm:"column:imported_by;type:varchar(64)" json:"imported_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BankTransaction) TableName() string {
	return "bank_transaction"
}

// DedupKey returns the canonical identity triple used for import dedup.
func (t *BankTransaction) DedupKey() string {
	return t.TransactionDate.Format("2006-01-02") + "|" + t.Description + "|" + t.Amount.StringFixed(2)
}
