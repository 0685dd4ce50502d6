package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind selects between the two ledger tables. The row shape is identical.
type EntryKind string

const (
	KindIncome  EntryKind = "income"
	KindExpense EntryKind = "expense"
)

func (k EntryKind) Valid() bool { return k == KindIncome || k == KindExpense }

// Entry is a single income or expense row.
type Entry struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	OccurredAt  time.Time       `json:"timestamp"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
