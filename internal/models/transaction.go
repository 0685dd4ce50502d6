package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord mirrors an income or expense row in the unified history
// table. Exactly one of IncomeID/ExpenseID is set, matching Type.
type TransactionRecord struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Type        EntryKind       `json:"type"`
	IncomeID    *string         `json:"income_id,omitempty"`
	ExpenseID   *string         `json:"expense_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	OccurredAt  time.Time       `json:"timestamp"`
	CreatedAt   time.Time       `json:"created_at"`
}
