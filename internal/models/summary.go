package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialSummary is the per-user cached aggregate. It is derived, not
// authoritative: after every committed mutation it must equal the sums over
// the live income/expense rows.
type FinancialSummary struct {
	UserID          string          `json:"user_id"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	TotalIncome     decimal.Decimal `json:"total_income"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	LastIncomeDate  *time.Time      `json:"last_income_date"`
	LastExpenseDate *time.Time      `json:"last_expense_date"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
