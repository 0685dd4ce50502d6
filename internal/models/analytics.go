package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal is a raw grouped row out of the analytics repo.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

// CategoryBreakdown adds the category's share of the window total.
type CategoryBreakdown struct {
	CategoryTotal
	Percentage decimal.Decimal `json:"percentage"`
}

// MonthlyTotal is one calendar month's raw rollup across both kinds.
type MonthlyTotal struct {
	Month        string          `json:"month"` // YYYY-MM
	IncomeTotal  decimal.Decimal `json:"income_total"`
	IncomeCount  int64           `json:"income_count"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
	ExpenseCount int64           `json:"expense_count"`
}

type MonthTrend struct {
	MonthlyTotal
	IncomeAverage  decimal.Decimal `json:"income_average"`
	ExpenseAverage decimal.Decimal `json:"expense_average"`
	NetSavings     decimal.Decimal `json:"net_savings"`
}

type TrendReport struct {
	Months                []MonthTrend    `json:"months"`
	AverageMonthlySavings decimal.Decimal `json:"average_monthly_savings"`
	BestMonth             string          `json:"best_month"`
	WorstMonth            string          `json:"worst_month"`
}

type SavingsReport struct {
	Timeframe     string          `json:"timeframe"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Savings       decimal.Decimal `json:"savings"`
	SavingsRate   decimal.Decimal `json:"savings_rate"`
}

// BudgetStatus joins a category's budget limit with the current calendar
// month's spend. Remaining may go negative; it is not clamped.
type BudgetStatus struct {
	Category    string          `json:"category"`
	BudgetLimit decimal.Decimal `json:"budget_limit"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	MonthStart  time.Time       `json:"month_start"`
}
