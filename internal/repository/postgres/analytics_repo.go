package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-backend/internal/models"
)

type analyticsRepo struct{ pool *pgxpool.Pool }

func (r *analyticsRepo) CategoryTotals(ctx context.Context, userID string, kind models.EntryKind, from, to time.Time) ([]models.CategoryTotal, error) {
	q := fmt.Sprintf(`
SELECT category, COALESCE(SUM(amount), 0), COUNT(*)
  FROM %s
 WHERE user_id=$1 AND occurred_at >= $2 AND occurred_at < $3
 GROUP BY category
 ORDER BY SUM(amount) DESC`, entryTable(kind))
	rows, err := r.pool.Query(ctx, q, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategoryTotals(rows)
}

func (r *analyticsRepo) CategoryUsage(ctx context.Context, userID string, kind models.EntryKind) ([]models.CategoryTotal, error) {
	q := fmt.Sprintf(`
SELECT category, COALESCE(SUM(amount), 0), COUNT(*)
  FROM %s
 WHERE user_id=$1
 GROUP BY category
 ORDER BY SUM(amount) DESC`, entryTable(kind))
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategoryTotals(rows)
}

func scanCategoryTotals(rows pgx.Rows) ([]models.CategoryTotal, error) {
	var out []models.CategoryTotal
	for rows.Next() {
		var c models.CategoryTotal
		if err := rows.Scan(&c.Category, &c.Total, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// MonthlyTotals rolls up the last N calendar months across both ledgers.
// Months with no activity do not produce a row.
func (r *analyticsRepo) MonthlyTotals(ctx context.Context, userID string, months int) ([]models.MonthlyTotal, error) {
	rows, err := r.pool.Query(ctx, `
SELECT month,
       COALESCE(SUM(income_amount), 0),  COUNT(income_amount),
       COALESCE(SUM(expense_amount), 0), COUNT(expense_amount)
  FROM (
        SELECT to_char(occurred_at, 'YYYY-MM') AS month, amount AS income_amount, NULL::numeric AS expense_amount
          FROM incomes
         WHERE user_id=$1 AND occurred_at >= date_trunc('month', now()) - ($2 - 1) * interval '1 month'
        UNION ALL
        SELECT to_char(occurred_at, 'YYYY-MM'), NULL, amount
          FROM expenses
         WHERE user_id=$1 AND occurred_at >= date_trunc('month', now()) - ($2 - 1) * interval '1 month'
       ) t
 GROUP BY month
 ORDER BY month DESC`,
		userID, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MonthlyTotal
	for rows.Next() {
		var m models.MonthlyTotal
		if err := rows.Scan(&m.Month, &m.IncomeTotal, &m.IncomeCount, &m.ExpenseTotal, &m.ExpenseCount); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *analyticsRepo) Totals(ctx context.Context, userID string, from, to *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var income, expenses decimal.Decimal
	err := r.pool.QueryRow(ctx, `
SELECT (SELECT COALESCE(SUM(amount), 0) FROM incomes
         WHERE user_id=$1 AND ($2::timestamptz IS NULL OR occurred_at >= $2)
           AND ($3::timestamptz IS NULL OR occurred_at < $3)),
       (SELECT COALESCE(SUM(amount), 0) FROM expenses
         WHERE user_id=$1 AND ($2::timestamptz IS NULL OR occurred_at >= $2)
           AND ($3::timestamptz IS NULL OR occurred_at < $3))`,
		userID, from, to).Scan(&income, &expenses)
	return income, expenses, err
}

// BudgetSpend joins expense categories carrying a budget_limit against the
// given month's spend. Categories with no spend still appear, at zero.
func (r *analyticsRepo) BudgetSpend(ctx context.Context, userID string, monthStart, nextMonth time.Time) ([]models.BudgetStatus, error) {
	rows, err := r.pool.Query(ctx, `
SELECT c.name, c.budget_limit, COALESCE(SUM(e.amount), 0)
  FROM categories c
  LEFT JOIN expenses e
    ON e.category = c.name AND e.user_id = $1
   AND e.occurred_at >= $2 AND e.occurred_at < $3
 WHERE c.type = 'expense' AND c.budget_limit IS NOT NULL
 GROUP BY c.name, c.budget_limit
 ORDER BY c.name`,
		userID, monthStart, nextMonth)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.BudgetStatus
	for rows.Next() {
		b := models.BudgetStatus{MonthStart: monthStart}
		if err := rows.Scan(&b.Category, &b.BudgetLimit, &b.Spent); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
