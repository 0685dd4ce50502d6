package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-backend/internal/models"
)

type ledgerRepo struct{ pool *pgxpool.Pool }

// entryTable maps a kind to its table. Kinds are validated at the service
// boundary, so the interpolation below only ever sees these two constants.
func entryTable(kind models.EntryKind) string {
	if kind == models.KindIncome {
		return "incomes"
	}
	return "expenses"
}

func refColumn(kind models.EntryKind) string {
	if kind == models.KindIncome {
		return "income_id"
	}
	return "expense_id"
}

func (r *ledgerRepo) InsertEntry(ctx context.Context, tx pgx.Tx, kind models.EntryKind, e models.Entry) (models.Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	q := fmt.Sprintf(`
INSERT INTO %s (id, user_id, amount, description, category, occurred_at)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id, user_id, amount, description, category, occurred_at, created_at, updated_at`,
		entryTable(kind))
	err := tx.QueryRow(ctx, q, e.ID, e.UserID, e.Amount, e.Description, e.Category, e.OccurredAt).
		Scan(&e.ID, &e.UserID, &e.Amount, &e.Description, &e.Category, &e.OccurredAt, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *ledgerRepo) GetEntryForUpdate(ctx context.Context, tx pgx.Tx, kind models.EntryKind, id string) (models.Entry, error) {
	var e models.Entry
	q := fmt.Sprintf(`
SELECT id, user_id, amount, description, category, occurred_at, created_at, updated_at
  FROM %s WHERE id=$1 FOR UPDATE`, entryTable(kind))
	err := tx.QueryRow(ctx, q, id).
		Scan(&e.ID, &e.UserID, &e.Amount, &e.Description, &e.Category, &e.OccurredAt, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *ledgerRepo) UpdateEntry(ctx context.Context, tx pgx.Tx, kind models.EntryKind, e models.Entry) error {
	q := fmt.Sprintf(`
UPDATE %s SET amount=$2, description=$3, category=$4, updated_at=now() WHERE id=$1`,
		entryTable(kind))
	ct, err := tx.Exec(ctx, q, e.ID, e.Amount, e.Description, e.Category)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ledgerRepo) DeleteEntry(ctx context.Context, tx pgx.Tx, kind models.EntryKind, id string) error {
	ct, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, entryTable(kind)), id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ledgerRepo) ListEntries(ctx context.Context, kind models.EntryKind, userID string, limit, offset int) ([]models.Entry, error) {
	q := fmt.Sprintf(`
SELECT id, user_id, amount, description, category, occurred_at, created_at, updated_at
  FROM %s WHERE user_id=$1 ORDER BY occurred_at DESC LIMIT $2 OFFSET $3`, entryTable(kind))
	rows, err := r.pool.Query(ctx, q, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Entry
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Description, &e.Category, &e.OccurredAt, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ledgerRepo) InsertMirror(ctx context.Context, tx pgx.Tx, rec models.TransactionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := tx.Exec(ctx, `
INSERT INTO transactions (id, user_id, type, income_id, expense_id, amount, description, category, occurred_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		rec.ID, rec.UserID, rec.Type, rec.IncomeID, rec.ExpenseID, rec.Amount, rec.Description, rec.Category, rec.OccurredAt)
	return err
}

func (r *ledgerRepo) UpdateMirror(ctx context.Context, tx pgx.Tx, kind models.EntryKind, e models.Entry) error {
	q := fmt.Sprintf(`
UPDATE transactions SET amount=$2, description=$3, category=$4 WHERE %s=$1`, refColumn(kind))
	_, err := tx.Exec(ctx, q, e.ID, e.Amount, e.Description, e.Category)
	return err
}

func (r *ledgerRepo) DeleteMirror(ctx context.Context, tx pgx.Tx, kind models.EntryKind, entryID string) error {
	_, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM transactions WHERE %s=$1`, refColumn(kind)), entryID)
	return err
}

// ApplySummary is a single additive upsert, so a pre-existing summary row is
// not required and concurrent deltas cannot lose updates.
func (r *ledgerRepo) ApplySummary(ctx context.Context, tx pgx.Tx, userID string, kind models.EntryKind, delta decimal.Decimal, seenAt *time.Time) error {
	balanceDelta := delta
	incomeDelta := delta
	expenseDelta := decimal.Zero
	var lastIncome, lastExpense *time.Time

	if kind == models.KindExpense {
		balanceDelta = delta.Neg()
		incomeDelta = decimal.Zero
		expenseDelta = delta
		lastExpense = seenAt
	} else {
		lastIncome = seenAt
	}

	_, err := tx.Exec(ctx, `
INSERT INTO user_financial_summary
       (user_id, current_balance, total_income, total_expenses, last_income_date, last_expense_date, updated_at)
VALUES ($1,$2,$3,$4,$5,$6, now())
ON CONFLICT (user_id) DO UPDATE SET
       current_balance   = user_financial_summary.current_balance + EXCLUDED.current_balance,
       total_income      = user_financial_summary.total_income + EXCLUDED.total_income,
       total_expenses    = user_financial_summary.total_expenses + EXCLUDED.total_expenses,
       last_income_date  = COALESCE(EXCLUDED.last_income_date, user_financial_summary.last_income_date),
       last_expense_date = COALESCE(EXCLUDED.last_expense_date, user_financial_summary.last_expense_date),
       updated_at        = now()`,
		userID, balanceDelta, incomeDelta, expenseDelta, lastIncome, lastExpense)
	return err
}

func (r *ledgerRepo) InitSummary(ctx context.Context, tx pgx.Tx, userID string) error {
	_, err := tx.Exec(ctx, `
INSERT INTO user_financial_summary (user_id) VALUES ($1)
ON CONFLICT (user_id) DO NOTHING`, userID)
	return err
}

func (r *ledgerRepo) GetSummary(ctx context.Context, userID string) (models.FinancialSummary, error) {
	var s models.FinancialSummary
	err := r.pool.QueryRow(ctx, `
SELECT user_id, current_balance, total_income, total_expenses, last_income_date, last_expense_date, updated_at
  FROM user_financial_summary WHERE user_id=$1`, userID).
		Scan(&s.UserID, &s.CurrentBalance, &s.TotalIncome, &s.TotalExpenses, &s.LastIncomeDate, &s.LastExpenseDate, &s.UpdatedAt)
	return s, err
}

func (r *ledgerRepo) ListHistory(ctx context.Context, userID string, limit, offset int) ([]models.TransactionRecord, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, type, income_id, expense_id, amount, description, category, occurred_at, created_at
  FROM transactions WHERE user_id=$1 ORDER BY occurred_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TransactionRecord
	for rows.Next() {
		var t models.TransactionRecord
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.IncomeID, &t.ExpenseID, &t.Amount, &t.Description, &t.Category, &t.OccurredAt, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
