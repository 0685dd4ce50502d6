package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-backend/internal/models"
)

// TxRunner hands a live pgx.Tx to the critical section and commits it iff fn
// returns nil. Every multi-statement mutation in the system goes through it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(pgx.Tx) error) error
}

// Methods taking a pgx.Tx participate in a caller-owned transaction; the rest
// run on the pool. Missing rows surface as pgx.ErrNoRows.

type Users interface {
	Create(ctx context.Context, tx pgx.Tx, name, email, passwordHash string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u models.User) (models.User, error)
}

type RefreshTokens interface {
	Create(ctx context.Context, tx pgx.Tx, userID, token string, expiresAt time.Time) error
	// FindValid returns a stored token whose expiry is after notBefore.
	FindValid(ctx context.Context, token string, notBefore time.Time) (models.RefreshToken, error)
	// Revoke sets the stored expiry to "at". No-op when the token is absent.
	Revoke(ctx context.Context, token string, at time.Time) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type Ledger interface {
	InsertEntry(ctx context.Context, tx pgx.Tx, kind models.EntryKind, e models.Entry) (models.Entry, error)
	// GetEntryForUpdate reads the row under FOR UPDATE so concurrent
	// mutations of the same entry serialize.
	GetEntryForUpdate(ctx context.Context, tx pgx.Tx, kind models.EntryKind, id string) (models.Entry, error)
	UpdateEntry(ctx context.Context, tx pgx.Tx, kind models.EntryKind, e models.Entry) error
	DeleteEntry(ctx context.Context, tx pgx.Tx, kind models.EntryKind, id string) error
	ListEntries(ctx context.Context, kind models.EntryKind, userID string, limit, offset int) ([]models.Entry, error)

	InsertMirror(ctx context.Context, tx pgx.Tx, rec models.TransactionRecord) error
	UpdateMirror(ctx context.Context, tx pgx.Tx, kind models.EntryKind, e models.Entry) error
	DeleteMirror(ctx context.Context, tx pgx.Tx, kind models.EntryKind, entryID string) error

	// ApplySummary upserts the per-user aggregate by delta. For income the
	// balance moves with the delta, for expense against it. seenAt refreshes
	// the kind's last-date when non-nil.
	ApplySummary(ctx context.Context, tx pgx.Tx, userID string, kind models.EntryKind, delta decimal.Decimal, seenAt *time.Time) error
	InitSummary(ctx context.Context, tx pgx.Tx, userID string) error
	GetSummary(ctx context.Context, userID string) (models.FinancialSummary, error)
	ListHistory(ctx context.Context, userID string, limit, offset int) ([]models.TransactionRecord, error)
}

type Analytics interface {
	CategoryTotals(ctx context.Context, userID string, kind models.EntryKind, from, to time.Time) ([]models.CategoryTotal, error)
	MonthlyTotals(ctx context.Context, userID string, months int) ([]models.MonthlyTotal, error)
	Totals(ctx context.Context, userID string, from, to *time.Time) (income, expenses decimal.Decimal, err error)
	BudgetSpend(ctx context.Context, userID string, monthStart, nextMonth time.Time) ([]models.BudgetStatus, error)
	CategoryUsage(ctx context.Context, userID string, kind models.EntryKind) ([]models.CategoryTotal, error)
}

type Goals interface {
	Create(ctx context.Context, g models.Goal) (models.Goal, error)
	GetByID(ctx context.Context, id string) (models.Goal, error)
	ListByUser(ctx context.Context, userID string) ([]models.GoalProgress, error)
	Update(ctx context.Context, g models.Goal) error
	Delete(ctx context.Context, id string) error
	AddContribution(ctx context.Context, c models.GoalContribution) (models.GoalContribution, error)
}

type Categories interface {
	Create(ctx context.Context, c models.Category) (models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (models.Category, error)
	Update(ctx context.Context, c models.Category) error
	Delete(ctx context.Context, id string) error
	InUse(ctx context.Context, name string, kind models.EntryKind) (bool, error)
}

type Glossary interface {
	List(ctx context.Context, bodySystem string) ([]models.GlossaryTerm, error)
	GetByID(ctx context.Context, id string) (models.GlossaryTerm, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
