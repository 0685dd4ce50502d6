package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-backend/internal/metrics"
	"github.com/fintrackhq/fintrack-backend/internal/models"
	repo "github.com/fintrackhq/fintrack-backend/internal/repository"
	"github.com/fintrackhq/fintrack-backend/internal/worker"
)

type EntryInput struct {
	Amount      decimal.Decimal
	Description string
	Category    string
	OccurredAt  *time.Time
}

// LedgerService owns the mutation sequence entry row -> mirror row -> summary
// delta. All three writes share one transaction; partial writes are never
// visible.
type LedgerService struct {
	runner repo.TxRunner
	ledger repo.Ledger
	audit  repo.AuditLogs
	wp     *worker.Pool
}

func NewLedgerService(runner repo.TxRunner, ledger repo.Ledger, audit repo.AuditLogs, wp *worker.Pool) *LedgerService {
	return &LedgerService{runner: runner, ledger: ledger, audit: audit, wp: wp}
}

func (s *LedgerService) Add(ctx context.Context, kind models.EntryKind, callerID, userID string, in EntryInput) (models.Entry, error) {
	if callerID != userID {
		return models.Entry{}, ErrForbidden
	}
	if err := validateInput(kind, in); err != nil {
		return models.Entry{}, err
	}

	e := models.Entry{
		UserID:      userID,
		Amount:      in.Amount,
		Description: in.Description,
		Category:    in.Category,
	}
	if in.OccurredAt != nil {
		e.OccurredAt = *in.OccurredAt
	}

	err := s.runner.WithTx(ctx, func(tx pgx.Tx) error {
		created, err := s.ledger.InsertEntry(ctx, tx, kind, e)
		if err != nil {
			return translateDB(err)
		}
		if err := s.ledger.InsertMirror(ctx, tx, mirrorOf(kind, created)); err != nil {
			return err
		}
		seen := created.OccurredAt
		if err := s.ledger.ApplySummary(ctx, tx, userID, kind, created.Amount, &seen); err != nil {
			return err
		}
		e = created
		return nil
	})
	if err != nil {
		return models.Entry{}, err
	}

	metrics.LedgerMutations.WithLabelValues(string(kind), "add").Inc()
	s.auditAsync(e.ID, string(kind)+"_added", e.Amount)
	return e, nil
}

// Update adjusts the summary by the amount delta rather than recomputing it.
func (s *LedgerService) Update(ctx context.Context, kind models.EntryKind, callerID, entryID string, in EntryInput) (models.Entry, error) {
	if err := validateInput(kind, in); err != nil {
		return models.Entry{}, err
	}

	var updated models.Entry
	err := s.runner.WithTx(ctx, func(tx pgx.Tx) error {
		old, err := s.ledger.GetEntryForUpdate(ctx, tx, kind, entryID)
		if err != nil {
			return translateDB(err)
		}
		if old.UserID != callerID {
			return ErrForbidden
		}

		updated = old
		updated.Amount = in.Amount
		updated.Description = in.Description
		updated.Category = in.Category
		if err := s.ledger.UpdateEntry(ctx, tx, kind, updated); err != nil {
			return translateDB(err)
		}
		if err := s.ledger.UpdateMirror(ctx, tx, kind, updated); err != nil {
			return err
		}

		delta := in.Amount.Sub(old.Amount)
		seen := time.Now()
		return s.ledger.ApplySummary(ctx, tx, old.UserID, kind, delta, &seen)
	})
	if err != nil {
		return models.Entry{}, err
	}

	metrics.LedgerMutations.WithLabelValues(string(kind), "update").Inc()
	s.auditAsync(entryID, string(kind)+"_updated", updated.Amount)
	return updated, nil
}

// Delete removes the mirror row before the entry row (the mirror references
// the entry) and reverses the summary contribution.
func (s *LedgerService) Delete(ctx context.Context, kind models.EntryKind, callerID, entryID string) error {
	var amount decimal.Decimal
	err := s.runner.WithTx(ctx, func(tx pgx.Tx) error {
		old, err := s.ledger.GetEntryForUpdate(ctx, tx, kind, entryID)
		if err != nil {
			return translateDB(err)
		}
		if old.UserID != callerID {
			return ErrForbidden
		}
		amount = old.Amount

		if err := s.ledger.DeleteMirror(ctx, tx, kind, entryID); err != nil {
			return err
		}
		if err := s.ledger.DeleteEntry(ctx, tx, kind, entryID); err != nil {
			return translateDB(err)
		}
		return s.ledger.ApplySummary(ctx, tx, old.UserID, kind, old.Amount.Neg(), nil)
	})
	if err != nil {
		return err
	}

	metrics.LedgerMutations.WithLabelValues(string(kind), "delete").Inc()
	s.auditAsync(entryID, string(kind)+"_deleted", amount)
	return nil
}

func (s *LedgerService) List(ctx context.Context, kind models.EntryKind, callerID, userID string, limit, offset int) ([]models.Entry, error) {
	if callerID != userID {
		return nil, ErrForbidden
	}
	return s.ledger.ListEntries(ctx, kind, userID, limit, offset)
}

// Summary returns a zeroed aggregate when no mutation has created the row yet.
func (s *LedgerService) Summary(ctx context.Context, callerID, userID string) (models.FinancialSummary, error) {
	if callerID != userID {
		return models.FinancialSummary{}, ErrForbidden
	}
	sum, err := s.ledger.GetSummary(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.FinancialSummary{
			UserID:         userID,
			CurrentBalance: decimal.Zero,
			TotalIncome:    decimal.Zero,
			TotalExpenses:  decimal.Zero,
		}, nil
	}
	return sum, err
}

func (s *LedgerService) History(ctx context.Context, callerID, userID string, limit, offset int) ([]models.TransactionRecord, error) {
	if callerID != userID {
		return nil, ErrForbidden
	}
	return s.ledger.ListHistory(ctx, userID, limit, offset)
}

func validateInput(kind models.EntryKind, in EntryInput) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown entry kind", ErrValidation)
	}
	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be > 0", ErrValidation)
	}
	if in.Category == "" {
		return fmt.Errorf("%w: category required", ErrValidation)
	}
	return nil
}

func mirrorOf(kind models.EntryKind, e models.Entry) models.TransactionRecord {
	rec := models.TransactionRecord{
		UserID:      e.UserID,
		Type:        kind,
		Amount:      e.Amount,
		Description: e.Description,
		Category:    e.Category,
		OccurredAt:  e.OccurredAt,
	}
	id := e.ID
	if kind == models.KindIncome {
		rec.IncomeID = &id
	} else {
		rec.ExpenseID = &id
	}
	return rec
}

func (s *LedgerService) auditAsync(entryID, action string, amount decimal.Decimal) {
	id := entryID
	s.wp.Submit(func() {
		_ = s.audit.Create(context.Background(), models.AuditLog{
			EntityType: "ledger_entry",
			EntityID:   &id,
			Action:     action,
			Details:    map[string]any{"amount": amount.StringFixed(2)},
		})
	})
}
