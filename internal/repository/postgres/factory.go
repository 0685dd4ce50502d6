package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/fintrackhq/fintrack-backend/internal/repository"
)

type Repositories struct {
	Tx         repo.TxRunner
	Users      repo.Users
	Tokens     repo.RefreshTokens
	Ledger     repo.Ledger
	Analytics  repo.Analytics
	Goals      repo.Goals
	Categories repo.Categories
	Glossary   repo.Glossary
	AuditLogs  repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Tx:         &txRunner{pool},
		Users:      &usersRepo{pool},
		Tokens:     &tokensRepo{pool},
		Ledger:     &ledgerRepo{pool},
		Analytics:  &analyticsRepo{pool},
		Goals:      &goalsRepo{pool},
		Categories: &categoriesRepo{pool},
		Glossary:   &glossaryRepo{pool},
		AuditLogs:  &auditLogsRepo{pool},
	}
}

type txRunner struct{ pool *pgxpool.Pool }

// WithTx runs fn inside one transaction on one pooled connection. Summary
// adjustments are additive UPDATEs, so read committed with its row locks is
// enough to prevent lost updates on current_balance.
func (r *txRunner) WithTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
