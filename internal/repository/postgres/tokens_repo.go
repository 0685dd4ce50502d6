package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrackhq/fintrack-backend/internal/models"
)

type tokensRepo struct{ pool *pgxpool.Pool }

func (r *tokensRepo) Create(ctx context.Context, tx pgx.Tx, userID, token string, expiresAt time.Time) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO refresh_tokens(id, user_id, token, expires_at) VALUES($1,$2,$3,$4)`,
		uuid.NewString(), userID, token, expiresAt,
	)
	return err
}

func (r *tokensRepo) FindValid(ctx context.Context, token string, notBefore time.Time) (models.RefreshToken, error) {
	var t models.RefreshToken
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, token, expires_at, created_at
		   FROM refresh_tokens
		  WHERE token=$1 AND expires_at > $2
		  ORDER BY expires_at DESC
		  LIMIT 1`,
		token, notBefore,
	).Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.CreatedAt)
	return t, err
}

// Revoke soft-deletes by expiring the row; affecting zero rows is fine, which
// makes logout idempotent.
func (r *tokensRepo) Revoke(ctx context.Context, token string, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE refresh_tokens SET expires_at=$2 WHERE token=$1 AND expires_at > $2`,
		token, at,
	)
	return err
}

func (r *tokensRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	ct, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}
