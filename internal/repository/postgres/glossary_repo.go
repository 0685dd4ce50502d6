package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrackhq/fintrack-backend/internal/models"
)

type glossaryRepo struct{ pool *pgxpool.Pool }

func (r *glossaryRepo) List(ctx context.Context, bodySystem string) ([]models.GlossaryTerm, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, term, definition, body_system, created_at
  FROM anatomy_terms
 WHERE $1 = '' OR body_system = $1
 ORDER BY term`, bodySystem)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.GlossaryTerm
	for rows.Next() {
		var t models.GlossaryTerm
		if err := rows.Scan(&t.ID, &t.Term, &t.Definition, &t.BodySystem, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *glossaryRepo) GetByID(ctx context.Context, id string) (models.GlossaryTerm, error) {
	var t models.GlossaryTerm
	err := r.pool.QueryRow(ctx, `
SELECT id, term, definition, body_system, created_at FROM anatomy_terms WHERE id=$1`, id).
		Scan(&t.ID, &t.Term, &t.Definition, &t.BodySystem, &t.CreatedAt)
	return t, err
}
