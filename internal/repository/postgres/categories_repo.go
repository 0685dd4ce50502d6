package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrackhq/fintrack-backend/internal/models"
)

type categoriesRepo struct{ pool *pgxpool.Pool }

func (r *categoriesRepo) Create(ctx context.Context, c models.Category) (models.Category, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, `
INSERT INTO categories (id, name, type, icon, color, description, budget_limit)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id, name, type, icon, color, description, budget_limit, created_at`,
		c.ID, c.Name, c.Type, c.Icon, c.Color, c.Description, c.BudgetLimit).
		Scan(&c.ID, &c.Name, &c.Type, &c.Icon, &c.Color, &c.Description, &c.BudgetLimit, &c.CreatedAt)
	return c, err
}

func (r *categoriesRepo) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, name, type, icon, color, description, budget_limit, created_at
  FROM categories ORDER BY type, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Icon, &c.Color, &c.Description, &c.BudgetLimit, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *categoriesRepo) GetByID(ctx context.Context, id string) (models.Category, error) {
	var c models.Category
	err := r.pool.QueryRow(ctx, `
SELECT id, name, type, icon, color, description, budget_limit, created_at
  FROM categories WHERE id=$1`, id).
		Scan(&c.ID, &c.Name, &c.Type, &c.Icon, &c.Color, &c.Description, &c.BudgetLimit, &c.CreatedAt)
	return c, err
}

func (r *categoriesRepo) Update(ctx context.Context, c models.Category) error {
	ct, err := r.pool.Exec(ctx, `
UPDATE categories SET name=$2, icon=$3, color=$4, description=$5, budget_limit=$6 WHERE id=$1`,
		c.ID, c.Name, c.Icon, c.Color, c.Description, c.BudgetLimit)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoriesRepo) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// InUse reports whether any ledger entry still references the category name.
func (r *categoriesRepo) InUse(ctx context.Context, name string, kind models.EntryKind) (bool, error) {
	var used bool
	q := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE category=$1)`, entryTable(kind))
	err := r.pool.QueryRow(ctx, q, name).Scan(&used)
	return used, err
}
