package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrackhq/fintrack-backend/internal/models"
)

type goalsRepo struct{ pool *pgxpool.Pool }

func (r *goalsRepo) Create(ctx context.Context, g models.Goal) (models.Goal, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, `
INSERT INTO goals (id, user_id, title, target_amount, target_date, description)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id, user_id, title, target_amount, target_date, description, created_at, updated_at`,
		g.ID, g.UserID, g.Title, g.TargetAmount, g.TargetDate, g.Description).
		Scan(&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.TargetDate, &g.Description, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

func (r *goalsRepo) GetByID(ctx context.Context, id string) (models.Goal, error) {
	var g models.Goal
	err := r.pool.QueryRow(ctx, `
SELECT id, user_id, title, target_amount, target_date, description, created_at, updated_at
  FROM goals WHERE id=$1`, id).
		Scan(&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.TargetDate, &g.Description, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

func (r *goalsRepo) ListByUser(ctx context.Context, userID string) ([]models.GoalProgress, error) {
	rows, err := r.pool.Query(ctx, `
SELECT g.id, g.user_id, g.title, g.target_amount, g.target_date, g.description,
       g.created_at, g.updated_at, COALESCE(SUM(c.amount), 0)
  FROM goals g
  LEFT JOIN goal_contributions c ON c.goal_id = g.id
 WHERE g.user_id=$1
 GROUP BY g.id
 ORDER BY g.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.GoalProgress
	for rows.Next() {
		var p models.GoalProgress
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.TargetAmount, &p.TargetDate,
			&p.Description, &p.CreatedAt, &p.UpdatedAt, &p.Contributed); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *goalsRepo) Update(ctx context.Context, g models.Goal) error {
	ct, err := r.pool.Exec(ctx, `
UPDATE goals SET title=$2, target_amount=$3, target_date=$4, description=$5, updated_at=now()
 WHERE id=$1`,
		g.ID, g.Title, g.TargetAmount, g.TargetDate, g.Description)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *goalsRepo) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM goals WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *goalsRepo) AddContribution(ctx context.Context, c models.GoalContribution) (models.GoalContribution, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, `
INSERT INTO goal_contributions (id, goal_id, amount)
VALUES ($1,$2,$3)
RETURNING id, goal_id, amount, contributed_at`,
		c.ID, c.GoalID, c.Amount).
		Scan(&c.ID, &c.GoalID, &c.Amount, &c.ContributedAt)
	return c, err
}
