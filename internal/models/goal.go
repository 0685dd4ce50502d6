package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Goal struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Title        string          `json:"title"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	TargetDate   *time.Time      `json:"target_date,omitempty"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type GoalContribution struct {
	ID            string          `json:"id"`
	GoalID        string          `json:"goal_id"`
	Amount        decimal.Decimal `json:"amount"`
	ContributedAt time.Time       `json:"contributed_at"`
}

// GoalProgress is a goal plus its contribution rollup.
// Progress = contributed/target*100, capped nowhere (clients clamp display).
type GoalProgress struct {
	Goal
	Contributed decimal.Decimal `json:"contributed"`
	Progress    decimal.Decimal `json:"progress"`
}
