package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is a catalog row; entries store the category name as a free-text
// label, so deletion is refused while any entry still carries the name.
type Category struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Type        EntryKind        `json:"type"`
	Icon        string           `json:"icon"`
	Color       string           `json:"color"`
	Description string           `json:"description"`
	BudgetLimit *decimal.Decimal `json:"budget_limit,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
