package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/fintrackhq/fintrack-backend/internal/models"
	repo "github.com/fintrackhq/fintrack-backend/internal/repository"
)

type CategoryService struct {
	categories repo.Categories
}

func NewCategoryService(c repo.Categories) *CategoryService {
	return &CategoryService{categories: c}
}

func (s *CategoryService) Create(ctx context.Context, c models.Category) (models.Category, error) {
	if err := validateCategory(c); err != nil {
		return models.Category{}, err
	}
	c.Name = strings.TrimSpace(c.Name)
	created, err := s.categories.Create(ctx, c)
	// (name, type) is unique; a second insert surfaces as a conflict
	return created, translateDB(err)
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (models.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	return c, translateDB(err)
}

func (s *CategoryService) Update(ctx context.Context, c models.Category) (models.Category, error) {
	existing, err := s.categories.GetByID(ctx, c.ID)
	if err != nil {
		return models.Category{}, translateDB(err)
	}
	c.Type = existing.Type // type is immutable after creation
	if err := validateCategory(c); err != nil {
		return models.Category{}, err
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return models.Category{}, translateDB(err)
	}
	return s.Get(ctx, c.ID)
}

// Delete refuses while any ledger entry still references the category name.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return translateDB(err)
	}
	used, err := s.categories.InUse(ctx, c.Name, c.Type)
	if err != nil {
		return err
	}
	if used {
		return fmt.Errorf("%w: category is referenced by existing entries", ErrConflict)
	}
	return translateDB(s.categories.Delete(ctx, id))
}

func validateCategory(c models.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if !c.Type.Valid() {
		return fmt.Errorf("%w: type must be income or expense", ErrValidation)
	}
	if c.BudgetLimit != nil && !c.BudgetLimit.IsPositive() {
		return fmt.Errorf("%w: budget_limit must be > 0", ErrValidation)
	}
	return nil
}
