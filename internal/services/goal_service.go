package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-backend/internal/models"
	repo "github.com/fintrackhq/fintrack-backend/internal/repository"
)

type GoalInput struct {
	Title        string
	TargetAmount decimal.Decimal
	TargetDate   *time.Time
	Description  string
}

type GoalService struct {
	goals repo.Goals
}

func NewGoalService(g repo.Goals) *GoalService { return &GoalService{goals: g} }

func (s *GoalService) Create(ctx context.Context, callerID string, in GoalInput) (models.Goal, error) {
	if err := validateGoal(in); err != nil {
		return models.Goal{}, err
	}
	g, err := s.goals.Create(ctx, models.Goal{
		UserID:       callerID,
		Title:        strings.TrimSpace(in.Title),
		TargetAmount: in.TargetAmount,
		TargetDate:   in.TargetDate,
		Description:  in.Description,
	})
	return g, translateDB(err)
}

// List computes progress as contributed/target, in percent at 2 decimals.
func (s *GoalService) List(ctx context.Context, callerID, userID string) ([]models.GoalProgress, error) {
	if callerID != userID {
		return nil, ErrForbidden
	}
	goals, err := s.goals.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range goals {
		if goals[i].TargetAmount.IsPositive() {
			goals[i].Progress = goals[i].Contributed.Mul(hundred).DivRound(goals[i].TargetAmount, 2)
		}
	}
	return goals, nil
}

func (s *GoalService) Contribute(ctx context.Context, callerID, goalID string, amount decimal.Decimal) (models.GoalContribution, error) {
	if !amount.IsPositive() {
		return models.GoalContribution{}, fmt.Errorf("%w: amount must be > 0", ErrValidation)
	}
	if _, err := s.ownedGoal(ctx, callerID, goalID); err != nil {
		return models.GoalContribution{}, err
	}
	c, err := s.goals.AddContribution(ctx, models.GoalContribution{GoalID: goalID, Amount: amount})
	return c, translateDB(err)
}

func (s *GoalService) Update(ctx context.Context, callerID, goalID string, in GoalInput) (models.Goal, error) {
	if err := validateGoal(in); err != nil {
		return models.Goal{}, err
	}
	g, err := s.ownedGoal(ctx, callerID, goalID)
	if err != nil {
		return models.Goal{}, err
	}
	g.Title = strings.TrimSpace(in.Title)
	g.TargetAmount = in.TargetAmount
	g.TargetDate = in.TargetDate
	g.Description = in.Description
	if err := s.goals.Update(ctx, g); err != nil {
		return models.Goal{}, translateDB(err)
	}
	return g, nil
}

func (s *GoalService) Delete(ctx context.Context, callerID, goalID string) error {
	if _, err := s.ownedGoal(ctx, callerID, goalID); err != nil {
		return err
	}
	return translateDB(s.goals.Delete(ctx, goalID))
}

func (s *GoalService) ownedGoal(ctx context.Context, callerID, goalID string) (models.Goal, error) {
	g, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return models.Goal{}, translateDB(err)
	}
	if g.UserID != callerID {
		return models.Goal{}, ErrForbidden
	}
	return g, nil
}

func validateGoal(in GoalInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title required", ErrValidation)
	}
	if !in.TargetAmount.IsPositive() {
		return fmt.Errorf("%w: target_amount must be > 0", ErrValidation)
	}
	return nil
}
