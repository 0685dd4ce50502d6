package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrackhq/fintrack-backend/internal/models"
)

type fakeGoals struct {
	goals         map[string]models.Goal
	contributions map[string][]models.GoalContribution
}

func newFakeGoals() *fakeGoals {
	return &fakeGoals{
		goals:         map[string]models.Goal{},
		contributions: map[string][]models.GoalContribution{},
	}
}

func (f *fakeGoals) Create(_ context.Context, g models.Goal) (models.Goal, error) {
	g.ID = uuid.NewString()
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt
	f.goals[g.ID] = g
	return g, nil
}

func (f *fakeGoals) GetByID(_ context.Context, id string) (models.Goal, error) {
	g, ok := f.goals[id]
	if !ok {
		return models.Goal{}, pgx.ErrNoRows
	}
	return g, nil
}

func (f *fakeGoals) ListByUser(_ context.Context, userID string) ([]models.GoalProgress, error) {
	var out []models.GoalProgress
	for _, g := range f.goals {
		if g.UserID != userID {
			continue
		}
		sum := decimal.Zero
		for _, c := range f.contributions[g.ID] {
			sum = sum.Add(c.Amount)
		}
		out = append(out, models.GoalProgress{Goal: g, Contributed: sum})
	}
	return out, nil
}

func (f *fakeGoals) Update(_ context.Context, g models.Goal) error {
	if _, ok := f.goals[g.ID]; !ok {
		return pgx.ErrNoRows
	}
	g.UpdatedAt = time.Now()
	f.goals[g.ID] = g
	return nil
}

func (f *fakeGoals) Delete(_ context.Context, id string) error {
	if _, ok := f.goals[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.goals, id)
	return nil
}

func (f *fakeGoals) AddContribution(_ context.Context, c models.GoalContribution) (models.GoalContribution, error) {
	c.ID = uuid.NewString()
	c.ContributedAt = time.Now()
	f.contributions[c.GoalID] = append(f.contributions[c.GoalID], c)
	return c, nil
}

func TestGoalCreateAndProgress(t *testing.T) {
	fg := newFakeGoals()
	svc := NewGoalService(fg)
	ctx := context.Background()

	g, err := svc.Create(ctx, "u1", GoalInput{Title: "  emergency fund ", TargetAmount: dec("1000")})
	require.NoError(t, err)
	assert.Equal(t, "emergency fund", g.Title, "title is trimmed")

	_, err = svc.Contribute(ctx, "u1", g.ID, dec("250"))
	require.NoError(t, err)
	_, err = svc.Contribute(ctx, "u1", g.ID, dec("125.50"))
	require.NoError(t, err)

	list, err := svc.List(ctx, "u1", "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Contributed.Equal(dec("375.50")))
	assert.True(t, list[0].Progress.Equal(dec("37.55")), "got %s", list[0].Progress)
}

func TestGoalProgressCanExceedHundred(t *testing.T) {
	fg := newFakeGoals()
	svc := NewGoalService(fg)
	ctx := context.Background()

	g, err := svc.Create(ctx, "u1", GoalInput{Title: "vacation", TargetAmount: dec("100")})
	require.NoError(t, err)
	_, err = svc.Contribute(ctx, "u1", g.ID, dec("150"))
	require.NoError(t, err)

	list, err := svc.List(ctx, "u1", "u1")
	require.NoError(t, err)
	assert.True(t, list[0].Progress.Equal(dec("150")), "progress is not clamped, got %s", list[0].Progress)
}

func TestGoalValidation(t *testing.T) {
	svc := NewGoalService(newFakeGoals())
	ctx := context.Background()

	cases := []GoalInput{
		{Title: "", TargetAmount: dec("10")},
		{Title: "   ", TargetAmount: dec("10")},
		{Title: "ok", TargetAmount: decimal.Zero},
		{Title: "ok", TargetAmount: dec("-5")},
	}
	for i, in := range cases {
		_, err := svc.Create(ctx, "u1", in)
		assert.ErrorIs(t, err, ErrValidation, fmt.Sprintf("case %d", i))
	}
}

func TestGoalOwnershipEnforced(t *testing.T) {
	fg := newFakeGoals()
	svc := NewGoalService(fg)
	ctx := context.Background()

	g, err := svc.Create(ctx, "u1", GoalInput{Title: "car", TargetAmount: dec("5000")})
	require.NoError(t, err)

	_, err = svc.Contribute(ctx, "intruder", g.ID, dec("10"))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(ctx, "intruder", g.ID, GoalInput{Title: "mine now", TargetAmount: dec("1")})
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(ctx, "intruder", g.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.List(ctx, "intruder", "u1")
	assert.ErrorIs(t, err, ErrForbidden)

	// still there and unchanged
	kept, err := fg.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "car", kept.Title)
}

func TestGoalUpdateAndDelete(t *testing.T) {
	fg := newFakeGoals()
	svc := NewGoalService(fg)
	ctx := context.Background()

	g, err := svc.Create(ctx, "u1", GoalInput{Title: "bike", TargetAmount: dec("800")})
	require.NoError(t, err)

	due := time.Now().AddDate(0, 6, 0)
	updated, err := svc.Update(ctx, "u1", g.ID, GoalInput{Title: "e-bike", TargetAmount: dec("1200"), TargetDate: &due})
	require.NoError(t, err)
	assert.Equal(t, "e-bike", updated.Title)
	assert.True(t, updated.TargetAmount.Equal(dec("1200")))
	require.NotNil(t, updated.TargetDate)

	require.NoError(t, svc.Delete(ctx, "u1", g.ID))
	err = svc.Delete(ctx, "u1", g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGoalContributionValidation(t *testing.T) {
	fg := newFakeGoals()
	svc := NewGoalService(fg)
	ctx := context.Background()

	g, err := svc.Create(ctx, "u1", GoalInput{Title: "house", TargetAmount: dec("10000")})
	require.NoError(t, err)

	_, err = svc.Contribute(ctx, "u1", g.ID, decimal.Zero)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Contribute(ctx, "u1", "no-such-goal", dec("10"))
	assert.ErrorIs(t, err, ErrNotFound)
}
