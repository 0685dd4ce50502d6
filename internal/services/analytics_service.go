package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-backend/internal/models"
	repo "github.com/fintrackhq/fintrack-backend/internal/repository"
)

const trendMonths = 12

var hundred = decimal.NewFromInt(100)

// WindowParams are the raw query params of the analytics endpoints. At most
// one of Date/Month/Year is honored, in that order; all empty means the last
// 30 days.
type WindowParams struct {
	Date  string // YYYY-MM-DD
	Month string // YYYY-MM
	Year  string // YYYY
}

type AnalyticsService struct {
	analytics repo.Analytics
}

func NewAnalyticsService(a repo.Analytics) *AnalyticsService {
	return &AnalyticsService{analytics: a}
}

// resolveWindow turns the params into a half-open [from, to) interval.
func resolveWindow(p WindowParams, now time.Time) (time.Time, time.Time, error) {
	switch {
	case p.Date != "":
		d, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: bad date", ErrValidation)
		}
		return d, d.AddDate(0, 0, 1), nil
	case p.Month != "":
		m, err := time.Parse("2006-01", p.Month)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: bad month", ErrValidation)
		}
		return m, m.AddDate(0, 1, 0), nil
	case p.Year != "":
		y, err := time.Parse("2006", p.Year)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: bad year", ErrValidation)
		}
		return y, y.AddDate(1, 0, 0), nil
	default:
		// end one second past now so entries stamped this instant count
		return now.AddDate(0, 0, -30), now.Add(time.Second), nil
	}
}

// ByCategory returns per-category totals plus each category's share of the
// window total. An empty window is a success with an empty list, not a 404.
func (s *AnalyticsService) ByCategory(ctx context.Context, callerID, userID string, kind models.EntryKind, p WindowParams) ([]models.CategoryBreakdown, error) {
	if callerID != userID {
		return nil, ErrForbidden
	}
	from, to, err := resolveWindow(p, time.Now())
	if err != nil {
		return nil, err
	}
	totals, err := s.analytics.CategoryTotals(ctx, userID, kind, from, to)
	if err != nil {
		return nil, err
	}
	return breakdown(totals), nil
}

func breakdown(totals []models.CategoryTotal) []models.CategoryBreakdown {
	grand := decimal.Zero
	for _, t := range totals {
		grand = grand.Add(t.Total)
	}
	out := make([]models.CategoryBreakdown, 0, len(totals))
	for _, t := range totals {
		pct := decimal.Zero
		if grand.IsPositive() {
			pct = t.Total.Mul(hundred).DivRound(grand, 2)
		}
		out = append(out, models.CategoryBreakdown{CategoryTotal: t, Percentage: pct})
	}
	return out
}

// Trends reports the last 12 calendar months, newest first. A user with no
// transactions at all gets ErrNoData; the handler maps that to 404.
func (s *AnalyticsService) Trends(ctx context.Context, callerID, userID string) (models.TrendReport, error) {
	if callerID != userID {
		return models.TrendReport{}, ErrForbidden
	}
	rows, err := s.analytics.MonthlyTotals(ctx, userID, trendMonths)
	if err != nil {
		return models.TrendReport{}, err
	}
	if len(rows) == 0 {
		return models.TrendReport{}, ErrNoData
	}

	report := models.TrendReport{Months: make([]models.MonthTrend, 0, len(rows))}
	totalSavings := decimal.Zero
	var best, worst *models.MonthTrend
	for _, row := range rows {
		t := models.MonthTrend{
			MonthlyTotal:   row,
			IncomeAverage:  average(row.IncomeTotal, row.IncomeCount),
			ExpenseAverage: average(row.ExpenseTotal, row.ExpenseCount),
			NetSavings:     row.IncomeTotal.Sub(row.ExpenseTotal),
		}
		report.Months = append(report.Months, t)
		totalSavings = totalSavings.Add(t.NetSavings)

		last := &report.Months[len(report.Months)-1]
		if best == nil || last.NetSavings.GreaterThan(best.NetSavings) {
			best = last
		}
		if worst == nil || last.NetSavings.LessThan(worst.NetSavings) {
			worst = last
		}
	}
	report.AverageMonthlySavings = totalSavings.DivRound(decimal.NewFromInt(int64(len(rows))), 2)
	report.BestMonth = best.Month
	report.WorstMonth = worst.Month
	return report, nil
}

func average(total decimal.Decimal, count int64) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.DivRound(decimal.NewFromInt(count), 2)
}

// Savings covers all-time, the current calendar month or the current year.
func (s *AnalyticsService) Savings(ctx context.Context, callerID, userID, timeframe string) (models.SavingsReport, error) {
	if callerID != userID {
		return models.SavingsReport{}, ErrForbidden
	}

	now := time.Now()
	var from, to *time.Time
	switch timeframe {
	case "", "all":
		timeframe = "all"
	case "month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0)
		from, to = &start, &end
	case "year":
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(1, 0, 0)
		from, to = &start, &end
	default:
		return models.SavingsReport{}, fmt.Errorf("%w: bad timeframe", ErrValidation)
	}

	income, expenses, err := s.analytics.Totals(ctx, userID, from, to)
	if err != nil {
		return models.SavingsReport{}, err
	}
	savings := income.Sub(expenses)
	rate := decimal.Zero
	if income.IsPositive() {
		rate = savings.Mul(hundred).DivRound(income, 2)
	}
	return models.SavingsReport{
		Timeframe:     timeframe,
		TotalIncome:   income,
		TotalExpenses: expenses,
		Savings:       savings,
		SavingsRate:   rate,
	}, nil
}

// BudgetVsSpend compares each budgeted expense category with the current
// calendar month's spend. Remaining may go negative; it is not clamped.
func (s *AnalyticsService) BudgetVsSpend(ctx context.Context, callerID, userID string) ([]models.BudgetStatus, error) {
	if callerID != userID {
		return nil, ErrForbidden
	}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	rows, err := s.analytics.BudgetSpend(ctx, userID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Remaining = rows[i].BudgetLimit.Sub(rows[i].Spent)
	}
	return rows, nil
}

// CategoryUsage is the unfiltered grouped listing (no date window).
func (s *AnalyticsService) CategoryUsage(ctx context.Context, callerID, userID string, kind models.EntryKind) ([]models.CategoryTotal, error) {
	if callerID != userID {
		return nil, ErrForbidden
	}
	return s.analytics.CategoryUsage(ctx, userID, kind)
}
