package expense

import (
	"context"
	"sort"
	"time"

	"github.com/fincontrol/backend/internal/domain/expense"
	"github.com/shopspring/decimal"
)

// CategorySlice is one category's share of a month's expenses
type CategorySlice struct {
	Category   expense.Category `json:"category"`
	Total      decimal.Decimal  `json:"total"`
	Percentage decimal.Decimal  `json:"percentage"`
	Alert      bool             `json:"alert"`
}

// Dashboard summarizes one month of expenses
type Dashboard struct {
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	Total         decimal.Decimal `json:"total"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	TotalPending  decimal.Decimal `json:"total_pending"`
	TotalOverdue  decimal.Decimal `json:"total_overdue"`
	TotalFixed    decimal.Decimal `json:"total_fixed"`
	TotalVariable decimal.Decimal `json:"total_variable"`
	Categories    []CategorySlice `json:"categories"`
	Projection    decimal.Decimal `json:"projection"`
}

// categoryAlertThreshold is the share of the monthly total above which a
// category is flagged. Strictly greater than, 30% exactly does not trigger.
var categoryAlertThreshold = decimal.NewFromInt(30)

// BuildDashboard aggregates the given month's expenses by status, type and
// category, and projects next month as the average of the previous three
// months, skipping those without expenses (falling back to the current
// month's total when all three are empty). Category slices come back ordered
// by total, largest first.
func (s *Service) BuildDashboard(ctx context.Context, year int, month time.Month) (*Dashboard, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Year:          year,
		Month:         int(month),
		Total:         decimal.Zero,
		TotalPaid:     decimal.Zero,
		TotalPending:  decimal.Zero,
		TotalOverdue:  decimal.Zero,
		TotalFixed:    decimal.Zero,
		TotalVariable: decimal.Zero,
		Projection:    decimal.Zero,
	}

	byCategory := make(map[expense.Category]decimal.Decimal)
	for _, e := range all {
		if e.DueDate.Year() != year || e.DueDate.Month() != month {
			continue
		}

		d.Total = d.Total.Add(e.Amount)
		switch e.Status {
		case expense.StatusPaid:
			d.TotalPaid = d.TotalPaid.Add(e.Amount)
		case expense.StatusOverdue:
			d.TotalOverdue = d.TotalOverdue.Add(e.Amount)
		default:
			d.TotalPending = d.TotalPending.Add(e.Amount)
		}
		if e.Type == expense.TypeFixed {
			d.TotalFixed = d.TotalFixed.Add(e.Amount)
		} else {
			d.TotalVariable = d.TotalVariable.Add(e.Amount)
		}
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}

	for _, category := range expense.AllCategories() {
		total, ok := byCategory[category]
		if !ok || total.IsZero() {
			continue
		}
		percentage := decimal.Zero
		if d.Total.IsPositive() {
			percentage = total.Div(d.Total).Mul(decimal.NewFromInt(100)).Round(2)
		}
		d.Categories = append(d.Categories, CategorySlice{
			Category:   category,
			Total:      total,
			Percentage: percentage,
			Alert:      percentage.GreaterThan(categoryAlertThreshold),
		})
	}

	sort.Slice(d.Categories, func(i, j int) bool {
		return d.Categories[i].Total.GreaterThan(d.Categories[j].Total)
	})

	d.Projection = project(all, year, month, d.Total)
	return d, nil
}

// project averages the previous three months' expense totals, skipping
// months without expenses, and falls back to the current month's total when
// all three are empty.
func project(all []expense.Expense, year int, month time.Month, currentTotal decimal.Decimal) decimal.Decimal {
	monthTotal := func(y int, m time.Month) decimal.Decimal {
		total := decimal.Zero
		for _, e := range all {
			if e.DueDate.Year() == y && e.DueDate.Month() == m {
				total = total.Add(e.Amount)
			}
		}
		return total
	}

	cursor := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var samples []decimal.Decimal
	for i := 0; i < 3; i++ {
		cursor = cursor.AddDate(0, -1, 0)
		if total := monthTotal(cursor.Year(), cursor.Month()); total.IsPositive() {
			samples = append(samples, total)
		}
	}

	if len(samples) == 0 {
		return currentTotal
	}

	sum := decimal.Zero
	for _, t := range samples {
		sum = sum.Add(t)
	}
	return sum.Div(decimal.NewFromInt(int64(len(samples)))).Round(2)
}
