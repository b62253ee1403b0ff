package expense

import (
	"testing"
	"time"

	"github.com/fincontrol/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validParams() NewExpenseParams {
	return NewExpenseParams{
		Description:   "Internet",
		Category:      CategoryInternet,
		Type:          TypeFixed,
		Amount:        valueobject.NewMoneyFromFloat(120),
		DueDate:       time.Now().AddDate(0, 0, 10),
		PaymentMethod: PayBoleto,
		Supplier:      "ISP Ltda",
	}
}

func TestNewExpense(t *testing.T) {
	e, err := NewExpense(validParams())
	require.NoError(t, err)

	assert.Equal(t, StatusPending, e.Status)
	assert.Nil(t, e.RecurrenceOriginID)
	assert.Equal(t, e.ID, e.SeriesID())
}

func TestNewExpenseValidation(t *testing.T) {
	monthly := PeriodMonthly

	tests := []struct {
		name   string
		mutate func(*NewExpenseParams)
	}{
		{name: "empty description", mutate: func(p *NewExpenseParams) { p.Description = "" }},
		{name: "unknown category", mutate: func(p *NewExpenseParams) { p.Category = Category("leisure") }},
		{name: "unknown type", mutate: func(p *NewExpenseParams) { p.Type = Type("mixed") }},
		{name: "zero amount", mutate: func(p *NewExpenseParams) { p.Amount = valueobject.Zero() }},
		{name: "zero due date", mutate: func(p *NewExpenseParams) { p.DueDate = time.Time{} }},
		{name: "unknown payment method", mutate: func(p *NewExpenseParams) { p.PaymentMethod = PaymentMethod("barter") }},
		{name: "recurring without periodicity", mutate: func(p *NewExpenseParams) { p.Recurring = true }},
		{name: "periodicity without recurring", mutate: func(p *NewExpenseParams) { p.Periodicity = &monthly }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			_, err := NewExpense(p)
			assert.Error(t, err)
		})
	}
}

func TestNewRecurringExpenseIsItsOwnOrigin(t *testing.T) {
	monthly := PeriodMonthly
	p := validParams()
	p.Recurring = true
	p.Periodicity = &monthly

	e, err := NewExpense(p)
	require.NoError(t, err)
	require.NotNil(t, e.RecurrenceOriginID)
	assert.Equal(t, e.ID, *e.RecurrenceOriginID)
}

func TestRecomputeStatus(t *testing.T) {
	today := date(2026, time.June, 15)
	paymentDate := date(2026, time.July, 1)

	tests := []struct {
		name        string
		dueDate     time.Time
		paymentDate *time.Time
		want        Status
	}{
		{name: "future due date", dueDate: date(2026, time.June, 20), want: StatusPending},
		{name: "due today", dueDate: date(2026, time.June, 15), want: StatusPending},
		{name: "past due date", dueDate: date(2026, time.June, 1), want: StatusOverdue},
		{name: "paid overrides overdue", dueDate: date(2026, time.June, 1), paymentDate: &paymentDate, want: StatusPaid},
		{name: "future payment date still paid", dueDate: date(2026, time.June, 20), paymentDate: &paymentDate, want: StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Expense{DueDate: tt.dueDate, PaymentDate: tt.paymentDate}
			e.RecomputeStatus(today)
			assert.Equal(t, tt.want, e.Status)
		})
	}
}

func TestUpdateTogglesRecurrence(t *testing.T) {
	monthly := PeriodMonthly

	e, err := NewExpense(validParams())
	require.NoError(t, err)

	p := validParams()
	p.Recurring = true
	p.Periodicity = &monthly
	require.NoError(t, e.Update(p))
	require.NotNil(t, e.RecurrenceOriginID)
	assert.Equal(t, e.ID, *e.RecurrenceOriginID)

	p = validParams()
	require.NoError(t, e.Update(p))
	assert.Nil(t, e.RecurrenceOriginID)
}
