package expense

import (
	"context"
	"testing"
	"time"

	"github.com/fincontrol/backend/internal/domain/expense"
	"github.com/fincontrol/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memExpenseRepo struct {
	expenses map[uuid.UUID]*expense.Expense
}

func newMemExpenseRepo() *memExpenseRepo {
	return &memExpenseRepo{expenses: make(map[uuid.UUID]*expense.Expense)}
}

func (r *memExpenseRepo) FindByID(_ context.Context, id uuid.UUID) (*expense.Expense, error) {
	e, ok := r.expenses[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *memExpenseRepo) FindAll(_ context.Context) ([]expense.Expense, error) {
	var out []expense.Expense
	for _, e := range r.expenses {
		out = append(out, *e)
	}
	return out, nil
}

func (r *memExpenseRepo) Save(_ context.Context, e *expense.Expense) error {
	copied := *e
	r.expenses[e.ID] = &copied
	return nil
}

func (r *memExpenseRepo) SaveAll(_ context.Context, list []expense.Expense) error {
	for i := range list {
		copied := list[i]
		r.expenses[copied.ID] = &copied
	}
	return nil
}

func (r *memExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.expenses, id)
	return nil
}

func (r *memExpenseRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.expenses)), nil
}

func newTestService(repo *memExpenseRepo, seed bool, now time.Time) *Service {
	svc := NewService(repo, seed, zap.NewNop())
	svc.nowFunc = func() time.Time { return now }
	return svc
}

func fixedDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createReq(description string, category string, amount float64, due time.Time) CreateRequest {
	return CreateRequest{
		Description:   description,
		Category:      category,
		Type:          "variable",
		Amount:        decimal.NewFromFloat(amount),
		DueDate:       due,
		PaymentMethod: "boleto",
	}
}

func TestListGeneratesRecurrences(t *testing.T) {
	repo := newMemExpenseRepo()
	now := fixedDate(2026, time.June, 15)
	svc := newTestService(repo, false, now)
	ctx := context.Background()

	monthly := "monthly"
	req := createReq("Aluguel", "rent", 1200, fixedDate(2026, time.April, 5))
	req.Type = "fixed"
	req.Recurring = true
	req.Periodicity = &monthly
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3, "April origin plus May and June instances")

	// Running the rules again adds nothing.
	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestListRecomputesStatus(t *testing.T) {
	repo := newMemExpenseRepo()
	now := fixedDate(2026, time.June, 15)
	svc := newTestService(repo, false, now)
	ctx := context.Background()

	_, err := svc.Create(ctx, createReq("Vencida", "other", 100, fixedDate(2026, time.June, 1)))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createReq("Futura", "other", 100, fixedDate(2026, time.June, 20)))
	require.NoError(t, err)

	paid := createReq("Paga", "other", 100, fixedDate(2026, time.June, 1))
	paymentDate := fixedDate(2026, time.June, 2)
	paid.PaymentDate = &paymentDate
	_, err = svc.Create(ctx, paid)
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)

	statuses := make(map[string]expense.Status)
	for _, e := range list {
		statuses[e.Description] = e.Status
	}
	assert.Equal(t, expense.StatusOverdue, statuses["Vencida"])
	assert.Equal(t, expense.StatusPending, statuses["Futura"])
	assert.Equal(t, expense.StatusPaid, statuses["Paga"])
}

func TestSeedRunsOnceOnEmptyStore(t *testing.T) {
	repo := newMemExpenseRepo()
	now := fixedDate(2026, time.June, 15)
	svc := newTestService(repo, true, now)
	ctx := context.Background()

	first, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, second, len(first))
}

func TestSeedDisabled(t *testing.T) {
	repo := newMemExpenseRepo()
	svc := newTestService(repo, false, fixedDate(2026, time.June, 15))

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBuildDashboardCategoryAlert(t *testing.T) {
	repo := newMemExpenseRepo()
	now := fixedDate(2026, time.June, 15)
	svc := newTestService(repo, false, now)
	ctx := context.Background()

	// Rent is 40% of the month (alert), payroll exactly 30% (no alert).
	_, err := svc.Create(ctx, createReq("Aluguel", "rent", 1200, fixedDate(2026, time.June, 5)))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createReq("Folha", "payroll", 900, fixedDate(2026, time.June, 5)))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createReq("Outros", "other", 900, fixedDate(2026, time.June, 5)))
	require.NoError(t, err)

	d, err := svc.BuildDashboard(ctx, 2026, time.June)
	require.NoError(t, err)
	assert.Equal(t, "3000", d.Total.String())

	alerts := make(map[expense.Category]bool)
	for _, c := range d.Categories {
		alerts[c.Category] = c.Alert
	}
	assert.True(t, alerts[expense.CategoryRent])
	assert.False(t, alerts[expense.CategoryPayroll])
	assert.False(t, alerts[expense.CategoryOther])
}

func TestBuildDashboardTotalsByStatusAndType(t *testing.T) {
	repo := newMemExpenseRepo()
	now := fixedDate(2026, time.June, 15)
	svc := newTestService(repo, false, now)
	ctx := context.Background()

	fixed := createReq("Aluguel", "rent", 1000, fixedDate(2026, time.June, 1))
	fixed.Type = "fixed"
	_, err := svc.Create(ctx, fixed)
	require.NoError(t, err)

	_, err = svc.Create(ctx, createReq("Frete", "transport", 500, fixedDate(2026, time.June, 20)))
	require.NoError(t, err)

	d, err := svc.BuildDashboard(ctx, 2026, time.June)
	require.NoError(t, err)
	assert.Equal(t, "1000", d.TotalOverdue.String())
	assert.Equal(t, "500", d.TotalPending.String())
	assert.Equal(t, "1000", d.TotalFixed.String())
	assert.Equal(t, "500", d.TotalVariable.String())
}

func TestProjectionTrailingAverage(t *testing.T) {
	repo := newMemExpenseRepo()
	now := fixedDate(2026, time.June, 15)
	svc := newTestService(repo, false, now)
	ctx := context.Background()

	_, err := svc.Create(ctx, createReq("Março", "other", 300, fixedDate(2026, time.March, 10)))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createReq("Abril", "other", 400, fixedDate(2026, time.April, 10)))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createReq("Maio", "other", 500, fixedDate(2026, time.May, 10)))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createReq("Junho", "other", 999, fixedDate(2026, time.June, 10)))
	require.NoError(t, err)

	d, err := svc.BuildDashboard(ctx, 2026, time.June)
	require.NoError(t, err)
	assert.Equal(t, "400", d.Projection.String())
}

func TestProjectionIgnoresMonthsBeyondWindow(t *testing.T) {
	repo := newMemExpenseRepo()
	now := fixedDate(2026, time.June, 15)
	svc := newTestService(repo, false, now)
	ctx := context.Background()

	// February is four months back and outside the three month window, so
	// only May feeds the projection.
	_, err := svc.Create(ctx, createReq("Fevereiro", "other", 900, fixedDate(2026, time.February, 10)))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createReq("Maio", "other", 300, fixedDate(2026, time.May, 10)))
	require.NoError(t, err)

	d, err := svc.BuildDashboard(ctx, 2026, time.June)
	require.NoError(t, err)
	assert.Equal(t, "300", d.Projection.String())
}

func TestBuildDashboardCategoriesSortedByTotal(t *testing.T) {
	repo := newMemExpenseRepo()
	now := fixedDate(2026, time.June, 15)
	svc := newTestService(repo, false, now)
	ctx := context.Background()

	_, err := svc.Create(ctx, createReq("Outros", "other", 100, fixedDate(2026, time.June, 5)))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createReq("Aluguel", "rent", 500, fixedDate(2026, time.June, 5)))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createReq("Frete", "transport", 300, fixedDate(2026, time.June, 5)))
	require.NoError(t, err)

	d, err := svc.BuildDashboard(ctx, 2026, time.June)
	require.NoError(t, err)
	require.Len(t, d.Categories, 3)
	assert.Equal(t, expense.CategoryRent, d.Categories[0].Category)
	assert.Equal(t, expense.CategoryTransport, d.Categories[1].Category)
	assert.Equal(t, expense.CategoryOther, d.Categories[2].Category)
}

func TestProjectionFallsBackToCurrentMonth(t *testing.T) {
	repo := newMemExpenseRepo()
	now := fixedDate(2026, time.June, 15)
	svc := newTestService(repo, false, now)
	ctx := context.Background()

	_, err := svc.Create(ctx, createReq("Junho", "other", 700, fixedDate(2026, time.June, 10)))
	require.NoError(t, err)

	d, err := svc.BuildDashboard(ctx, 2026, time.June)
	require.NoError(t, err)
	assert.Equal(t, "700", d.Projection.String())
}
