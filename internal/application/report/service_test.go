package report

import (
	"context"
	"testing"
	"time"

	"github.com/fincontrol/backend/internal/domain/boleto"
	"github.com/fincontrol/backend/internal/domain/revenue"
	"github.com/fincontrol/backend/internal/domain/sale"
	"github.com/fincontrol/backend/internal/domain/shared"
	"github.com/fincontrol/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memSaleRepo struct {
	sales []sale.Sale
}

func (r *memSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*sale.Sale, error) {
	for i := range r.sales {
		if r.sales[i].ID == id {
			copied := r.sales[i]
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memSaleRepo) FindAll(_ context.Context) ([]sale.Sale, error) {
	return append([]sale.Sale(nil), r.sales...), nil
}

func (r *memSaleRepo) Save(_ context.Context, s *sale.Sale) error {
	r.sales = append(r.sales, *s)
	return nil
}

func (r *memSaleRepo) Delete(_ context.Context, id uuid.UUID) error { return nil }

type memBoletoRepo struct {
	boletos []boleto.Boleto
}

func (r *memBoletoRepo) FindByID(_ context.Context, id uuid.UUID) (*boleto.Boleto, error) {
	return nil, shared.ErrNotFound
}

func (r *memBoletoRepo) FindAll(_ context.Context) ([]boleto.Boleto, error) {
	return append([]boleto.Boleto(nil), r.boletos...), nil
}

func (r *memBoletoRepo) FindPending(_ context.Context) ([]boleto.Boleto, error) {
	var out []boleto.Boleto
	for _, b := range r.boletos {
		if !b.Paid {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBoletoRepo) FindPaid(_ context.Context) ([]boleto.Boleto, error) {
	var out []boleto.Boleto
	for _, b := range r.boletos {
		if b.Paid {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBoletoRepo) Save(_ context.Context, b *boleto.Boleto) error {
	r.boletos = append(r.boletos, *b)
	return nil
}

func (r *memBoletoRepo) Delete(_ context.Context, id uuid.UUID) error { return nil }

type memSupplementRepo struct {
	supplements []revenue.MonthlySupplement
}

func (r *memSupplementRepo) FindByID(_ context.Context, id uuid.UUID) (*revenue.MonthlySupplement, error) {
	return nil, shared.ErrNotFound
}

func (r *memSupplementRepo) FindByPeriod(_ context.Context, year, month int) (*revenue.MonthlySupplement, error) {
	for i := range r.supplements {
		if r.supplements[i].Year == year && r.supplements[i].Month == month {
			copied := r.supplements[i]
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memSupplementRepo) FindByYear(_ context.Context, year int) ([]revenue.MonthlySupplement, error) {
	var out []revenue.MonthlySupplement
	for _, s := range r.supplements {
		if s.Year == year {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSupplementRepo) Save(_ context.Context, s *revenue.MonthlySupplement) error {
	for i := range r.supplements {
		if r.supplements[i].ID == s.ID {
			r.supplements[i] = *s
			return nil
		}
	}
	r.supplements = append(r.supplements, *s)
	return nil
}

func (r *memSupplementRepo) Delete(_ context.Context, id uuid.UUID) error { return nil }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func newFixture() (*Service, *memSaleRepo, *memBoletoRepo, *memSupplementRepo) {
	saleRepo := &memSaleRepo{}
	boletoRepo := &memBoletoRepo{}
	supplementRepo := &memSupplementRepo{}
	svc := NewService(saleRepo, boletoRepo, supplementRepo, zap.NewNop())
	return svc, saleRepo, boletoRepo, supplementRepo
}

func addSale(t *testing.T, repo *memSaleRepo, amount float64, method sale.Method, date time.Time) {
	t.Helper()
	var accountID *uuid.UUID
	if method.RequiresAccount() {
		id := uuid.New()
		accountID = &id
	}
	s, err := sale.NewSale("Sale", valueobject.NewMoneyFromFloat(amount), method, accountID, date)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), s))
}

func addPaidBoleto(t *testing.T, repo *memBoletoRepo, amount float64, source boleto.PaymentSource, paymentDate time.Time) {
	t.Helper()
	b, err := boleto.NewBoleto("Bill", valueobject.NewMoneyFromFloat(amount), paymentDate.AddDate(0, 0, 5))
	require.NoError(t, err)

	var accountID *uuid.UUID
	if source == boleto.SourceBankAccount {
		id := uuid.New()
		accountID = &id
	}
	require.NoError(t, b.MarkPaid(source, accountID, paymentDate))
	require.NoError(t, repo.Save(context.Background(), b))
}

func TestCashOnHand(t *testing.T) {
	svc, saleRepo, boletoRepo, _ := newFixture()
	now := time.Now()

	addSale(t, saleRepo, 80, sale.MethodCash, now)
	addSale(t, saleRepo, 500, sale.MethodCredit, now)
	addPaidBoleto(t, boletoRepo, 50, boleto.SourceCash, now)
	addPaidBoleto(t, boletoRepo, 200, boleto.SourceBankAccount, now)

	cash, err := svc.CashOnHand(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "30.00", cash.String())
}

func TestBuildYearTableRevenueAndExpenses(t *testing.T) {
	svc, saleRepo, boletoRepo, _ := newFixture()

	june := time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)
	addSale(t, saleRepo, 100, sale.MethodCredit, june)
	addSale(t, saleRepo, 50, sale.MethodDebit, june)
	addSale(t, saleRepo, 80, sale.MethodCash, june)
	addSale(t, saleRepo, 70, sale.MethodPix, june)
	addPaidBoleto(t, boletoRepo, 40, boleto.SourceCash, june)

	table, err := svc.BuildYearTable(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, table.Months, 12)

	row := table.Months[5]
	assert.Equal(t, 6, row.Month)
	assert.Equal(t, "300", row.Revenue.String())
	assert.Equal(t, "150", row.CardRevenue.String(), "card revenue counts debit and credit only")
	assert.Equal(t, "40", row.Expenses.String())
	assert.Nil(t, table.GrowthYoY, "no revenue last year")
}

func TestBuildYearTableCostOfGoodsChaining(t *testing.T) {
	svc, _, _, supplementRepo := newFixture()
	ctx := context.Background()

	may, err := revenue.NewMonthlySupplement(2026, 5, revenue.SupplementValues{
		InventoryStart: decPtr(1000),
		Purchases:      decimal.NewFromInt(500),
		InventoryEnd:   decimal.NewFromInt(800),
	})
	require.NoError(t, err)
	require.NoError(t, supplementRepo.Save(ctx, may))

	// June gives no opening inventory, so May's closing value carries over.
	june, err := revenue.NewMonthlySupplement(2026, 6, revenue.SupplementValues{
		Purchases:    decimal.NewFromInt(300),
		InventoryEnd: decimal.NewFromInt(600),
	})
	require.NoError(t, err)
	require.NoError(t, supplementRepo.Save(ctx, june))

	table, err := svc.BuildYearTable(ctx, 2026)
	require.NoError(t, err)

	assert.Equal(t, "700", table.Months[4].CostOfGoods.String())
	assert.Equal(t, "500", table.Months[5].CostOfGoods.String(), "800 carried + 300 - 600")

	// July has no record at all: June's closing is consumed, then the chain
	// is empty again.
	assert.Equal(t, "600", table.Months[6].CostOfGoods.String())
	assert.Equal(t, "0", table.Months[7].CostOfGoods.String())
}

func TestBuildYearTableExplicitZeroOpening(t *testing.T) {
	svc, _, _, supplementRepo := newFixture()
	ctx := context.Background()

	may, err := revenue.NewMonthlySupplement(2026, 5, revenue.SupplementValues{
		InventoryEnd: decimal.NewFromInt(800),
	})
	require.NoError(t, err)
	require.NoError(t, supplementRepo.Save(ctx, may))

	// June stored a zero opening on purpose, so May's closing is ignored.
	june, err := revenue.NewMonthlySupplement(2026, 6, revenue.SupplementValues{
		InventoryStart: decPtr(0),
		Purchases:      decimal.NewFromInt(300),
		InventoryEnd:   decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.NoError(t, supplementRepo.Save(ctx, june))

	table, err := svc.BuildYearTable(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, "200", table.Months[5].CostOfGoods.String(), "0 + 300 - 100")
}

func TestBuildYearTableGrowth(t *testing.T) {
	svc, saleRepo, _, _ := newFixture()

	addSale(t, saleRepo, 1000, sale.MethodCash, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	addSale(t, saleRepo, 1500, sale.MethodCash, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))

	table, err := svc.BuildYearTable(context.Background(), 2026)
	require.NoError(t, err)
	require.NotNil(t, table.GrowthYoY)
	assert.Equal(t, "50", table.GrowthYoY.String())

	march := table.Months[2]
	require.NotNil(t, march.GrowthYoY, "march had revenue last year")
	assert.Equal(t, "50", march.GrowthYoY.String())
	assert.Nil(t, table.Months[3].GrowthYoY, "april had no revenue last year")
}

func TestBuildYearTableMonthlyAverage(t *testing.T) {
	svc, saleRepo, _, _ := newFixture()

	addSale(t, saleRepo, 100, sale.MethodCash, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	addSale(t, saleRepo, 300, sale.MethodCash, time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC))

	table, err := svc.BuildYearTable(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, "33.33", table.MonthlyAverage.String(), "yearly revenue spread over twelve months")
}

func TestBuildYearTableGrowthOverTotalIncome(t *testing.T) {
	svc, saleRepo, _, supplementRepo := newFixture()
	ctx := context.Background()

	addSale(t, saleRepo, 1000, sale.MethodCash, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	addSale(t, saleRepo, 1500, sale.MethodCash, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))

	// Last March also booked 500 in agreements, so both totals are 1500.
	sup, err := revenue.NewMonthlySupplement(2025, 3, revenue.SupplementValues{
		AgreementExpenses: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	require.NoError(t, supplementRepo.Save(ctx, sup))

	table, err := svc.BuildYearTable(ctx, 2026)
	require.NoError(t, err)

	march := table.Months[2]
	require.NotNil(t, march.GrowthYoY)
	assert.Equal(t, "0", march.GrowthYoY.String())
	require.NotNil(t, table.GrowthYoY)
	assert.Equal(t, "0", table.GrowthYoY.String())
}

func TestBuildYearTableTotalIncome(t *testing.T) {
	svc, saleRepo, _, supplementRepo := newFixture()
	ctx := context.Background()

	june := time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)
	addSale(t, saleRepo, 1000, sale.MethodCash, june)

	sup, err := revenue.NewMonthlySupplement(2026, 6, revenue.SupplementValues{
		AgreementExpenses: decimal.NewFromInt(150),
		GoodsAdjustment:   decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	require.NoError(t, supplementRepo.Save(ctx, sup))

	table, err := svc.BuildYearTable(ctx, 2026)
	require.NoError(t, err)

	assert.Equal(t, "1200", table.Months[5].TotalIncome.String())
	assert.Equal(t, "0", table.Months[4].TotalIncome.String(), "months without data stay zero")
}

func TestUpsertSupplementCreatesThenUpdates(t *testing.T) {
	svc, _, _, supplementRepo := newFixture()
	ctx := context.Background()

	created, err := svc.UpsertSupplement(ctx, UpsertSupplementRequest{
		Year: 2026, Month: 6,
		Purchases: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	updated, err := svc.UpsertSupplement(ctx, UpsertSupplementRequest{
		Year: 2026, Month: 6,
		Purchases: decimal.NewFromInt(250),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "same month updates in place")
	assert.Len(t, supplementRepo.supplements, 1)
	assert.Equal(t, "250", supplementRepo.supplements[0].Purchases.String())

	_, err = svc.UpsertSupplement(ctx, UpsertSupplementRequest{Year: 2026, Month: 13})
	assert.Error(t, err)
}

func TestNetProfit(t *testing.T) {
	svc, saleRepo, boletoRepo, supplementRepo := newFixture()
	ctx := context.Background()

	june := time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)
	addSale(t, saleRepo, 1000, sale.MethodCash, june)
	addPaidBoleto(t, boletoRepo, 200, boleto.SourceCash, june)

	sup, err := revenue.NewMonthlySupplement(2026, 6, revenue.SupplementValues{
		InventoryStart: decPtr(500),
		Purchases:      decimal.NewFromInt(300),
		InventoryEnd:   decimal.NewFromInt(400),
	})
	require.NoError(t, err)
	require.NoError(t, supplementRepo.Save(ctx, sup))

	table, err := svc.BuildYearTable(ctx, 2026)
	require.NoError(t, err)

	row := table.Months[5]
	assert.Equal(t, "400", row.CostOfGoods.String())
	assert.Equal(t, "600", row.GrossProfit.String())
	assert.Equal(t, "400", row.NetProfit.String())
	require.NotNil(t, row.Margin)
	assert.Equal(t, "40", row.Margin.String())
	assert.Nil(t, table.Months[0].Margin, "no revenue, no margin")
}
