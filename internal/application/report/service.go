package report

import (
	"context"
	"errors"

	"github.com/fincontrol/backend/internal/domain/boleto"
	"github.com/fincontrol/backend/internal/domain/revenue"
	"github.com/fincontrol/backend/internal/domain/sale"
	"github.com/fincontrol/backend/internal/domain/shared"
	"github.com/fincontrol/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MonthRow is one row of the yearly revenue table. Margin and growth are nil
// when their denominators are zero.
type MonthRow struct {
	Month       int              `json:"month"`
	Revenue     decimal.Decimal  `json:"revenue"`
	CardRevenue decimal.Decimal  `json:"card_revenue"`
	TotalIncome decimal.Decimal  `json:"total_income"`
	Expenses    decimal.Decimal  `json:"expenses"`
	CostOfGoods decimal.Decimal  `json:"cost_of_goods"`
	GrossProfit decimal.Decimal  `json:"gross_profit"`
	NetProfit   decimal.Decimal  `json:"net_profit"`
	Margin      *decimal.Decimal `json:"margin,omitempty"`
	GrowthYoY   *decimal.Decimal `json:"growth_yoy,omitempty"`
}

// YearTable is the derived revenue and cost table for one year. Year-over-
// year growth compares total income against the previous year and is nil
// when the previous year had none; the monthly average divides the yearly
// revenue by twelve.
type YearTable struct {
	Year           int              `json:"year"`
	Months         []MonthRow       `json:"months"`
	TotalRevenue   decimal.Decimal  `json:"total_revenue"`
	MonthlyAverage decimal.Decimal  `json:"monthly_average"`
	GrowthYoY      *decimal.Decimal `json:"growth_yoy,omitempty"`
}

// Service derives every report from the other components' data. It is
// read-only except for the monthly supplements it stores on behalf of the
// user.
type Service struct {
	saleRepo       sale.Repository
	boletoRepo     boleto.Repository
	supplementRepo revenue.Repository
	logger         *zap.Logger
}

// NewService creates a new report Service
func NewService(
	saleRepo sale.Repository,
	boletoRepo boleto.Repository,
	supplementRepo revenue.Repository,
	logger *zap.Logger,
) *Service {
	return &Service{
		saleRepo:       saleRepo,
		boletoRepo:     boletoRepo,
		supplementRepo: supplementRepo,
		logger:         logger,
	}
}

// CashOnHand derives the untracked cash balance: cash sales in, cash-settled
// boletos out. It is never stored.
func (s *Service) CashOnHand(ctx context.Context) (valueobject.Money, error) {
	sales, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		return valueobject.Zero(), err
	}
	boletos, err := s.boletoRepo.FindPaid(ctx)
	if err != nil {
		return valueobject.Zero(), err
	}

	total := decimal.Zero
	for _, sl := range sales {
		if sl.Method == sale.MethodCash {
			total = total.Add(sl.Amount)
		}
	}
	for _, b := range boletos {
		if b.PaidFromCash() {
			total = total.Sub(b.Amount)
		}
	}
	return valueobject.NewMoney(total), nil
}

// BuildYearTable derives the monthly revenue table for a year. Closing
// inventory of month N feeds opening inventory of month N+1 whenever the
// user did not supply one, including months with no supplement record at
// all; before any data exists the chain starts at zero.
func (s *Service) BuildYearTable(ctx context.Context, year int) (*YearTable, error) {
	sales, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	boletos, err := s.boletoRepo.FindPaid(ctx)
	if err != nil {
		return nil, err
	}
	supplements, err := s.supplementRepo.FindByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	previousSupplements, err := s.supplementRepo.FindByYear(ctx, year-1)
	if err != nil {
		return nil, err
	}

	byMonth := supplementsByMonth(supplements)
	previousByMonth := supplementsByMonth(previousSupplements)

	monthRevenue := func(y, m int) decimal.Decimal {
		total := decimal.Zero
		for _, sl := range sales {
			if sl.Date.Year() == y && int(sl.Date.Month()) == m {
				total = total.Add(sl.Amount)
			}
		}
		return total
	}

	// monthTotal mirrors TotalIncome for any year, so growth compares like
	// against like.
	monthTotal := func(y, m int, sups map[int]*revenue.MonthlySupplement) decimal.Decimal {
		total := monthRevenue(y, m)
		if sup, ok := sups[m]; ok {
			total = total.Add(sup.AgreementExpenses).Add(sup.GoodsAdjustment)
		}
		return total
	}

	table := &YearTable{Year: year, TotalRevenue: decimal.Zero, MonthlyAverage: decimal.Zero}
	carriedInventory := decimal.Zero
	totalIncome := decimal.Zero
	previousTotalIncome := decimal.Zero

	for month := 1; month <= 12; month++ {
		row := MonthRow{
			Month:       month,
			Revenue:     decimal.Zero,
			CardRevenue: decimal.Zero,
			Expenses:    decimal.Zero,
		}

		for _, sl := range sales {
			if sl.Date.Year() != year || int(sl.Date.Month()) != month {
				continue
			}
			row.Revenue = row.Revenue.Add(sl.Amount)
			if sl.Method.IsCard() {
				row.CardRevenue = row.CardRevenue.Add(sl.Amount)
			}
		}

		for _, b := range boletos {
			if b.PaymentDate == nil {
				continue
			}
			if b.PaymentDate.Year() == year && int(b.PaymentDate.Month()) == month {
				row.Expenses = row.Expenses.Add(b.Amount)
			}
		}

		row.TotalIncome = row.Revenue
		if sup, ok := byMonth[month]; ok {
			row.CostOfGoods = sup.CostOfGoods(carriedInventory)
			row.TotalIncome = row.TotalIncome.Add(sup.AgreementExpenses).Add(sup.GoodsAdjustment)
			carriedInventory = sup.InventoryEnd
		} else {
			// No record: the carried inventory is consumed with nothing
			// purchased and nothing left at closing.
			row.CostOfGoods = carriedInventory
			carriedInventory = decimal.Zero
		}

		row.GrossProfit = row.Revenue.Sub(row.CostOfGoods)
		row.NetProfit = row.GrossProfit.Sub(row.Expenses)

		if row.Revenue.IsPositive() {
			margin := row.NetProfit.Div(row.Revenue).Mul(decimal.NewFromInt(100)).Round(2)
			row.Margin = &margin
		}

		previous := monthTotal(year-1, month, previousByMonth)
		if previous.IsPositive() {
			growth := row.TotalIncome.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2)
			row.GrowthYoY = &growth
		}

		table.TotalRevenue = table.TotalRevenue.Add(row.Revenue)
		totalIncome = totalIncome.Add(row.TotalIncome)
		previousTotalIncome = previousTotalIncome.Add(previous)
		table.Months = append(table.Months, row)
	}

	table.MonthlyAverage = table.TotalRevenue.Div(decimal.NewFromInt(12)).Round(2)

	if previousTotalIncome.IsPositive() {
		growth := totalIncome.Sub(previousTotalIncome).Div(previousTotalIncome).Mul(decimal.NewFromInt(100)).Round(2)
		table.GrowthYoY = &growth
	}

	return table, nil
}

func supplementsByMonth(list []revenue.MonthlySupplement) map[int]*revenue.MonthlySupplement {
	byMonth := make(map[int]*revenue.MonthlySupplement, len(list))
	for i := range list {
		byMonth[list[i].Month] = &list[i]
	}
	return byMonth
}

// UpsertSupplementRequest carries the user-supplied figures for one month.
// A null or omitted opening inventory means "carry the previous month's
// closing value"; an explicit zero is stored as zero.
type UpsertSupplementRequest struct {
	Year              int              `json:"year" binding:"required"`
	Month             int              `json:"month" binding:"required"`
	InventoryStart    *decimal.Decimal `json:"inventory_start"`
	InventoryEnd      decimal.Decimal  `json:"inventory_end"`
	Purchases         decimal.Decimal  `json:"purchases"`
	OffBookPurchases  decimal.Decimal  `json:"off_book_purchases"`
	AgreementExpenses decimal.Decimal  `json:"agreement_expenses"`
	GoodsAdjustment   decimal.Decimal  `json:"goods_adjustment"`
}

// UpsertSupplement creates or replaces the supplement for one (year, month)
func (s *Service) UpsertSupplement(ctx context.Context, req UpsertSupplementRequest) (*revenue.MonthlySupplement, error) {
	values := revenue.SupplementValues{
		InventoryStart:    req.InventoryStart,
		InventoryEnd:      req.InventoryEnd,
		Purchases:         req.Purchases,
		OffBookPurchases:  req.OffBookPurchases,
		AgreementExpenses: req.AgreementExpenses,
		GoodsAdjustment:   req.GoodsAdjustment,
	}

	existing, err := s.supplementRepo.FindByPeriod(ctx, req.Year, req.Month)
	switch {
	case err == nil:
		existing.SetValues(values)
		if err := s.supplementRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case errors.Is(err, shared.ErrNotFound):
		sup, err := revenue.NewMonthlySupplement(req.Year, req.Month, values)
		if err != nil {
			return nil, err
		}
		if err := s.supplementRepo.Save(ctx, sup); err != nil {
			return nil, err
		}
		s.logger.Info("monthly supplement created",
			zap.Int("year", req.Year),
			zap.Int("month", req.Month),
		)
		return sup, nil
	default:
		return nil, err
	}
}

// ListSupplements returns one year's supplements ordered by month
func (s *Service) ListSupplements(ctx context.Context, year int) ([]revenue.MonthlySupplement, error) {
	return s.supplementRepo.FindByYear(ctx, year)
}
