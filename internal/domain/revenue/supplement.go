package revenue

import (
	"github.com/fincontrol/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MonthlySupplement carries the user-supplied figures that cannot be derived
// from sales or payables: inventory values, purchase totals and manual
// adjustments for one calendar month. At most one record exists per
// (year, month) pair. InventoryStart is nil when the user left it blank, in
// which case the previous month's closing inventory takes its place; an
// explicit zero is honored as supplied.
type MonthlySupplement struct {
	shared.BaseEntity
	Year              int              `json:"year"`
	Month             int              `json:"month"`
	InventoryStart    *decimal.Decimal `json:"inventory_start,omitempty"`
	InventoryEnd      decimal.Decimal  `json:"inventory_end"`
	Purchases         decimal.Decimal  `json:"purchases"`
	OffBookPurchases  decimal.Decimal  `json:"off_book_purchases"`
	AgreementExpenses decimal.Decimal  `json:"agreement_expenses"`
	GoodsAdjustment   decimal.Decimal  `json:"goods_adjustment"`
}

// SupplementValues are the editable figures of a monthly supplement
type SupplementValues struct {
	InventoryStart    *decimal.Decimal
	InventoryEnd      decimal.Decimal
	Purchases         decimal.Decimal
	OffBookPurchases  decimal.Decimal
	AgreementExpenses decimal.Decimal
	GoodsAdjustment   decimal.Decimal
}

// NewMonthlySupplement creates a supplement for a given year and month
func NewMonthlySupplement(year, month int, values SupplementValues) (*MonthlySupplement, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}

	return &MonthlySupplement{
		BaseEntity:        shared.NewBaseEntity(),
		Year:              year,
		Month:             month,
		InventoryStart:    values.InventoryStart,
		InventoryEnd:      values.InventoryEnd,
		Purchases:         values.Purchases,
		OffBookPurchases:  values.OffBookPurchases,
		AgreementExpenses: values.AgreementExpenses,
		GoodsAdjustment:   values.GoodsAdjustment,
	}, nil
}

// SetValues replaces the supplement's editable figures
func (s *MonthlySupplement) SetValues(values SupplementValues) {
	s.InventoryStart = values.InventoryStart
	s.InventoryEnd = values.InventoryEnd
	s.Purchases = values.Purchases
	s.OffBookPurchases = values.OffBookPurchases
	s.AgreementExpenses = values.AgreementExpenses
	s.GoodsAdjustment = values.GoodsAdjustment
	s.Touch()
}

// OpeningInventory returns the user-supplied opening inventory, or the
// carried value when none was supplied.
func (s *MonthlySupplement) OpeningInventory(carried decimal.Decimal) decimal.Decimal {
	if s.InventoryStart != nil {
		return *s.InventoryStart
	}
	return carried
}

// CostOfGoods computes opening inventory + purchases + off-book purchases
// minus closing inventory. The carried value stands in for a blank opening
// inventory.
func (s *MonthlySupplement) CostOfGoods(carried decimal.Decimal) decimal.Decimal {
	return s.OpeningInventory(carried).Add(s.Purchases).Add(s.OffBookPurchases).Sub(s.InventoryEnd)
}

func validatePeriod(year, month int) error {
	if year < 2000 || year > 2200 {
		return shared.NewValidationError("Year is out of range")
	}
	if month < 1 || month > 12 {
		return shared.NewValidationError("Month must be between 1 and 12")
	}
	return nil
}
