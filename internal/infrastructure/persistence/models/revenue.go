package models

import (
	"github.com/fincontrol/backend/internal/domain/revenue"
	"github.com/shopspring/decimal"
)

// MonthlySupplementModel is the persistence model for the monthly revenue
// supplement. The (year, month) pair is unique.
type MonthlySupplementModel struct {
	BaseModel
	Year              int              `gorm:"not null;uniqueIndex:idx_supplement_period,priority:1"`
	Month             int              `gorm:"not null;uniqueIndex:idx_supplement_period,priority:2"`
	InventoryStart    *decimal.Decimal `gorm:"type:decimal(18,2)"`
	InventoryEnd      decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	Purchases         decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	OffBookPurchases  decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	AgreementExpenses decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	GoodsAdjustment   decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (MonthlySupplementModel) TableName() string {
	return "monthly_revenue_supplements"
}

// ToDomain converts the persistence model to a domain MonthlySupplement
func (m *MonthlySupplementModel) ToDomain() *revenue.MonthlySupplement {
	return &revenue.MonthlySupplement{
		BaseEntity:        m.BaseModel.ToDomain(),
		Year:              m.Year,
		Month:             m.Month,
		InventoryStart:    m.InventoryStart,
		InventoryEnd:      m.InventoryEnd,
		Purchases:         m.Purchases,
		OffBookPurchases:  m.OffBookPurchases,
		AgreementExpenses: m.AgreementExpenses,
		GoodsAdjustment:   m.GoodsAdjustment,
	}
}

// FromDomain populates the persistence model from a domain MonthlySupplement
func (m *MonthlySupplementModel) FromDomain(s *revenue.MonthlySupplement) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Year = s.Year
	m.Month = s.Month
	m.InventoryStart = s.InventoryStart
	m.InventoryEnd = s.InventoryEnd
	m.Purchases = s.Purchases
	m.OffBookPurchases = s.OffBookPurchases
	m.AgreementExpenses = s.AgreementExpenses
	m.GoodsAdjustment = s.GoodsAdjustment
}
