package models

import (
	"time"

	"github.com/fincontrol/backend/internal/domain/sale"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale aggregate
type SaleModel struct {
	BaseModel
	Description string          `gorm:"type:varchar(200);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Method      string          `gorm:"type:varchar(10);not null;index"`
	AccountID   *uuid.UUID      `gorm:"type:uuid;index"`
	Date        time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale
func (m *SaleModel) ToDomain() *sale.Sale {
	return &sale.Sale{
		BaseEntity:  m.BaseModel.ToDomain(),
		Description: m.Description,
		Amount:      m.Amount,
		Method:      sale.Method(m.Method),
		AccountID:   m.AccountID,
		Date:        m.Date,
	}
}

// FromDomain populates the persistence model from a domain Sale
func (m *SaleModel) FromDomain(s *sale.Sale) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Description = s.Description
	m.Amount = s.Amount
	m.Method = s.Method.String()
	m.AccountID = s.AccountID
	m.Date = s.Date
}
