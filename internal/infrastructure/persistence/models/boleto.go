package models

import (
	"time"

	"github.com/fincontrol/backend/internal/domain/boleto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BoletoModel is the persistence model for the Boleto aggregate
type BoletoModel struct {
	BaseModel
	Description   string          `gorm:"type:varchar(200);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DueDate       time.Time       `gorm:"not null;index"`
	Paid          bool            `gorm:"not null;default:false;index"`
	PaymentDate   *time.Time      `gorm:"index"`
	PaymentSource *string         `gorm:"type:varchar(20)"`
	AccountID     *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (BoletoModel) TableName() string {
	return "boletos"
}

// ToDomain converts the persistence model to a domain Boleto
func (m *BoletoModel) ToDomain() *boleto.Boleto {
	var source *boleto.PaymentSource
	if m.PaymentSource != nil {
		s := boleto.PaymentSource(*m.PaymentSource)
		source = &s
	}
	return &boleto.Boleto{
		BaseEntity:    m.BaseModel.ToDomain(),
		Description:   m.Description,
		Amount:        m.Amount,
		DueDate:       m.DueDate,
		Paid:          m.Paid,
		PaymentDate:   m.PaymentDate,
		PaymentSource: source,
		AccountID:     m.AccountID,
	}
}

// FromDomain populates the persistence model from a domain Boleto
func (m *BoletoModel) FromDomain(b *boleto.Boleto) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.Description = b.Description
	m.Amount = b.Amount
	m.DueDate = b.DueDate
	m.Paid = b.Paid
	m.PaymentDate = b.PaymentDate
	if b.PaymentSource != nil {
		s := b.PaymentSource.String()
		m.PaymentSource = &s
	} else {
		m.PaymentSource = nil
	}
	m.AccountID = b.AccountID
}
