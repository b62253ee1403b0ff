package models

import (
	"time"

	"github.com/fincontrol/backend/internal/domain/expense"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseModel is the persistence model for the Expense aggregate
type ExpenseModel struct {
	BaseModel
	Description        string          `gorm:"type:varchar(200);not null"`
	Category           string          `gorm:"type:varchar(30);not null;index"`
	Type               string          `gorm:"type:varchar(10);not null;index"`
	Amount             decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DueDate            time.Time       `gorm:"not null;index"`
	PaymentDate        *time.Time
	Status             string     `gorm:"type:varchar(10);not null;index"`
	PaymentMethod      string     `gorm:"type:varchar(15);not null"`
	Supplier           string     `gorm:"type:varchar(100)"`
	CostCenter         string     `gorm:"type:varchar(100)"`
	Notes              string     `gorm:"type:text"`
	Recurring          bool       `gorm:"not null;default:false;index"`
	Periodicity        *string    `gorm:"type:varchar(10)"`
	RecurrenceOriginID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense
func (m *ExpenseModel) ToDomain() *expense.Expense {
	var periodicity *expense.Periodicity
	if m.Periodicity != nil {
		p := expense.Periodicity(*m.Periodicity)
		periodicity = &p
	}
	return &expense.Expense{
		BaseEntity:         m.BaseModel.ToDomain(),
		Description:        m.Description,
		Category:           expense.Category(m.Category),
		Type:               expense.Type(m.Type),
		Amount:             m.Amount,
		DueDate:            m.DueDate,
		PaymentDate:        m.PaymentDate,
		Status:             expense.Status(m.Status),
		PaymentMethod:      expense.PaymentMethod(m.PaymentMethod),
		Supplier:           m.Supplier,
		CostCenter:         m.CostCenter,
		Notes:              m.Notes,
		Recurring:          m.Recurring,
		Periodicity:        periodicity,
		RecurrenceOriginID: m.RecurrenceOriginID,
	}
}

// FromDomain populates the persistence model from a domain Expense
func (m *ExpenseModel) FromDomain(e *expense.Expense) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Description = e.Description
	m.Category = e.Category.String()
	m.Type = e.Type.String()
	m.Amount = e.Amount
	m.DueDate = e.DueDate
	m.PaymentDate = e.PaymentDate
	m.Status = e.Status.String()
	m.PaymentMethod = e.PaymentMethod.String()
	m.Supplier = e.Supplier
	m.CostCenter = e.CostCenter
	m.Notes = e.Notes
	m.Recurring = e.Recurring
	if e.Periodicity != nil {
		p := e.Periodicity.String()
		m.Periodicity = &p
	} else {
		m.Periodicity = nil
	}
	m.RecurrenceOriginID = e.RecurrenceOriginID
}
