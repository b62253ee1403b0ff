package models

import (
	"strings"
	"time"

	"github.com/fincontrol/backend/internal/domain/banking"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankAccountModel is the persistence model for the BankAccount aggregate
type BankAccountModel struct {
	BaseModel
	Name            string          `gorm:"type:varchar(100);not null"`
	Bank            string          `gorm:"type:varchar(100);not null"`
	Branch          string          `gorm:"type:varchar(20)"`
	Number          string          `gorm:"type:varchar(30)"`
	OpeningBalance  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CurrentBalance  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	AcceptedMethods string          `gorm:"type:varchar(50)"`
	Active          bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (BankAccountModel) TableName() string {
	return "bank_accounts"
}

// ToDomain converts the persistence model to a domain BankAccount
func (m *BankAccountModel) ToDomain() *banking.BankAccount {
	var methods []banking.PaymentMethod
	if m.AcceptedMethods != "" {
		for _, s := range strings.Split(m.AcceptedMethods, ",") {
			methods = append(methods, banking.PaymentMethod(s))
		}
	}
	return &banking.BankAccount{
		BaseEntity:      m.BaseModel.ToDomain(),
		Name:            m.Name,
		Bank:            m.Bank,
		Branch:          m.Branch,
		Number:          m.Number,
		OpeningBalance:  m.OpeningBalance,
		CurrentBalance:  m.CurrentBalance,
		AcceptedMethods: methods,
		Active:          m.Active,
	}
}

// FromDomain populates the persistence model from a domain BankAccount
func (m *BankAccountModel) FromDomain(a *banking.BankAccount) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Name = a.Name
	m.Bank = a.Bank
	m.Branch = a.Branch
	m.Number = a.Number
	m.OpeningBalance = a.OpeningBalance
	m.CurrentBalance = a.CurrentBalance

	methods := make([]string, 0, len(a.AcceptedMethods))
	for _, method := range a.AcceptedMethods {
		methods = append(methods, method.String())
	}
	m.AcceptedMethods = strings.Join(methods, ",")
	m.Active = a.Active
}

// MovementModel is the persistence model for the immutable Movement record
type MovementModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Direction   string          `gorm:"type:varchar(5);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description string          `gorm:"type:varchar(255);not null"`
	BoletoID    *uuid.UUID      `gorm:"type:uuid;index"`
	SaleID      *uuid.UUID      `gorm:"type:uuid;index"`
	Date        time.Time       `gorm:"not null;index"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MovementModel) TableName() string {
	return "account_movements"
}

// ToDomain converts the persistence model to a domain Movement
func (m *MovementModel) ToDomain() *banking.Movement {
	return &banking.Movement{
		ID:          m.ID,
		AccountID:   m.AccountID,
		Direction:   banking.Direction(m.Direction),
		Amount:      m.Amount,
		Description: m.Description,
		BoletoID:    m.BoletoID,
		SaleID:      m.SaleID,
		Date:        m.Date,
	}
}

// FromDomain populates the persistence model from a domain Movement
func (m *MovementModel) FromDomain(mv *banking.Movement) {
	m.ID = mv.ID
	m.AccountID = mv.AccountID
	m.Direction = mv.Direction.String()
	m.Amount = mv.Amount
	m.Description = mv.Description
	m.BoletoID = mv.BoletoID
	m.SaleID = mv.SaleID
	m.Date = mv.Date
}
