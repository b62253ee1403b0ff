package boleto

import (
	"time"

	"github.com/fincontrol/backend/internal/domain/shared"
	"github.com/fincontrol/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentSource indicates where the money for a settlement came from
type PaymentSource string

const (
	SourceCash        PaymentSource = "cash"
	SourceBankAccount PaymentSource = "bank_account"
)

// IsValid checks if the source is a valid PaymentSource
func (s PaymentSource) IsValid() bool {
	return s == SourceCash || s == SourceBankAccount
}

// String returns the string representation of PaymentSource
func (s PaymentSource) String() string {
	return string(s)
}

// Boleto represents a billed obligation to pay a fixed amount by a due date.
// State machine: pending -> paid via Settle, paid -> pending via
// ReverseSettlement. The amount is locked once paid.
type Boleto struct {
	shared.BaseEntity
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"due_date"`
	Paid          bool            `json:"paid"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
	PaymentSource *PaymentSource  `json:"payment_source,omitempty"`
	AccountID     *uuid.UUID      `json:"account_id,omitempty"`
}

// NewBoleto creates a pending boleto
func NewBoleto(description string, amount valueobject.Money, dueDate time.Time) (*Boleto, error) {
	if description == "" {
		return nil, shared.NewValidationError("Boleto description cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Boleto amount must be positive")
	}
	if dueDate.IsZero() {
		return nil, shared.NewValidationError("Boleto due date is required")
	}

	return &Boleto{
		BaseEntity:  shared.NewBaseEntity(),
		Description: description,
		Amount:      amount.Amount(),
		DueDate:     dueDate,
		Paid:        false,
	}, nil
}

// Update edits the boleto's description, amount and due date. Changing the
// amount of a paid boleto is rejected: the settlement already moved money and
// the two records would disagree.
func (b *Boleto) Update(description string, amount valueobject.Money, dueDate time.Time) error {
	if description == "" {
		return shared.NewValidationError("Boleto description cannot be empty")
	}
	if !amount.IsPositive() {
		return shared.NewValidationError("Boleto amount must be positive")
	}
	if dueDate.IsZero() {
		return shared.NewValidationError("Boleto due date is required")
	}
	if b.Paid && !amount.Amount().Equal(b.Amount) {
		return shared.NewValidationError("Cannot change the amount of a paid boleto; reverse the settlement first")
	}

	b.Description = description
	b.Amount = amount.Amount()
	b.DueDate = dueDate
	b.Touch()
	return nil
}

// MarkPaid records the settlement outcome on the boleto. Balance effects are
// the ledger's job; callers must have applied them before persisting.
func (b *Boleto) MarkPaid(source PaymentSource, accountID *uuid.UUID, paymentDate time.Time) error {
	if b.Paid {
		return shared.NewDomainError("INVALID_STATE", "Boleto is already paid")
	}
	if !source.IsValid() {
		return shared.NewValidationError("Payment source is not valid")
	}
	if source == SourceBankAccount && accountID == nil {
		return shared.NewValidationError("A bank account is required when paying from a bank account")
	}
	if source == SourceCash && accountID != nil {
		return shared.NewValidationError("A bank account must not be set when paying from cash")
	}

	b.Paid = true
	b.PaymentDate = &paymentDate
	b.PaymentSource = &source
	b.AccountID = accountID
	b.Touch()
	return nil
}

// MarkPending clears the settlement fields, returning the boleto to pending
func (b *Boleto) MarkPending() error {
	if !b.Paid {
		return shared.NewDomainError("INVALID_STATE", "Boleto is not paid")
	}

	b.Paid = false
	b.PaymentDate = nil
	b.PaymentSource = nil
	b.AccountID = nil
	b.Touch()
	return nil
}

// PaidFromBankAccount returns true if the boleto was settled against a bank
// account
func (b *Boleto) PaidFromBankAccount() bool {
	return b.Paid && b.PaymentSource != nil && *b.PaymentSource == SourceBankAccount
}

// PaidFromCash returns true if the boleto was settled from cash
func (b *Boleto) PaidFromCash() bool {
	return b.Paid && b.PaymentSource != nil && *b.PaymentSource == SourceCash
}

// AmountMoney returns the amount as a Money value object
func (b *Boleto) AmountMoney() valueobject.Money {
	return valueobject.NewMoney(b.Amount)
}
