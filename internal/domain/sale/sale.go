package sale

import (
	"time"

	"github.com/fincontrol/backend/internal/domain/shared"
	"github.com/fincontrol/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Method represents the payment method of a sale
type Method string

const (
	MethodPix    Method = "pix"
	MethodCash   Method = "cash"
	MethodDebit  Method = "debit"
	MethodCredit Method = "credit"
)

// IsValid checks if the method is a valid sale Method
func (m Method) IsValid() bool {
	switch m {
	case MethodPix, MethodCash, MethodDebit, MethodCredit:
		return true
	}
	return false
}

// String returns the string representation of Method
func (m Method) String() string {
	return string(m)
}

// RequiresAccount returns true for methods that credit a bank account
func (m Method) RequiresAccount() bool {
	return m == MethodPix || m == MethodDebit || m == MethodCredit
}

// IsCard returns true for card methods (debit and credit)
func (m Method) IsCard() bool {
	return m == MethodDebit || m == MethodCredit
}

// Sale represents a recorded sale. Pix, debit and credit sales credit a bank
// account; cash sales feed the cash-on-hand balance instead.
type Sale struct {
	shared.BaseEntity
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Method      Method          `json:"method"`
	AccountID   *uuid.UUID      `json:"account_id,omitempty"`
	Date        time.Time       `json:"date"`
}

// NewSale creates a sale. The account is required for bank-linked methods and
// forbidden for cash.
func NewSale(description string, amount valueobject.Money, method Method, accountID *uuid.UUID, date time.Time) (*Sale, error) {
	if err := validate(description, amount, method, accountID); err != nil {
		return nil, err
	}

	return &Sale{
		BaseEntity:  shared.NewBaseEntity(),
		Description: description,
		Amount:      amount.Amount(),
		Method:      method,
		AccountID:   accountID,
		Date:        date,
	}, nil
}

// Update replaces the sale's fields after validation. The caller is
// responsible for reversing and reapplying any ledger effect.
func (s *Sale) Update(description string, amount valueobject.Money, method Method, accountID *uuid.UUID, date time.Time) error {
	if err := validate(description, amount, method, accountID); err != nil {
		return err
	}

	s.Description = description
	s.Amount = amount.Amount()
	s.Method = method
	s.AccountID = accountID
	s.Date = date
	s.Touch()
	return nil
}

// MovesBalance returns true when the sale credits a bank account
func (s *Sale) MovesBalance() bool {
	return s.Method.RequiresAccount() && s.AccountID != nil
}

// AmountMoney returns the amount as a Money value object
func (s *Sale) AmountMoney() valueobject.Money {
	return valueobject.NewMoney(s.Amount)
}

func validate(description string, amount valueobject.Money, method Method, accountID *uuid.UUID) error {
	if description == "" {
		return shared.NewValidationError("Sale description cannot be empty")
	}
	if !amount.IsPositive() {
		return shared.NewValidationError("Sale amount must be positive")
	}
	if !method.IsValid() {
		return shared.NewValidationError("Payment method is not valid")
	}
	if method.RequiresAccount() && accountID == nil {
		return shared.NewValidationError("A bank account is required for " + method.String() + " sales")
	}
	if method == MethodCash && accountID != nil {
		return shared.NewValidationError("Cash sales must not reference a bank account")
	}
	return nil
}
