package banking

import (
	"github.com/fincontrol/backend/internal/domain/shared"
	"github.com/fincontrol/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents an electronic payment method a bank account accepts
type PaymentMethod string

const (
	PaymentMethodPix    PaymentMethod = "pix"
	PaymentMethodDebit  PaymentMethod = "debit"
	PaymentMethodCredit PaymentMethod = "credit"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodPix, PaymentMethodDebit, PaymentMethodCredit:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// BankAccount represents a bank account aggregate root.
// CurrentBalance is the authoritative running balance and must always equal
// OpeningBalance plus the signed sum of all movements referencing the account.
type BankAccount struct {
	shared.BaseEntity
	Name            string          `json:"name"`
	Bank            string          `json:"bank"`
	Branch          string          `json:"branch"`
	Number          string          `json:"number"`
	OpeningBalance  decimal.Decimal `json:"opening_balance"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	AcceptedMethods []PaymentMethod `json:"accepted_methods"`
	Active          bool            `json:"active"`
}

// NewBankAccount creates a new bank account with the opening balance as the
// initial current balance
func NewBankAccount(name, bank, branch, number string, openingBalance valueobject.Money, methods []PaymentMethod) (*BankAccount, error) {
	if name == "" {
		return nil, shared.NewValidationError("Account name cannot be empty")
	}
	for _, m := range methods {
		if !m.IsValid() {
			return nil, shared.NewValidationError("Accepted payment method is not valid: " + m.String())
		}
	}

	return &BankAccount{
		BaseEntity:      shared.NewBaseEntity(),
		Name:            name,
		Bank:            bank,
		Branch:          branch,
		Number:          number,
		OpeningBalance:  openingBalance.Amount(),
		CurrentBalance:  openingBalance.Amount(),
		AcceptedMethods: methods,
		Active:          true,
	}, nil
}

// UpdateDetails updates the descriptive fields. The opening balance is
// immutable after creation.
func (a *BankAccount) UpdateDetails(name, bank, branch, number string, methods []PaymentMethod) error {
	if name == "" {
		return shared.NewValidationError("Account name cannot be empty")
	}
	for _, m := range methods {
		if !m.IsValid() {
			return shared.NewValidationError("Accepted payment method is not valid: " + m.String())
		}
	}

	a.Name = name
	a.Bank = bank
	a.Branch = branch
	a.Number = number
	a.AcceptedMethods = methods
	a.Touch()
	return nil
}

// Deactivate hides the account without erasing its movement history
func (a *BankAccount) Deactivate() {
	a.Active = false
	a.Touch()
}

// Activate restores a deactivated account
func (a *BankAccount) Activate() {
	a.Active = true
	a.Touch()
}

// Credit increases the current balance. Only the ledger may call this.
func (a *BankAccount) Credit(amount valueobject.Money) {
	a.CurrentBalance = a.CurrentBalance.Add(amount.Amount())
	a.Touch()
}

// Debit decreases the current balance. Only the ledger may call this.
func (a *BankAccount) Debit(amount valueobject.Money) {
	a.CurrentBalance = a.CurrentBalance.Sub(amount.Amount())
	a.Touch()
}

// Accepts returns true if the account accepts the given payment method
func (a *BankAccount) Accepts(method PaymentMethod) bool {
	for _, m := range a.AcceptedMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Reconcile verifies that the account's running balance matches its opening
// balance plus the signed sum of the given movements. Movements belonging to
// other accounts are ignored.
func Reconcile(account *BankAccount, movements []Movement) bool {
	sum := decimal.Zero
	for _, mv := range movements {
		if mv.AccountID != account.ID {
			continue
		}
		if mv.Direction == DirectionIn {
			sum = sum.Add(mv.Amount)
		} else {
			sum = sum.Sub(mv.Amount)
		}
	}
	return account.CurrentBalance.Equal(account.OpeningBalance.Add(sum))
}
