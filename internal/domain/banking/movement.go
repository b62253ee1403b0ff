package banking

import (
	"time"

	"github.com/fincontrol/backend/internal/domain/shared"
	"github.com/fincontrol/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction indicates whether a movement credits or debits an account
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// IsValid checks if the direction is valid
func (d Direction) IsValid() bool {
	return d == DirectionIn || d == DirectionOut
}

// String returns the string representation of Direction
func (d Direction) String() string {
	return string(d)
}

// Invert returns the opposite direction
func (d Direction) Invert() Direction {
	if d == DirectionIn {
		return DirectionOut
	}
	return DirectionIn
}

// OriginRef is the back-reference from a movement to the event that caused
// it. At most one of the two ids is set.
type OriginRef struct {
	BoletoID *uuid.UUID
	SaleID   *uuid.UUID
}

// BoletoOrigin creates an origin reference to a boleto settlement
func BoletoOrigin(id uuid.UUID) OriginRef {
	return OriginRef{BoletoID: &id}
}

// SaleOrigin creates an origin reference to a sale
func SaleOrigin(id uuid.UUID) OriginRef {
	return OriginRef{SaleID: &id}
}

// IsZero returns true when the reference points at nothing
func (r OriginRef) IsZero() bool {
	return r.BoletoID == nil && r.SaleID == nil
}

// Movement is an immutable audit record of one balance-affecting event.
// It is created exactly once per event and deleted only when that event is
// reversed.
type Movement struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"account_id"`
	Direction   Direction       `json:"direction"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	BoletoID    *uuid.UUID      `json:"boleto_id,omitempty"`
	SaleID      *uuid.UUID      `json:"sale_id,omitempty"`
	Date        time.Time       `json:"date"`
}

// NewMovement creates a movement for the given account and origin
func NewMovement(accountID uuid.UUID, direction Direction, amount valueobject.Money, description string, origin OriginRef, date time.Time) (*Movement, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewValidationError("Movement account ID cannot be empty")
	}
	if !direction.IsValid() {
		return nil, shared.NewValidationError("Movement direction is not valid")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Movement amount must be positive")
	}
	if origin.BoletoID != nil && origin.SaleID != nil {
		return nil, shared.NewValidationError("Movement cannot reference both a boleto and a sale")
	}

	return &Movement{
		ID:          uuid.New(),
		AccountID:   accountID,
		Direction:   direction,
		Amount:      amount.Amount(),
		Description: description,
		BoletoID:    origin.BoletoID,
		SaleID:      origin.SaleID,
		Date:        date,
	}, nil
}

// SignedAmount returns the amount with direction applied (in positive, out
// negative)
func (m *Movement) SignedAmount() decimal.Decimal {
	if m.Direction == DirectionIn {
		return m.Amount
	}
	return m.Amount.Neg()
}
