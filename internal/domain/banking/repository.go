package banking

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository persists bank accounts
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BankAccount, error)
	FindAll(ctx context.Context) ([]BankAccount, error)
	FindActive(ctx context.Context) ([]BankAccount, error)
	Save(ctx context.Context, account *BankAccount) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MovementRepository persists the immutable movement log
type MovementRepository interface {
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]Movement, error)
	FindByOrigin(ctx context.Context, origin OriginRef) ([]Movement, error)
	FindAll(ctx context.Context) ([]Movement, error)
	Add(ctx context.Context, movement *Movement) error
	Delete(ctx context.Context, id uuid.UUID) error
}
