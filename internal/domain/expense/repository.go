package expense

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists expenses
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	FindAll(ctx context.Context) ([]Expense, error)
	Save(ctx context.Context, e *Expense) error
	SaveAll(ctx context.Context, list []Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
