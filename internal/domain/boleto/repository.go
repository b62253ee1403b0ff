package boleto

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists boletos
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Boleto, error)
	FindAll(ctx context.Context) ([]Boleto, error)
	FindPending(ctx context.Context) ([]Boleto, error)
	FindPaid(ctx context.Context) ([]Boleto, error)
	Save(ctx context.Context, b *Boleto) error
	Delete(ctx context.Context, id uuid.UUID) error
}
