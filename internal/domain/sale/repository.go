package sale

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists sales
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindAll(ctx context.Context) ([]Sale, error)
	Save(ctx context.Context, s *Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
}
