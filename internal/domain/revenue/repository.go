package revenue

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists monthly revenue supplements
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MonthlySupplement, error)
	FindByPeriod(ctx context.Context, year, month int) (*MonthlySupplement, error)
	FindByYear(ctx context.Context, year int) ([]MonthlySupplement, error)
	Save(ctx context.Context, s *MonthlySupplement) error
	Delete(ctx context.Context, id uuid.UUID) error
}
