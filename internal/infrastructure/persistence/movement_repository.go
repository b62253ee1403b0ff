package persistence

import (
	"context"

	"github.com/fincontrol/backend/internal/domain/banking"
	"github.com/fincontrol/backend/internal/domain/shared"
	"github.com/fincontrol/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMovementRepository implements banking.MovementRepository using GORM
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// FindByAccount returns one account's movements, newest first
func (r *GormMovementRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]banking.Movement, error) {
	var movementModels []models.MovementModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("date DESC").
		Find(&movementModels).Error; err != nil {
		return nil, err
	}
	return toMovementList(movementModels), nil
}

// FindByOrigin returns the movements referencing a boleto or sale
func (r *GormMovementRepository) FindByOrigin(ctx context.Context, origin banking.OriginRef) ([]banking.Movement, error) {
	query := r.db.WithContext(ctx)
	switch {
	case origin.BoletoID != nil:
		query = query.Where("boleto_id = ?", *origin.BoletoID)
	case origin.SaleID != nil:
		query = query.Where("sale_id = ?", *origin.SaleID)
	default:
		return nil, nil
	}

	var movementModels []models.MovementModel
	if err := query.Find(&movementModels).Error; err != nil {
		return nil, err
	}
	return toMovementList(movementModels), nil
}

// FindAll returns every movement
func (r *GormMovementRepository) FindAll(ctx context.Context) ([]banking.Movement, error) {
	var movementModels []models.MovementModel
	if err := r.db.WithContext(ctx).Order("date DESC").Find(&movementModels).Error; err != nil {
		return nil, err
	}
	return toMovementList(movementModels), nil
}

// Add appends one movement. Movements are never updated in place.
func (r *GormMovementRepository) Add(ctx context.Context, m *banking.Movement) error {
	var model models.MovementModel
	model.FromDomain(m)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Delete removes one movement, which only happens when its origin is reversed
func (r *GormMovementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MovementModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toMovementList(movementModels []models.MovementModel) []banking.Movement {
	movements := make([]banking.Movement, 0, len(movementModels))
	for i := range movementModels {
		movements = append(movements, *movementModels[i].ToDomain())
	}
	return movements
}
