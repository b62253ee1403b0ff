package persistence

import (
	"context"
	"errors"

	"github.com/fincontrol/backend/internal/domain/boleto"
	"github.com/fincontrol/backend/internal/domain/shared"
	"github.com/fincontrol/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBoletoRepository implements boleto.Repository using GORM
type GormBoletoRepository struct {
	db *gorm.DB
}

// NewGormBoletoRepository creates a new GormBoletoRepository
func NewGormBoletoRepository(db *gorm.DB) *GormBoletoRepository {
	return &GormBoletoRepository{db: db}
}

// FindByID finds a boleto by its ID
func (r *GormBoletoRepository) FindByID(ctx context.Context, id uuid.UUID) (*boleto.Boleto, error) {
	var model models.BoletoModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every boleto ordered by due date
func (r *GormBoletoRepository) FindAll(ctx context.Context) ([]boleto.Boleto, error) {
	var boletoModels []models.BoletoModel
	if err := r.db.WithContext(ctx).Order("due_date").Find(&boletoModels).Error; err != nil {
		return nil, err
	}
	return toBoletoList(boletoModels), nil
}

// FindPending returns the unsettled boletos ordered by due date
func (r *GormBoletoRepository) FindPending(ctx context.Context) ([]boleto.Boleto, error) {
	var boletoModels []models.BoletoModel
	if err := r.db.WithContext(ctx).Where("paid = ?", false).Order("due_date").Find(&boletoModels).Error; err != nil {
		return nil, err
	}
	return toBoletoList(boletoModels), nil
}

// FindPaid returns the settled boletos ordered by payment date, newest first
func (r *GormBoletoRepository) FindPaid(ctx context.Context) ([]boleto.Boleto, error) {
	var boletoModels []models.BoletoModel
	if err := r.db.WithContext(ctx).Where("paid = ?", true).Order("payment_date DESC").Find(&boletoModels).Error; err != nil {
		return nil, err
	}
	return toBoletoList(boletoModels), nil
}

// Save creates or updates a boleto
func (r *GormBoletoRepository) Save(ctx context.Context, b *boleto.Boleto) error {
	var model models.BoletoModel
	model.FromDomain(b)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a boleto
func (r *GormBoletoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BoletoModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toBoletoList(boletoModels []models.BoletoModel) []boleto.Boleto {
	boletos := make([]boleto.Boleto, 0, len(boletoModels))
	for i := range boletoModels {
		boletos = append(boletos, *boletoModels[i].ToDomain())
	}
	return boletos
}
