package persistence

import (
	"context"
	"errors"

	"github.com/fincontrol/backend/internal/domain/revenue"
	"github.com/fincontrol/backend/internal/domain/shared"
	"github.com/fincontrol/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSupplementRepository implements revenue.Repository using GORM
type GormSupplementRepository struct {
	db *gorm.DB
}

// NewGormSupplementRepository creates a new GormSupplementRepository
func NewGormSupplementRepository(db *gorm.DB) *GormSupplementRepository {
	return &GormSupplementRepository{db: db}
}

// FindByID finds a supplement by its ID
func (r *GormSupplementRepository) FindByID(ctx context.Context, id uuid.UUID) (*revenue.MonthlySupplement, error) {
	var model models.MonthlySupplementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriod finds the supplement for one (year, month)
func (r *GormSupplementRepository) FindByPeriod(ctx context.Context, year, month int) (*revenue.MonthlySupplement, error) {
	var model models.MonthlySupplementModel
	if err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", year, month).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByYear returns one year's supplements ordered by month
func (r *GormSupplementRepository) FindByYear(ctx context.Context, year int) ([]revenue.MonthlySupplement, error) {
	var supplementModels []models.MonthlySupplementModel
	if err := r.db.WithContext(ctx).Where("year = ?", year).Order("month").Find(&supplementModels).Error; err != nil {
		return nil, err
	}
	supplements := make([]revenue.MonthlySupplement, 0, len(supplementModels))
	for i := range supplementModels {
		supplements = append(supplements, *supplementModels[i].ToDomain())
	}
	return supplements, nil
}

// Save creates or updates a supplement
func (r *GormSupplementRepository) Save(ctx context.Context, s *revenue.MonthlySupplement) error {
	var model models.MonthlySupplementModel
	model.FromDomain(s)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a supplement
func (r *GormSupplementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MonthlySupplementModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
