package persistence

import (
	"context"
	"errors"

	"github.com/fincontrol/backend/internal/domain/expense"
	"github.com/fincontrol/backend/internal/domain/shared"
	"github.com/fincontrol/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExpenseRepository implements expense.Repository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every expense ordered by due date
func (r *GormExpenseRepository) FindAll(ctx context.Context) ([]expense.Expense, error) {
	var expenseModels []models.ExpenseModel
	if err := r.db.WithContext(ctx).Order("due_date").Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	expenses := make([]expense.Expense, 0, len(expenseModels))
	for i := range expenseModels {
		expenses = append(expenses, *expenseModels[i].ToDomain())
	}
	return expenses, nil
}

// Save creates or updates one expense
func (r *GormExpenseRepository) Save(ctx context.Context, e *expense.Expense) error {
	var model models.ExpenseModel
	model.FromDomain(e)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SaveAll upserts the whole collection, which the recurrence engine rewrites
// after every generation pass.
func (r *GormExpenseRepository) SaveAll(ctx context.Context, list []expense.Expense) error {
	if len(list) == 0 {
		return nil
	}
	expenseModels := make([]models.ExpenseModel, len(list))
	for i := range list {
		expenseModels[i].FromDomain(&list[i])
	}
	return r.db.WithContext(ctx).Save(&expenseModels).Error
}

// Delete removes one expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of stored expenses
func (r *GormExpenseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
