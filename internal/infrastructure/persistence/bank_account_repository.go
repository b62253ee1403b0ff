package persistence

import (
	"context"
	"errors"

	"github.com/fincontrol/backend/internal/domain/banking"
	"github.com/fincontrol/backend/internal/domain/shared"
	"github.com/fincontrol/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBankAccountRepository implements banking.AccountRepository using GORM
type GormBankAccountRepository struct {
	db *gorm.DB
}

// NewGormBankAccountRepository creates a new GormBankAccountRepository
func NewGormBankAccountRepository(db *gorm.DB) *GormBankAccountRepository {
	return &GormBankAccountRepository{db: db}
}

// FindByID finds a bank account by its ID
func (r *GormBankAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*banking.BankAccount, error) {
	var model models.BankAccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every bank account ordered by name
func (r *GormBankAccountRepository) FindAll(ctx context.Context) ([]banking.BankAccount, error) {
	var accountModels []models.BankAccountModel
	if err := r.db.WithContext(ctx).Order("name").Find(&accountModels).Error; err != nil {
		return nil, err
	}
	return toAccountList(accountModels), nil
}

// FindActive returns the accounts available for new operations
func (r *GormBankAccountRepository) FindActive(ctx context.Context) ([]banking.BankAccount, error) {
	var accountModels []models.BankAccountModel
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("name").Find(&accountModels).Error; err != nil {
		return nil, err
	}
	return toAccountList(accountModels), nil
}

// Save creates or updates a bank account
func (r *GormBankAccountRepository) Save(ctx context.Context, a *banking.BankAccount) error {
	var model models.BankAccountModel
	model.FromDomain(a)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a bank account
func (r *GormBankAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BankAccountModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toAccountList(accountModels []models.BankAccountModel) []banking.BankAccount {
	accounts := make([]banking.BankAccount, 0, len(accountModels))
	for i := range accountModels {
		accounts = append(accounts, *accountModels[i].ToDomain())
	}
	return accounts
}
