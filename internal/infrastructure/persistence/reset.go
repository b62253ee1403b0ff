package persistence

import (
	"context"

	"github.com/fincontrol/backend/internal/infrastructure/persistence/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ResetService wipes every collection. It backs the destructive "reset all
// data" action and has no undo.
type ResetService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewResetService creates a new ResetService
func NewResetService(db *gorm.DB, logger *zap.Logger) *ResetService {
	return &ResetService{db: db, logger: logger}
}

// ResetAll deletes every record of every collection in one transaction
func (s *ResetService) ResetAll(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.MovementModel{},
			&models.BoletoModel{},
			&models.SaleModel{},
			&models.ExpenseModel{},
			&models.MonthlySupplementModel{},
			&models.BankAccountModel{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Warn("all data reset")
	return nil
}
