package banking

import (
	"context"
	"time"

	"github.com/fincontrol/backend/internal/domain/banking"
	"github.com/fincontrol/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LedgerService is the only path allowed to mutate account balances. Every
// balance change appends a Movement, and reversing an origin removes its
// Movements while restoring the balance, so the reconciliation invariant
// (current balance equals opening balance plus signed movements) holds at
// every observable point.
type LedgerService struct {
	accountRepo  banking.AccountRepository
	movementRepo banking.MovementRepository
	logger       *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	accountRepo banking.AccountRepository,
	movementRepo banking.MovementRepository,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		logger:       logger,
	}
}

// ApplyEffect appends a Movement for the given origin and adjusts the account
// balance in the same direction.
func (s *LedgerService) ApplyEffect(
	ctx context.Context,
	accountID uuid.UUID,
	amount valueobject.Money,
	direction banking.Direction,
	description string,
	origin banking.OriginRef,
) error {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	movement, err := banking.NewMovement(accountID, direction, amount, description, origin, time.Now())
	if err != nil {
		return err
	}

	if direction == banking.DirectionIn {
		account.Credit(amount)
	} else {
		account.Debit(amount)
	}

	if err := s.movementRepo.Add(ctx, movement); err != nil {
		return err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return err
	}

	s.logger.Info("ledger effect applied",
		zap.String("account_id", account.ID.String()),
		zap.String("direction", direction.String()),
		zap.String("amount", amount.String()),
	)
	return nil
}

// ReverseEffect removes every Movement referencing the given origin and
// adjusts the owning account balances by the exact inverse. Calling it when
// no Movements exist is a no-op.
func (s *LedgerService) ReverseEffect(ctx context.Context, origin banking.OriginRef) error {
	movements, err := s.movementRepo.FindByOrigin(ctx, origin)
	if err != nil {
		return err
	}
	if len(movements) == 0 {
		return nil
	}

	for i := range movements {
		m := &movements[i]

		account, err := s.accountRepo.FindByID(ctx, m.AccountID)
		if err != nil {
			return err
		}

		amount := valueobject.NewMoney(m.Amount)
		if m.Direction == banking.DirectionIn {
			account.Debit(amount)
		} else {
			account.Credit(amount)
		}

		if err := s.movementRepo.Delete(ctx, m.ID); err != nil {
			return err
		}
		if err := s.accountRepo.Save(ctx, account); err != nil {
			return err
		}

		s.logger.Info("ledger effect reversed",
			zap.String("account_id", account.ID.String()),
			zap.String("movement_id", m.ID.String()),
		)
	}
	return nil
}
