package banking

import (
	"context"

	"github.com/fincontrol/backend/internal/domain/banking"
	"github.com/fincontrol/backend/internal/domain/shared"
	"github.com/fincontrol/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AccountService provides application-level bank account operations
type AccountService struct {
	accountRepo  banking.AccountRepository
	movementRepo banking.MovementRepository
	logger       *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(
	accountRepo banking.AccountRepository,
	movementRepo banking.MovementRepository,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		logger:       logger,
	}
}

// CreateAccountRequest represents a request to create a bank account
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required"`
	Bank           string          `json:"bank" binding:"required"`
	Branch         string          `json:"branch"`
	Number         string          `json:"number"`
	OpeningBalance decimal.Decimal `json:"opening_balance" binding:"dgte0"`
	Methods        []string        `json:"methods"`
}

// UpdateAccountRequest represents a request to update a bank account
type UpdateAccountRequest struct {
	Name    string   `json:"name" binding:"required"`
	Bank    string   `json:"bank" binding:"required"`
	Branch  string   `json:"branch"`
	Number  string   `json:"number"`
	Methods []string `json:"methods"`
}

// CreateAccount creates a new bank account with its opening balance
func (s *AccountService) CreateAccount(ctx context.Context, req CreateAccountRequest) (*banking.BankAccount, error) {
	methods := make([]banking.PaymentMethod, 0, len(req.Methods))
	for _, m := range req.Methods {
		methods = append(methods, banking.PaymentMethod(m))
	}

	account, err := banking.NewBankAccount(
		req.Name,
		req.Bank,
		req.Branch,
		req.Number,
		valueobject.NewMoney(req.OpeningBalance),
		methods,
	)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("bank account created", zap.String("account_id", account.ID.String()))
	return account, nil
}

// UpdateAccount updates an account's details. The opening balance is
// immutable and the current balance only moves through the ledger.
func (s *AccountService) UpdateAccount(ctx context.Context, id uuid.UUID, req UpdateAccountRequest) (*banking.BankAccount, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	methods := make([]banking.PaymentMethod, 0, len(req.Methods))
	for _, m := range req.Methods {
		methods = append(methods, banking.PaymentMethod(m))
	}

	if err := account.UpdateDetails(req.Name, req.Bank, req.Branch, req.Number, methods); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccount returns one account by id
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*banking.BankAccount, error) {
	return s.accountRepo.FindByID(ctx, id)
}

// ListAccounts returns every account, active and inactive
func (s *AccountService) ListAccounts(ctx context.Context) ([]banking.BankAccount, error) {
	return s.accountRepo.FindAll(ctx)
}

// ListActiveAccounts returns the accounts still shown for new operations
func (s *AccountService) ListActiveAccounts(ctx context.Context) ([]banking.BankAccount, error) {
	return s.accountRepo.FindActive(ctx)
}

// DeactivateAccount hides an account without erasing its history
func (s *AccountService) DeactivateAccount(ctx context.Context, id uuid.UUID) error {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	account.Deactivate()
	return s.accountRepo.Save(ctx, account)
}

// ActivateAccount makes a deactivated account available again
func (s *AccountService) ActivateAccount(ctx context.Context, id uuid.UUID) error {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	account.Activate()
	return s.accountRepo.Save(ctx, account)
}

// DeleteAccount removes an account. Accounts with ledger history cannot be
// deleted, only deactivated, so the movement log stays reconcilable.
func (s *AccountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if _, err := s.accountRepo.FindByID(ctx, id); err != nil {
		return err
	}
	movements, err := s.movementRepo.FindByAccount(ctx, id)
	if err != nil {
		return err
	}
	if len(movements) > 0 {
		return shared.NewDomainError("INVALID_STATE", "Account has movements; deactivate it instead")
	}
	if err := s.accountRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("bank account deleted", zap.String("account_id", id.String()))
	return nil
}

// ListMovements returns the movement log of one account
func (s *AccountService) ListMovements(ctx context.Context, accountID uuid.UUID) ([]banking.Movement, error) {
	if _, err := s.accountRepo.FindByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.movementRepo.FindByAccount(ctx, accountID)
}

// CheckConsistency reconciles an account's balance against its movement log
func (s *AccountService) CheckConsistency(ctx context.Context, accountID uuid.UUID) (bool, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return false, err
	}
	movements, err := s.movementRepo.FindByAccount(ctx, accountID)
	if err != nil {
		return false, err
	}
	return banking.Reconcile(account, movements), nil
}
