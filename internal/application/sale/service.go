package sale

import (
	"context"
	"time"

	appbanking "github.com/fincontrol/backend/internal/application/banking"
	"github.com/fincontrol/backend/internal/domain/banking"
	"github.com/fincontrol/backend/internal/domain/sale"
	"github.com/fincontrol/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service provides application-level sale operations. Bank-linked sales
// credit their account through the ledger; edits always reverse the previous
// effect before reapplying, even when nothing balance-relevant changed.
type Service struct {
	repo   sale.Repository
	ledger *appbanking.LedgerService
	logger *zap.Logger
}

// NewService creates a new sale Service
func NewService(repo sale.Repository, ledger *appbanking.LedgerService, logger *zap.Logger) *Service {
	return &Service{repo: repo, ledger: ledger, logger: logger}
}

// CreateRequest represents a request to record a sale
type CreateRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Method      string          `json:"method" binding:"required"`
	AccountID   *uuid.UUID      `json:"account_id,omitempty"`
	Date        time.Time       `json:"date"`
}

// UpdateRequest represents a request to edit a sale
type UpdateRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Method      string          `json:"method" binding:"required"`
	AccountID   *uuid.UUID      `json:"account_id,omitempty"`
	Date        time.Time       `json:"date"`
}

// Create records a sale and credits the bank account for bank-linked methods
func (s *Service) Create(ctx context.Context, req CreateRequest) (*sale.Sale, error) {
	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	sl, err := sale.NewSale(req.Description, valueobject.NewMoney(req.Amount), sale.Method(req.Method), req.AccountID, date)
	if err != nil {
		return nil, err
	}

	if sl.MovesBalance() {
		err := s.ledger.ApplyEffect(ctx, *sl.AccountID, sl.AmountMoney(), banking.DirectionIn, "Sale: "+sl.Description, banking.SaleOrigin(sl.ID))
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, sl); err != nil {
		return nil, err
	}
	s.logger.Info("sale recorded",
		zap.String("sale_id", sl.ID.String()),
		zap.String("method", sl.Method.String()),
	)
	return sl, nil
}

// Update edits a sale. The previous ledger effect is always reversed before
// the new state is applied, so editing is a net-zero operation when nothing
// changed and exact otherwise.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*sale.Sale, error) {
	sl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	date := req.Date
	if date.IsZero() {
		date = sl.Date
	}

	// Validate the new state before touching the ledger so a rejected edit
	// leaves the balance untouched.
	probe := *sl
	if err := probe.Update(req.Description, valueobject.NewMoney(req.Amount), sale.Method(req.Method), req.AccountID, date); err != nil {
		return nil, err
	}

	if err := s.ledger.ReverseEffect(ctx, banking.SaleOrigin(sl.ID)); err != nil {
		return nil, err
	}
	if err := sl.Update(req.Description, valueobject.NewMoney(req.Amount), sale.Method(req.Method), req.AccountID, date); err != nil {
		return nil, err
	}

	if sl.MovesBalance() {
		err := s.ledger.ApplyEffect(ctx, *sl.AccountID, sl.AmountMoney(), banking.DirectionIn, "Sale: "+sl.Description, banking.SaleOrigin(sl.ID))
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, sl); err != nil {
		return nil, err
	}
	return sl, nil
}

// Delete removes a sale and reverses any ledger effect it produced
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	sl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ledger.ReverseEffect(ctx, banking.SaleOrigin(sl.ID)); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("sale deleted", zap.String("sale_id", sl.ID.String()))
	return nil
}

// Get returns one sale by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*sale.Sale, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns every sale
func (s *Service) List(ctx context.Context) ([]sale.Sale, error) {
	return s.repo.FindAll(ctx)
}

// TotalsByMethod sums sale amounts per payment method for one calendar month
func (s *Service) TotalsByMethod(ctx context.Context, year int, month time.Month) (map[sale.Method]decimal.Decimal, error) {
	sales, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	totals := map[sale.Method]decimal.Decimal{
		sale.MethodPix:    decimal.Zero,
		sale.MethodCash:   decimal.Zero,
		sale.MethodDebit:  decimal.Zero,
		sale.MethodCredit: decimal.Zero,
	}
	for _, sl := range sales {
		if sl.Date.Year() == year && sl.Date.Month() == month {
			totals[sl.Method] = totals[sl.Method].Add(sl.Amount)
		}
	}
	return totals, nil
}
