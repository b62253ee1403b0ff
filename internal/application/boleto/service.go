package boleto

import (
	"context"
	"time"

	appbanking "github.com/fincontrol/backend/internal/application/banking"
	"github.com/fincontrol/backend/internal/domain/banking"
	"github.com/fincontrol/backend/internal/domain/boleto"
	"github.com/fincontrol/backend/internal/domain/shared"
	"github.com/fincontrol/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CashProvider reports the derived cash-on-hand balance. Cash settlements are
// validated against it before any state change.
type CashProvider interface {
	CashOnHand(ctx context.Context) (valueobject.Money, error)
}

// ParsedDocument is the result of parsing one imported payable document
type ParsedDocument struct {
	Description        string
	Amount             decimal.Decimal
	DueDate            time.Time
	PaymentMethodCode  string
	PaymentMethodLabel string
}

// DocumentParser extracts payable data from raw document text. A nil result
// with a nil error means the document was not recognized.
type DocumentParser interface {
	Parse(text string) (*ParsedDocument, error)
}

// Service provides application-level payable operations. Settlements from a
// bank account go through the ledger; the boleto is never persisted as paid
// without its matching movement.
type Service struct {
	repo   boleto.Repository
	ledger *appbanking.LedgerService
	cash   CashProvider
	parser DocumentParser
	logger *zap.Logger
}

// NewService creates a new boleto Service
func NewService(
	repo boleto.Repository,
	ledger *appbanking.LedgerService,
	cash CashProvider,
	parser DocumentParser,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:   repo,
		ledger: ledger,
		cash:   cash,
		parser: parser,
		logger: logger,
	}
}

// CreateRequest represents a request to create a payable
type CreateRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,dgt0"`
	DueDate     time.Time       `json:"due_date" binding:"required"`
}

// UpdateRequest represents a request to update a payable
type UpdateRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,dgt0"`
	DueDate     time.Time       `json:"due_date" binding:"required"`
}

// SettleRequest represents a request to settle a payable
type SettleRequest struct {
	Source    string     `json:"source" binding:"required"`
	AccountID *uuid.UUID `json:"account_id,omitempty"`
}

// Create records a new pending payable
func (s *Service) Create(ctx context.Context, req CreateRequest) (*boleto.Boleto, error) {
	b, err := boleto.NewBoleto(req.Description, valueobject.NewMoney(req.Amount), req.DueDate)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	s.logger.Info("boleto created", zap.String("boleto_id", b.ID.String()))
	return b, nil
}

// Update edits a payable. The amount of a paid payable is locked.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*boleto.Boleto, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.Update(req.Description, valueobject.NewMoney(req.Amount), req.DueDate); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Settle marks a payable paid. Cash settlements require enough cash on hand;
// bank settlements require an account and debit it through the ledger.
func (s *Service) Settle(ctx context.Context, id uuid.UUID, req SettleRequest) (*boleto.Boleto, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	source := boleto.PaymentSource(req.Source)
	amount := b.AmountMoney()

	if source == boleto.SourceCash {
		available, err := s.cash.CashOnHand(ctx)
		if err != nil {
			return nil, err
		}
		if available.LessThan(amount) {
			return nil, shared.NewDomainError("INSUFFICIENT_FUNDS", "Cash on hand is less than the payable amount")
		}
	}

	if err := b.MarkPaid(source, req.AccountID, time.Now()); err != nil {
		return nil, err
	}

	if source == boleto.SourceBankAccount {
		err := s.ledger.ApplyEffect(ctx, *req.AccountID, amount, banking.DirectionOut, "Boleto: "+b.Description, banking.BoletoOrigin(b.ID))
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	s.logger.Info("boleto settled",
		zap.String("boleto_id", b.ID.String()),
		zap.String("source", source.String()),
	)
	return b, nil
}

// ReverseSettlement returns a paid payable to pending, removing its ledger
// effect when it was paid from a bank account.
func (s *Service) ReverseSettlement(ctx context.Context, id uuid.UUID) (*boleto.Boleto, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.ReverseEffect(ctx, banking.BoletoOrigin(b.ID)); err != nil {
		return nil, err
	}
	if err := b.MarkPending(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	s.logger.Info("boleto settlement reversed", zap.String("boleto_id", b.ID.String()))
	return b, nil
}

// Get returns one payable by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*boleto.Boleto, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns every payable
func (s *Service) List(ctx context.Context) ([]boleto.Boleto, error) {
	return s.repo.FindAll(ctx)
}

// ListPending returns the payables not yet settled
func (s *Service) ListPending(ctx context.Context) ([]boleto.Boleto, error) {
	return s.repo.FindPending(ctx)
}

// ListPaid returns the settled payables
func (s *Service) ListPaid(ctx context.Context) ([]boleto.Boleto, error) {
	return s.repo.FindPaid(ctx)
}

// Delete removes a payable. A paid payable must be reversed first so its
// ledger effect is not orphaned.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if b.Paid {
		return shared.NewDomainError("INVALID_STATE", "Reverse the settlement before deleting a paid boleto")
	}
	return s.repo.Delete(ctx, id)
}

// ImportRequest carries raw document texts and an optional settlement mapping
// applied to every document that parses with a payment method.
type ImportRequest struct {
	Documents []string   `json:"documents" binding:"required"`
	Settle    bool       `json:"settle"`
	Source    string     `json:"source,omitempty"`
	AccountID *uuid.UUID `json:"account_id,omitempty"`
}

// ImportResult tallies the outcome of a bulk document import
type ImportResult struct {
	Created []boleto.Boleto `json:"created"`
	Settled int             `json:"settled"`
	Skipped int             `json:"skipped"`
	Errors  []string        `json:"errors,omitempty"`
}

// Import parses each document and creates a payable per recognized one.
// Unrecognized documents are skipped and tallied; the rest of the batch
// continues. When a settlement mapping is given, each created payable with a
// detected payment method is settled independently, and one failed
// settlement does not roll back the others.
func (s *Service) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	result := &ImportResult{}

	for _, text := range req.Documents {
		doc, err := s.parser.Parse(text)
		if err != nil || doc == nil {
			result.Skipped++
			if err != nil {
				result.Errors = append(result.Errors, err.Error())
			}
			continue
		}

		b, err := boleto.NewBoleto(doc.Description, valueobject.NewMoney(doc.Amount), doc.DueDate)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		if err := s.repo.Save(ctx, b); err != nil {
			return nil, err
		}
		result.Created = append(result.Created, *b)

		if req.Settle && doc.PaymentMethodCode != "" {
			_, err := s.Settle(ctx, b.ID, SettleRequest{Source: req.Source, AccountID: req.AccountID})
			if err != nil {
				result.Errors = append(result.Errors, b.Description+": "+err.Error())
				continue
			}
			result.Settled++
		}
	}

	s.logger.Info("boleto import finished",
		zap.Int("created", len(result.Created)),
		zap.Int("settled", result.Settled),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}
