package expense

import (
	"context"
	"time"

	"github.com/fincontrol/backend/internal/domain/expense"
	"github.com/fincontrol/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service provides application-level expense operations. Every read first
// runs the automatic rules: seed on first use, generate due recurrence
// instances, recompute statuses and persist the result, so callers always
// observe an up-to-date collection.
type Service struct {
	repo    expense.Repository
	seed    bool
	nowFunc func() time.Time
	logger  *zap.Logger
}

// NewService creates a new expense Service. When seed is true an empty store
// is primed with a starter dataset on first access.
func NewService(repo expense.Repository, seed bool, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		seed:    seed,
		nowFunc: time.Now,
		logger:  logger,
	}
}

// CreateRequest represents a request to create an expense
type CreateRequest struct {
	Description   string          `json:"description" binding:"required"`
	Category      string          `json:"category" binding:"required"`
	Type          string          `json:"type" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required,dgt0"`
	DueDate       time.Time       `json:"due_date" binding:"required"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Supplier      string          `json:"supplier"`
	CostCenter    string          `json:"cost_center"`
	Notes         string          `json:"notes"`
	Recurring     bool            `json:"recurring"`
	Periodicity   *string         `json:"periodicity,omitempty"`
}

func (r CreateRequest) toParams() expense.NewExpenseParams {
	var periodicity *expense.Periodicity
	if r.Periodicity != nil {
		p := expense.Periodicity(*r.Periodicity)
		periodicity = &p
	}
	return expense.NewExpenseParams{
		Description:   r.Description,
		Category:      expense.Category(r.Category),
		Type:          expense.Type(r.Type),
		Amount:        valueobject.NewMoney(r.Amount),
		DueDate:       r.DueDate,
		PaymentDate:   r.PaymentDate,
		PaymentMethod: expense.PaymentMethod(r.PaymentMethod),
		Supplier:      r.Supplier,
		CostCenter:    r.CostCenter,
		Notes:         r.Notes,
		Recurring:     r.Recurring,
		Periodicity:   periodicity,
	}
}

// List returns every expense after running the automatic rules
func (s *Service) List(ctx context.Context) ([]expense.Expense, error) {
	if err := s.applyAutomaticRules(ctx); err != nil {
		return nil, err
	}
	return s.repo.FindAll(ctx)
}

// Get returns one expense by id after running the automatic rules
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	if err := s.applyAutomaticRules(ctx); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// Create records a new expense
func (s *Service) Create(ctx context.Context, req CreateRequest) (*expense.Expense, error) {
	e, err := expense.NewExpense(req.toParams())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, e); err != nil {
		return nil, err
	}
	s.logger.Info("expense created",
		zap.String("expense_id", e.ID.String()),
		zap.String("category", e.Category.String()),
	)
	return e, nil
}

// Update edits an expense, recomputing its status from the new fields
func (s *Service) Update(ctx context.Context, id uuid.UUID, req CreateRequest) (*expense.Expense, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := e.Update(req.toParams()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Remove deletes one expense. Other instances of the same recurrence series
// are untouched.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// applyAutomaticRules is idempotent and safe to repeat on every read
func (s *Service) applyAutomaticRules(ctx context.Context) error {
	now := s.nowFunc()

	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 && s.seed {
		if err := s.seedDefaults(ctx, now); err != nil {
			return err
		}
	}

	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}

	generated := expense.GenerateRecurrences(all, expense.EndOfMonth(now))
	all = append(all, generated...)
	for i := range all {
		all[i].RecomputeStatus(now)
	}

	if err := s.repo.SaveAll(ctx, all); err != nil {
		return err
	}
	if len(generated) > 0 {
		s.logger.Info("recurring expenses generated", zap.Int("count", len(generated)))
	}
	return nil
}

// seedDefaults primes an empty store with a small starter dataset
func (s *Service) seedDefaults(ctx context.Context, now time.Time) error {
	monthly := expense.PeriodMonthly
	firstOfMonth := time.Date(now.Year(), now.Month(), 5, 0, 0, 0, 0, now.Location())

	seeds := []expense.NewExpenseParams{
		{
			Description:   "Aluguel do ponto",
			Category:      expense.CategoryRent,
			Type:          expense.TypeFixed,
			Amount:        valueobject.NewMoneyFromFloat(1200),
			DueDate:       firstOfMonth,
			PaymentMethod: expense.PayTransfer,
			Recurring:     true,
			Periodicity:   &monthly,
		},
		{
			Description:   "Energia elétrica",
			Category:      expense.CategoryElectricity,
			Type:          expense.TypeVariable,
			Amount:        valueobject.NewMoneyFromFloat(250),
			DueDate:       firstOfMonth.AddDate(0, 0, 5),
			PaymentMethod: expense.PayBoleto,
			Recurring:     true,
			Periodicity:   &monthly,
		},
	}

	for _, params := range seeds {
		e, err := expense.NewExpense(params)
		if err != nil {
			return err
		}
		if err := s.repo.Save(ctx, e); err != nil {
			return err
		}
	}
	s.logger.Info("expense store seeded", zap.Int("count", len(seeds)))
	return nil
}
