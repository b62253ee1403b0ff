package expense

import (
	"time"

	"github.com/fincontrol/backend/internal/domain/shared"
	"github.com/fincontrol/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category is the closed set of expense categories
type Category string

const (
	CategoryWater       Category = "water"
	CategoryElectricity Category = "electricity"
	CategoryInternet    Category = "internet"
	CategoryRent        Category = "rent"
	CategoryPayroll     Category = "payroll"
	CategorySuppliers   Category = "suppliers"
	CategoryMaintenance Category = "maintenance"
	CategoryFuel        Category = "fuel"
	CategoryTaxes       Category = "taxes"
	CategoryAccounting  Category = "accounting"
	CategoryMarketing   Category = "marketing"
	CategoryTransport   Category = "transport"
	CategoryOther       Category = "other"
)

// AllCategories lists every valid category
func AllCategories() []Category {
	return []Category{
		CategoryWater, CategoryElectricity, CategoryInternet, CategoryRent,
		CategoryPayroll, CategorySuppliers, CategoryMaintenance, CategoryFuel,
		CategoryTaxes, CategoryAccounting, CategoryMarketing, CategoryTransport,
		CategoryOther,
	}
}

// IsValid checks if the category belongs to the closed enumeration
func (c Category) IsValid() bool {
	for _, v := range AllCategories() {
		if c == v {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// Type classifies an expense as fixed or variable
type Type string

const (
	TypeFixed    Type = "fixed"
	TypeVariable Type = "variable"
)

// IsValid checks if the type is valid
func (t Type) IsValid() bool {
	return t == TypeFixed || t == TypeVariable
}

func (t Type) String() string {
	return string(t)
}

// Status is derived from due date and payment date, never set directly
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

func (s Status) String() string {
	return string(s)
}

// PaymentMethod is descriptive only and has no ledger effect
type PaymentMethod string

const (
	PayPix      PaymentMethod = "pix"
	PayBoleto   PaymentMethod = "boleto"
	PayTransfer PaymentMethod = "transfer"
	PayCard     PaymentMethod = "card"
	PayCash     PaymentMethod = "cash"
)

// IsValid checks if the payment method is valid
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PayPix, PayBoleto, PayTransfer, PayCard, PayCash:
		return true
	}
	return false
}

func (p PaymentMethod) String() string {
	return string(p)
}

// Periodicity is the interval between generated recurrence instances
type Periodicity string

const (
	PeriodWeekly  Periodicity = "weekly"
	PeriodMonthly Periodicity = "monthly"
	PeriodYearly  Periodicity = "yearly"
)

// IsValid checks if the periodicity is valid
func (p Periodicity) IsValid() bool {
	return p == PeriodWeekly || p == PeriodMonthly || p == PeriodYearly
}

func (p Periodicity) String() string {
	return string(p)
}

// Next advances a due date by one period
func (p Periodicity) Next(from time.Time) time.Time {
	switch p {
	case PeriodWeekly:
		return from.AddDate(0, 0, 7)
	case PeriodYearly:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}

// Expense represents an operational expense. Recurring expenses form a series
// identified by RecurrenceOriginID, the id of the first instance.
type Expense struct {
	shared.BaseEntity
	Description        string          `json:"description"`
	Category           Category        `json:"category"`
	Type               Type            `json:"type"`
	Amount             decimal.Decimal `json:"amount"`
	DueDate            time.Time       `json:"due_date"`
	PaymentDate        *time.Time      `json:"payment_date,omitempty"`
	Status             Status          `json:"status"`
	PaymentMethod      PaymentMethod   `json:"payment_method"`
	Supplier           string          `json:"supplier"`
	CostCenter         string          `json:"cost_center"`
	Notes              string          `json:"notes"`
	Recurring          bool            `json:"recurring"`
	Periodicity        *Periodicity    `json:"periodicity,omitempty"`
	RecurrenceOriginID *uuid.UUID      `json:"recurrence_origin_id,omitempty"`
}

// NewExpenseParams carries the fields accepted when creating or updating an expense
type NewExpenseParams struct {
	Description   string
	Category      Category
	Type          Type
	Amount        valueobject.Money
	DueDate       time.Time
	PaymentDate   *time.Time
	PaymentMethod PaymentMethod
	Supplier      string
	CostCenter    string
	Notes         string
	Recurring     bool
	Periodicity   *Periodicity
}

// NewExpense creates an expense. When the expense is recurring it becomes the
// origin of its own series.
func NewExpense(p NewExpenseParams) (*Expense, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}

	e := &Expense{
		BaseEntity:    shared.NewBaseEntity(),
		Description:   p.Description,
		Category:      p.Category,
		Type:          p.Type,
		Amount:        p.Amount.Amount(),
		DueDate:       p.DueDate,
		PaymentDate:   p.PaymentDate,
		PaymentMethod: p.PaymentMethod,
		Supplier:      p.Supplier,
		CostCenter:    p.CostCenter,
		Notes:         p.Notes,
		Recurring:     p.Recurring,
		Periodicity:   p.Periodicity,
	}
	if p.Recurring {
		origin := e.ID
		e.RecurrenceOriginID = &origin
	}
	e.RecomputeStatus(time.Now())
	return e, nil
}

// Update replaces the expense's fields after validation
func (e *Expense) Update(p NewExpenseParams) error {
	if err := validateParams(p); err != nil {
		return err
	}

	e.Description = p.Description
	e.Category = p.Category
	e.Type = p.Type
	e.Amount = p.Amount.Amount()
	e.DueDate = p.DueDate
	e.PaymentDate = p.PaymentDate
	e.PaymentMethod = p.PaymentMethod
	e.Supplier = p.Supplier
	e.CostCenter = p.CostCenter
	e.Notes = p.Notes
	e.Recurring = p.Recurring
	e.Periodicity = p.Periodicity
	if p.Recurring && e.RecurrenceOriginID == nil {
		origin := e.ID
		e.RecurrenceOriginID = &origin
	}
	if !p.Recurring {
		e.RecurrenceOriginID = nil
	}
	e.RecomputeStatus(time.Now())
	e.Touch()
	return nil
}

// RecomputeStatus derives the status from payment date and due date. A
// payment date always wins, even when set in the future.
func (e *Expense) RecomputeStatus(today time.Time) {
	switch {
	case e.PaymentDate != nil:
		e.Status = StatusPaid
	case e.DueDate.Before(truncateToDay(today)):
		e.Status = StatusOverdue
	default:
		e.Status = StatusPending
	}
}

// SeriesID returns the id grouping this expense's recurrence series
func (e *Expense) SeriesID() uuid.UUID {
	if e.RecurrenceOriginID != nil {
		return *e.RecurrenceOriginID
	}
	return e.ID
}

// AmountMoney returns the amount as a Money value object
func (e *Expense) AmountMoney() valueobject.Money {
	return valueobject.NewMoney(e.Amount)
}

func validateParams(p NewExpenseParams) error {
	if p.Description == "" {
		return shared.NewValidationError("Expense description cannot be empty")
	}
	if !p.Category.IsValid() {
		return shared.NewValidationError("Expense category is not valid")
	}
	if !p.Type.IsValid() {
		return shared.NewValidationError("Expense type must be fixed or variable")
	}
	if !p.Amount.IsPositive() {
		return shared.NewValidationError("Expense amount must be positive")
	}
	if p.DueDate.IsZero() {
		return shared.NewValidationError("Expense due date is required")
	}
	if !p.PaymentMethod.IsValid() {
		return shared.NewValidationError("Expense payment method is not valid")
	}
	if p.Recurring {
		if p.Periodicity == nil || !p.Periodicity.IsValid() {
			return shared.NewValidationError("A recurring expense requires a valid periodicity")
		}
	} else if p.Periodicity != nil {
		return shared.NewValidationError("Periodicity is only allowed on recurring expenses")
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
