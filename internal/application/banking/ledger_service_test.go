package banking

import (
	"context"
	"testing"

	"github.com/fincontrol/backend/internal/domain/banking"
	"github.com/fincontrol/backend/internal/domain/shared"
	"github.com/fincontrol/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memAccountRepo is an in-memory AccountRepository for service tests
type memAccountRepo struct {
	accounts map[uuid.UUID]*banking.BankAccount
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: make(map[uuid.UUID]*banking.BankAccount)}
}

func (r *memAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*banking.BankAccount, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *memAccountRepo) FindAll(_ context.Context) ([]banking.BankAccount, error) {
	var out []banking.BankAccount
	for _, a := range r.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func (r *memAccountRepo) FindActive(_ context.Context) ([]banking.BankAccount, error) {
	var out []banking.BankAccount
	for _, a := range r.accounts {
		if a.Active {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memAccountRepo) Save(_ context.Context, a *banking.BankAccount) error {
	copied := *a
	r.accounts[a.ID] = &copied
	return nil
}

func (r *memAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.accounts, id)
	return nil
}

// memMovementRepo is an in-memory MovementRepository for service tests
type memMovementRepo struct {
	movements []banking.Movement
}

func (r *memMovementRepo) FindByAccount(_ context.Context, accountID uuid.UUID) ([]banking.Movement, error) {
	var out []banking.Movement
	for _, m := range r.movements {
		if m.AccountID == accountID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) FindByOrigin(_ context.Context, origin banking.OriginRef) ([]banking.Movement, error) {
	var out []banking.Movement
	for _, m := range r.movements {
		if origin.BoletoID != nil && m.BoletoID != nil && *m.BoletoID == *origin.BoletoID {
			out = append(out, m)
		}
		if origin.SaleID != nil && m.SaleID != nil && *m.SaleID == *origin.SaleID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) FindAll(_ context.Context) ([]banking.Movement, error) {
	return append([]banking.Movement(nil), r.movements...), nil
}

func (r *memMovementRepo) Add(_ context.Context, m *banking.Movement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *memMovementRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, m := range r.movements {
		if m.ID == id {
			r.movements = append(r.movements[:i], r.movements[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func newTestLedger(t *testing.T) (*LedgerService, *memAccountRepo, *memMovementRepo, uuid.UUID) {
	t.Helper()

	accountRepo := newMemAccountRepo()
	movementRepo := &memMovementRepo{}

	account, err := banking.NewBankAccount(
		"Checking", "Banco Azul", "0001", "12345-6",
		valueobject.NewMoneyFromFloat(1000),
		[]banking.PaymentMethod{banking.PaymentMethodPix, banking.PaymentMethodDebit},
	)
	require.NoError(t, err)
	require.NoError(t, accountRepo.Save(context.Background(), account))

	svc := NewLedgerService(accountRepo, movementRepo, zap.NewNop())
	return svc, accountRepo, movementRepo, account.ID
}

func TestApplyEffectDebitsAndRecords(t *testing.T) {
	svc, accountRepo, movementRepo, accountID := newTestLedger(t)
	ctx := context.Background()

	boletoID := uuid.New()
	err := svc.ApplyEffect(ctx, accountID, valueobject.NewMoneyFromFloat(250), banking.DirectionOut, "Electric bill", banking.BoletoOrigin(boletoID))
	require.NoError(t, err)

	account, err := accountRepo.FindByID(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, "750.00", account.CurrentBalance.StringFixed(2))

	movements, err := movementRepo.FindByAccount(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, banking.DirectionOut, movements[0].Direction)
	assert.True(t, banking.Reconcile(account, movements))
}

func TestApplyEffectUnknownAccount(t *testing.T) {
	svc, _, _, _ := newTestLedger(t)

	err := svc.ApplyEffect(context.Background(), uuid.New(), valueobject.NewMoneyFromFloat(10), banking.DirectionIn, "x", banking.SaleOrigin(uuid.New()))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestReverseEffectRestoresBalance(t *testing.T) {
	svc, accountRepo, movementRepo, accountID := newTestLedger(t)
	ctx := context.Background()

	boletoID := uuid.New()
	origin := banking.BoletoOrigin(boletoID)
	require.NoError(t, svc.ApplyEffect(ctx, accountID, valueobject.NewMoneyFromFloat(250), banking.DirectionOut, "Electric bill", origin))
	require.NoError(t, svc.ReverseEffect(ctx, origin))

	account, err := accountRepo.FindByID(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", account.CurrentBalance.StringFixed(2))

	movements, err := movementRepo.FindByOrigin(ctx, origin)
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestReverseEffectIsIdempotent(t *testing.T) {
	svc, accountRepo, _, accountID := newTestLedger(t)
	ctx := context.Background()

	// No movements exist for this origin, reversal is a no-op.
	require.NoError(t, svc.ReverseEffect(ctx, banking.SaleOrigin(uuid.New())))

	account, err := accountRepo.FindByID(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", account.CurrentBalance.StringFixed(2))
}
