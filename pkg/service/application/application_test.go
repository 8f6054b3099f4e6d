package application_test

import (
	"context"
	"testing"

	"github.com/amirasaad/invest/infra/eventbus"
	"github.com/amirasaad/invest/internal/fixtures"
	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/domain/events"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/amirasaad/invest/pkg/service/application"
	"github.com/amirasaad/invest/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*application.Service, repository.UnitOfWork, *eventbus.MemoryEventBus, *domain.User, *domain.User, *domain.Investment) {
	t.Helper()
	uow, _ := fixtures.NewUoW(t)
	bus := eventbus.NewWithMemory(testutils.DiscardLogger(), eventbus.WithRecording())
	svc := application.New(uow, bus, testutils.DiscardLogger())
	u := fixtures.User(t, uow, "user@example.com", domain.RoleUser)
	admin := fixtures.User(t, uow, "admin@example.com", domain.RoleAdmin)
	inv := fixtures.Investment(t, uow, "3 months")
	return svc, uow, bus, u, admin, inv
}

func TestCreateAndApprove(t *testing.T) {
	svc, uow, bus, u, admin, inv := setup(t)
	ctx := context.Background()

	app, err := svc.Create(ctx, u.ID, application.CreateInput{InvestmentID: inv.ID, Amount: decimal.NewFromInt(2000), Note: " please "})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationPending, app.Status)
	assert.Equal(t, "please", app.Note)
	assert.Len(t, fixtures.Notifications(t, uow, admin.ID), 1)

	resolved, ui, err := svc.Resolve(ctx, app.ID, domain.ApplicationApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationApproved, resolved.Status)
	require.NotNil(t, ui)
	assert.Equal(t, app.ID, *ui.ApplicationID)
	assert.Nil(t, ui.DepositID)
	assert.True(t, decimal.NewFromInt(2200).Equal(ui.ReturnAmount))
	assert.Equal(t, ui.StartDate.AddDate(0, 3, 0), ui.EndDate)

	fresh, err := uow.InvestmentRepository().Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2000).Equal(fresh.CurrentAmount))

	user, err := uow.UserRepository().Get(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, user.Balance.IsZero())

	_, _, err = svc.Resolve(ctx, app.ID, domain.ApplicationApproved)
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	_, total, err := uow.UserInvestmentRepository().List(ctx, repository.ListFilter{UserID: &u.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	published := bus.Published()
	require.Len(t, published, 2)
	assert.IsType(t, events.ApplicationSubmitted{}, published[0])
	assert.IsType(t, events.ApplicationResolved{}, published[1])
}

func TestReject(t *testing.T) {
	svc, uow, _, u, _, inv := setup(t)
	ctx := context.Background()
	app, err := svc.Create(ctx, u.ID, application.CreateInput{InvestmentID: inv.ID, Amount: decimal.NewFromInt(500)})
	require.NoError(t, err)

	_, ui, err := svc.Resolve(ctx, app.ID, domain.ApplicationRejected)
	require.NoError(t, err)
	assert.Nil(t, ui)

	fresh, err := uow.InvestmentRepository().Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, fresh.CurrentAmount.IsZero())
	assert.Len(t, fixtures.Notifications(t, uow, u.ID), 2)

	_, _, err = svc.Resolve(ctx, app.ID, domain.ApplicationStatus("MAYBE"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _, u, _, inv := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, u.ID, application.CreateInput{InvestmentID: inv.ID, Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, domain.ErrBelowMinimum)
	_, err = svc.Create(ctx, u.ID, application.CreateInput{InvestmentID: uuid.New(), Amount: decimal.NewFromInt(500)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, uow, _, u, _, inv := setup(t)
	ctx := context.Background()
	other := fixtures.User(t, uow, "other@example.com", domain.RoleUser)

	app, err := svc.Create(ctx, u.ID, application.CreateInput{InvestmentID: inv.ID, Amount: decimal.NewFromInt(500)})
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Delete(ctx, other.ID, app.ID), domain.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, u.ID, app.ID))
	assert.ErrorIs(t, svc.Delete(ctx, u.ID, app.ID), domain.ErrNotFound)

	app, err = svc.Create(ctx, u.ID, application.CreateInput{InvestmentID: inv.ID, Amount: decimal.NewFromInt(500)})
	require.NoError(t, err)
	_, _, err = svc.Resolve(ctx, app.ID, domain.ApplicationRejected)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Delete(ctx, u.ID, app.ID), domain.ErrAlreadyProcessed)
}
