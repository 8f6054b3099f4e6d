package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/invest/internal/fixtures"
	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/repository"
	usersvc "github.com/amirasaad/invest/pkg/service/user"
	"github.com/amirasaad/invest/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestUpdateProfile(t *testing.T) {
	uow, _ := fixtures.NewUoW(t)
	svc := usersvc.NewUserService(uow, testutils.DiscardLogger())
	u := fixtures.User(t, uow, "jo@example.com", domain.RoleUser)

	got, err := svc.UpdateProfile(context.Background(), u.ID, usersvc.ProfileInput{
		FirstName: ptr(" Joanna "),
		Country:   ptr("Kenya"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Joanna", got.FirstName)
	assert.Equal(t, "User", got.LastName)
	assert.Equal(t, "Kenya", got.Country)

	_, err = svc.UpdateProfile(context.Background(), u.ID, usersvc.ProfileInput{FirstName: ptr("  ")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateProfile(context.Background(), uuid.New(), usersvc.ProfileInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetBalances(t *testing.T) {
	uow, _ := fixtures.NewUoW(t)
	svc := usersvc.NewUserService(uow, testutils.DiscardLogger())
	u := fixtures.User(t, uow, "jo@example.com", domain.RoleUser)
	ctx := context.Background()

	got, err := svc.SetBalances(ctx, u.ID, usersvc.BalanceInput{
		Balance: ptr(decimal.NewFromInt(500)),
		ROI:     ptr(decimal.NewFromInt(25)),
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(got.Balance))
	assert.True(t, decimal.NewFromInt(25).Equal(got.ROI))
	assert.True(t, got.ReferralBonus.IsZero())
	assert.Len(t, fixtures.Notifications(t, uow, u.ID), 1)

	_, err = svc.SetBalances(ctx, u.ID, usersvc.BalanceInput{Balance: ptr(decimal.NewFromInt(-1))})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeleteUser(t *testing.T) {
	uow, _ := fixtures.NewUoW(t)
	svc := usersvc.NewUserService(uow, testutils.DiscardLogger())
	admin := fixtures.User(t, uow, "admin@example.com", domain.RoleAdmin)
	u := fixtures.User(t, uow, "jo@example.com", domain.RoleUser)
	inv := fixtures.Investment(t, uow, "6 months")
	fixtures.UserInvestment(t, uow, u, inv, decimal.NewFromInt(1000), decimal.NewFromInt(10), time.Now().UTC())
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteUser(ctx, admin.ID, admin.ID), domain.ErrForbidden)
	require.NoError(t, svc.DeleteUser(ctx, admin.ID, u.ID))
	_, err := svc.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, _, err := uow.UserInvestmentRepository().List(ctx, repository.ListFilter{UserID: &u.ID})
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, svc.DeleteUser(ctx, admin.ID, u.ID), domain.ErrNotFound)
}

func TestStats(t *testing.T) {
	uow, _ := fixtures.NewUoW(t)
	svc := usersvc.NewUserService(uow, testutils.DiscardLogger())
	u := fixtures.User(t, uow, "jo@example.com", domain.RoleUser)
	inv := fixtures.Investment(t, uow, "6 months")
	fixtures.UserInvestment(t, uow, u, inv, decimal.NewFromInt(1000), decimal.NewFromInt(40), time.Now().UTC())
	ctx := context.Background()

	for _, status := range []domain.FundingStatus{domain.FundingPending, domain.FundingConfirmed, domain.FundingConfirmed} {
		require.NoError(t, uow.DepositRepository().Create(ctx, &domain.Deposit{
			ID: uuid.New(), UserID: u.ID, InvestmentID: inv.ID,
			Amount: decimal.NewFromInt(150), Network: "TRC20", Receipt: "r", Status: status,
		}))
	}

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.Users)
	assert.Equal(t, int64(1), st.PendingDeposits)
	assert.True(t, decimal.NewFromInt(300).Equal(st.ConfirmedDeposits))
	assert.True(t, decimal.NewFromInt(40).Equal(st.OutstandingROI))
	assert.Zero(t, st.PendingWithdrawals)
}

func TestCreateAdminAndSetRole(t *testing.T) {
	uow, _ := fixtures.NewUoW(t)
	svc := usersvc.NewUserService(uow, testutils.DiscardLogger())
	ctx := context.Background()

	admin, err := svc.CreateAdmin(ctx, "Root", "", "root@example.com", "supersecret")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	_, err = svc.CreateAdmin(ctx, "Root", "", "ROOT@example.com", "supersecret")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	fixtures.User(t, uow, "jo@example.com", domain.RoleUser)
	u, err := svc.SetRole(ctx, "Jo@Example.com", domain.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())

	_, err = svc.SetRole(ctx, "missing@example.com", domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.SetRole(ctx, "jo@example.com", domain.Role("ROOT"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

// interleavedUoW credits roi to the user right after the first plain Get
// inside a transaction, the way a refund committed by another request would
// land between a read and the following write.
type interleavedUoW struct {
	repository.UnitOfWork
	roi decimal.Decimal
}

func (u *interleavedUoW) Do(ctx context.Context, fn func(repository.UnitOfWork) error) error {
	return u.UnitOfWork.Do(ctx, func(tx repository.UnitOfWork) error {
		return fn(&interleavedUoW{UnitOfWork: tx, roi: u.roi})
	})
}

func (u *interleavedUoW) UserRepository() repository.UserRepository {
	return &interleavedUsers{UserRepository: u.UnitOfWork.UserRepository(), roi: u.roi}
}

type interleavedUsers struct {
	repository.UserRepository
	roi decimal.Decimal
}

func (r *interleavedUsers) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	stale, err := r.UserRepository.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	locked, err := r.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	locked.ROI = locked.ROI.Add(r.roi)
	if err := r.UpdateLedger(ctx, locked); err != nil {
		return nil, err
	}
	return stale, nil
}

func TestUpdateProfile_KeepsLedgerWrittenMeanwhile(t *testing.T) {
	uow, _ := fixtures.NewUoW(t)
	u := fixtures.User(t, uow, "jo@example.com", domain.RoleUser)
	svc := usersvc.NewUserService(&interleavedUoW{UnitOfWork: uow, roi: decimal.NewFromInt(75)}, testutils.DiscardLogger())

	_, err := svc.UpdateProfile(context.Background(), u.ID, usersvc.ProfileInput{Phone: ptr("+254700000000")})
	require.NoError(t, err)

	got, err := uow.UserRepository().Get(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "+254700000000", got.Phone)
	assert.True(t, decimal.NewFromInt(75).Equal(got.ROI), got.ROI.String())
}
