package repository

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/amirasaad/invest/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	suite.Suite
	uow *UoW
	ctx context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	s.uow = NewUoW(testutils.NewTestDB(s.T(), Models()...))
	s.ctx = context.Background()
}

func (s *RepositoryTestSuite) newUser(email string) *domain.User {
	u, err := domain.NewUser("Test", "User", email, "password123")
	s.Require().NoError(err)
	s.Require().NoError(s.uow.UserRepository().Create(s.ctx, u))
	return u
}

func (s *RepositoryTestSuite) newInvestment() *domain.Investment {
	inv := &domain.Investment{
		ID:            uuid.New(),
		Name:          "Gold Plan",
		MinAmount:     decimal.NewFromInt(100),
		TargetAmount:  decimal.NewFromInt(100000),
		CurrentAmount: decimal.Zero,
		ReturnRate:    "70%",
		Duration:      "6 Months",
		Status:        domain.InvestmentActive,
	}
	s.Require().NoError(s.uow.InvestmentRepository().Create(s.ctx, inv))
	return inv
}

func (s *RepositoryTestSuite) TestUser_CRUD() {
	u := s.newUser("alice@example.com")
	repo := s.uow.UserRepository()

	got, err := repo.GetByEmail(s.ctx, "ALICE@example.com ")
	s.Require().NoError(err)
	s.Equal(u.ID, got.ID)
	s.True(got.Balance.IsZero())

	byCode, err := repo.GetByReferralCode(s.ctx, u.ReferralCode)
	s.Require().NoError(err)
	s.Equal(u.ID, byCode.ID)

	got.Balance = decimal.RequireFromString("123.45")
	s.Require().NoError(repo.UpdateLedger(s.ctx, got))
	got.Role = domain.RoleAdmin
	s.Require().NoError(repo.UpdateRole(s.ctx, got))

	reloaded, err := repo.Get(s.ctx, u.ID)
	s.Require().NoError(err)
	s.True(decimal.RequireFromString("123.45").Equal(reloaded.Balance), reloaded.Balance.String())
	s.Equal(domain.RoleAdmin, reloaded.Role)

	missing := *got
	missing.ID = uuid.New()
	s.ErrorIs(repo.UpdateProfile(s.ctx, &missing), domain.ErrNotFound)

	admins, err := repo.ListAdmins(s.ctx)
	s.Require().NoError(err)
	s.Len(admins, 1)

	_, err = repo.Get(s.ctx, uuid.New())
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *RepositoryTestSuite) TestUser_UpdatesTouchOnlyTheirColumns() {
	u := s.newUser("cols@example.com")
	repo := s.uow.UserRepository()

	stale, err := repo.Get(s.ctx, u.ID)
	s.Require().NoError(err)

	fresh, err := repo.Get(s.ctx, u.ID)
	s.Require().NoError(err)
	fresh.ROI = decimal.NewFromInt(75)
	fresh.Balance = decimal.NewFromInt(40)
	s.Require().NoError(repo.UpdateLedger(s.ctx, fresh))

	stale.FirstName = "Renamed"
	s.Require().NoError(repo.UpdateProfile(s.ctx, stale))
	s.Require().NoError(stale.SetPassword("another-pass"))
	s.Require().NoError(repo.UpdateCredentials(s.ctx, stale))

	got, err := repo.Get(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("Renamed", got.FirstName)
	s.True(got.CheckPassword("another-pass"))
	s.True(decimal.NewFromInt(75).Equal(got.ROI), got.ROI.String())
	s.True(decimal.NewFromInt(40).Equal(got.Balance), got.Balance.String())
}

func (s *RepositoryTestSuite) TestUser_DuplicateEmail() {
	s.newUser("dup@example.com")
	u, err := domain.NewUser("Other", "User", "dup@example.com", "password123")
	s.Require().NoError(err)
	err = s.uow.UserRepository().Create(s.ctx, u)
	s.ErrorIs(err, domain.ErrAlreadyExists)
}

func (s *RepositoryTestSuite) TestUser_DeleteCascades() {
	u := s.newUser("gone@example.com")
	inv := s.newInvestment()
	ui := domain.NewUserInvestment(u.ID, inv, decimal.NewFromInt(500), time.Now().UTC())
	s.Require().NoError(s.uow.UserInvestmentRepository().Create(s.ctx, ui))
	s.Require().NoError(s.uow.NotificationRepository().Create(s.ctx, &domain.Notification{
		ID: uuid.New(), UserID: u.ID, Type: domain.NotifySystem, Title: "hi",
	}))

	err := s.uow.Do(s.ctx, func(tx repository.UnitOfWork) error {
		return tx.UserRepository().Delete(s.ctx, u.ID)
	})
	s.Require().NoError(err)

	_, err = s.uow.UserInvestmentRepository().Get(s.ctx, ui.ID)
	s.ErrorIs(err, domain.ErrNotFound)
	n, err := s.uow.NotificationRepository().CountUnread(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Zero(n)

	s.ErrorIs(s.uow.UserRepository().Delete(s.ctx, u.ID), domain.ErrNotFound)
}

func (s *RepositoryTestSuite) TestUserInvestment_ListAndMatured() {
	u := s.newUser("bob@example.com")
	inv := s.newInvestment()
	repo := s.uow.UserInvestmentRepository()

	past := domain.NewUserInvestment(u.ID, inv, decimal.NewFromInt(100), time.Now().UTC().AddDate(-1, 0, 0))
	future := domain.NewUserInvestment(u.ID, inv, decimal.NewFromInt(200), time.Now().UTC())
	s.Require().NoError(repo.Create(s.ctx, past))
	s.Require().NoError(repo.Create(s.ctx, future))

	list, total, err := repo.List(s.ctx, repository.ListFilter{UserID: &u.ID})
	s.Require().NoError(err)
	s.EqualValues(2, total)
	s.Require().Len(list, 2)
	s.NotNil(list[0].Investment)
	s.Equal("Gold Plan", list[0].Investment.Name)

	matured, err := repo.ListMatured(s.ctx, time.Now().UTC(), 10)
	s.Require().NoError(err)
	s.Require().Len(matured, 1)
	s.Equal(past.ID, matured[0].ID)

	matured[0].MaturityNotified = true
	s.Require().NoError(repo.Update(s.ctx, matured[0]))
	matured, err = repo.ListMatured(s.ctx, time.Now().UTC(), 10)
	s.Require().NoError(err)
	s.Empty(matured)
}

func (s *RepositoryTestSuite) TestDeposit_StatsAndFilter() {
	u := s.newUser("carol@example.com")
	inv := s.newInvestment()
	repo := s.uow.DepositRepository()

	for i, status := range []domain.FundingStatus{domain.FundingPending, domain.FundingConfirmed, domain.FundingConfirmed} {
		s.Require().NoError(repo.Create(s.ctx, &domain.Deposit{
			ID:           uuid.New(),
			UserID:       u.ID,
			InvestmentID: inv.ID,
			Amount:       decimal.NewFromInt(int64(100 * (i + 1))),
			Network:      "USDT-TRC20",
			Status:       status,
		}))
	}

	pending, err := repo.CountByStatus(s.ctx, domain.FundingPending)
	s.Require().NoError(err)
	s.EqualValues(1, pending)

	total, err := repo.SumByStatus(s.ctx, domain.FundingConfirmed)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(500).Equal(total), total.String())

	list, count, err := repo.List(s.ctx, repository.ListFilter{Status: string(domain.FundingConfirmed)})
	s.Require().NoError(err)
	s.EqualValues(2, count)
	s.Require().Len(list, 2)
	s.NotNil(list[0].User)
	s.Equal("carol@example.com", list[0].User.Email)
}

func (s *RepositoryTestSuite) TestWithdrawal_DestinationRoundTrip() {
	u := s.newUser("dave@example.com")
	inv := s.newInvestment()
	ui := domain.NewUserInvestment(u.ID, inv, decimal.NewFromInt(100), time.Now().UTC())
	s.Require().NoError(s.uow.UserInvestmentRepository().Create(s.ctx, ui))

	w := &domain.Withdrawal{
		ID:               uuid.New(),
		UserID:           u.ID,
		UserInvestmentID: ui.ID,
		Amount:           decimal.NewFromInt(10),
		Destination: domain.Destination{
			Type:          domain.DestinationWallet,
			WalletAddress: "TXYZ",
			Network:       "TRC20",
		},
		Status: domain.PayoutStatusPending,
	}
	s.Require().NoError(s.uow.WithdrawalRepository().Create(s.ctx, w))

	got, err := s.uow.WithdrawalRepository().Get(s.ctx, w.ID)
	s.Require().NoError(err)
	s.Equal(w.Destination, got.Destination)
	s.Require().NotNil(got.UserInvestment)
	s.Equal(ui.ID, got.UserInvestment.ID)
}

func (s *RepositoryTestSuite) TestNotifications() {
	u := s.newUser("erin@example.com")
	other := s.newUser("frank@example.com")
	repo := s.uow.NotificationRepository()

	var first uuid.UUID
	for i := 0; i < 3; i++ {
		n := &domain.Notification{ID: uuid.New(), UserID: u.ID, Type: domain.NotifySystem, Title: "t"}
		s.Require().NoError(repo.Create(s.ctx, n))
		if i == 0 {
			first = n.ID
		}
	}

	unread, err := repo.CountUnread(s.ctx, u.ID)
	s.Require().NoError(err)
	s.EqualValues(3, unread)

	s.ErrorIs(repo.MarkRead(s.ctx, other.ID, first), domain.ErrNotFound)
	s.Require().NoError(repo.MarkRead(s.ctx, u.ID, first))

	n, err := repo.MarkAllRead(s.ctx, u.ID)
	s.Require().NoError(err)
	s.EqualValues(2, n)

	list, total, err := repo.ListByUser(s.ctx, u.ID, repository.Pagination{Page: 1, PageSize: 2})
	s.Require().NoError(err)
	s.EqualValues(3, total)
	s.Len(list, 2)
}

func (s *RepositoryTestSuite) TestContent() {
	news := s.uow.NewsRepository()
	s.Require().NoError(news.Create(s.ctx, &domain.News{ID: uuid.New(), Title: "draft"}))
	s.Require().NoError(news.Create(s.ctx, &domain.News{ID: uuid.New(), Title: "live", Published: true}))

	_, total, err := news.List(s.ctx, true, repository.Pagination{})
	s.Require().NoError(err)
	s.EqualValues(1, total)

	wallets := s.uow.WalletRepository()
	w := &domain.Wallet{ID: uuid.New(), Network: "BTC", Address: "bc1q", Active: false}
	s.Require().NoError(wallets.Create(s.ctx, w))
	active, err := wallets.List(s.ctx, true)
	s.Require().NoError(err)
	s.Empty(active)
	s.ErrorIs(wallets.Delete(s.ctx, uuid.New()), domain.ErrNotFound)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func TestSum_EmptyTableIsZero(t *testing.T) {
	uow := NewUoW(testutils.NewTestDB(t, Models()...))
	total, err := uow.UserRepository().SumROI(context.Background())
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}
