package deposit_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/amirasaad/invest/infra/eventbus"
	infrarepo "github.com/amirasaad/invest/infra/repository"
	"github.com/amirasaad/invest/internal/fixtures"
	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/domain/events"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/amirasaad/invest/pkg/service/deposit"
	"github.com/amirasaad/invest/pkg/storage"
	"github.com/amirasaad/invest/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type memStore struct {
	objects map[string]bool
}

func (m *memStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	m.objects[key] = true
	return "/uploads/" + key, nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

type DepositTestSuite struct {
	suite.Suite
	uow   *infrarepo.UoW
	bus   *eventbus.MemoryEventBus
	store *memStore
	svc   *deposit.Service
	user  *domain.User
	admin *domain.User
	inv   *domain.Investment
	ctx   context.Context
}

func (s *DepositTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.uow, _ = fixtures.NewUoW(s.T())
	s.bus = eventbus.NewWithMemory(testutils.DiscardLogger(), eventbus.WithRecording())
	s.store = &memStore{objects: map[string]bool{}}
	uploader := storage.NewUploader(s.store, storage.Policy{MaxSize: 1 << 20, AllowedTypes: []string{".png", ".pdf"}})
	s.svc = deposit.New(s.uow, uploader, s.bus, testutils.DiscardLogger())
	s.user = fixtures.User(s.T(), s.uow, "user@example.com", domain.RoleUser)
	s.admin = fixtures.User(s.T(), s.uow, "admin@example.com", domain.RoleAdmin)
	s.inv = fixtures.Investment(s.T(), s.uow, "6 months")
}

func receipt() *storage.Upload {
	return &storage.Upload{Filename: "receipt.png", Size: int64(len(fixtures.PNG)), ContentType: "image/png", Body: bytes.NewReader(fixtures.PNG)}
}

func (s *DepositTestSuite) create(amount int64) *domain.Deposit {
	d, err := s.svc.Create(s.ctx, s.user.ID, deposit.CreateInput{
		InvestmentID: s.inv.ID,
		Amount:       decimal.NewFromInt(amount),
		Network:      "TRC20",
		Receipt:      receipt(),
	})
	s.Require().NoError(err)
	return d
}

func TestDepositTestSuite(t *testing.T) {
	suite.Run(t, new(DepositTestSuite))
}

func (s *DepositTestSuite) TestCreate_NotifiesUserAndAdmins() {
	d := s.create(500)
	s.Equal(domain.FundingPending, d.Status)
	s.True(strings.HasPrefix(d.Receipt, "/uploads/receipts/"))
	s.Len(s.store.objects, 1)

	s.Len(fixtures.Notifications(s.T(), s.uow, s.user.ID), 1)
	s.Len(fixtures.Notifications(s.T(), s.uow, s.admin.ID), 1)

	s.Require().Len(s.bus.Published(), 1)
	s.IsType(events.DepositSubmitted{}, s.bus.Published()[0])
}

func (s *DepositTestSuite) TestCreate_Rejections() {
	cases := []struct {
		name string
		in   deposit.CreateInput
		want error
	}{
		{"below minimum", deposit.CreateInput{InvestmentID: s.inv.ID, Amount: decimal.NewFromInt(50), Network: "TRC20", Receipt: receipt()}, domain.ErrBelowMinimum},
		{"zero", deposit.CreateInput{InvestmentID: s.inv.ID, Amount: decimal.Zero, Network: "TRC20", Receipt: receipt()}, domain.ErrInvalidAmount},
		{"no network", deposit.CreateInput{InvestmentID: s.inv.ID, Amount: decimal.NewFromInt(500), Receipt: receipt()}, domain.ErrValidation},
		{"no receipt", deposit.CreateInput{InvestmentID: s.inv.ID, Amount: decimal.NewFromInt(500), Network: "TRC20"}, domain.ErrValidation},
		{"bad receipt type", deposit.CreateInput{InvestmentID: s.inv.ID, Amount: decimal.NewFromInt(500), Network: "TRC20",
			Receipt: &storage.Upload{Filename: "x.exe", Size: 1, Body: strings.NewReader("x")}}, domain.ErrValidation},
		{"unknown investment", deposit.CreateInput{InvestmentID: uuid.New(), Amount: decimal.NewFromInt(500), Network: "TRC20", Receipt: receipt()}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.svc.Create(s.ctx, s.user.ID, tc.in)
			s.ErrorIs(err, tc.want)
		})
	}
	s.Empty(s.store.objects)
}

func (s *DepositTestSuite) TestCreate_ClosedInvestment() {
	s.inv.Status = domain.InvestmentClosed
	s.Require().NoError(s.uow.InvestmentRepository().Update(s.ctx, s.inv))
	_, err := s.svc.Create(s.ctx, s.user.ID, deposit.CreateInput{
		InvestmentID: s.inv.ID, Amount: decimal.NewFromInt(500), Network: "TRC20", Receipt: receipt(),
	})
	s.ErrorIs(err, domain.ErrInvestmentClosed)
}

func (s *DepositTestSuite) TestConfirm_OpensCommitment() {
	d := s.create(1000)

	resolved, ui, err := s.svc.Resolve(s.ctx, d.ID, domain.FundingConfirmed)
	s.Require().NoError(err)
	s.Equal(domain.FundingConfirmed, resolved.Status)
	s.Require().NotNil(ui)
	s.Equal(d.ID, *ui.DepositID)
	s.True(decimal.NewFromInt(1100).Equal(ui.ReturnAmount))
	s.Equal(ui.StartDate.AddDate(0, 6, 0), ui.EndDate)

	u, err := s.uow.UserRepository().Get(s.ctx, s.user.ID)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(1000).Equal(u.Balance))

	inv, err := s.uow.InvestmentRepository().Get(s.ctx, s.inv.ID)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(1000).Equal(inv.CurrentAmount))

	list, total, err := s.uow.UserInvestmentRepository().List(s.ctx, repository.ListFilter{UserID: &s.user.ID})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal(ui.ID, list[0].ID)

	ev, ok := s.bus.Published()[len(s.bus.Published())-1].(events.DepositResolved)
	s.Require().True(ok)
	s.Require().NotNil(ev.UserInvestmentID)
	s.Equal(ui.ID, *ev.UserInvestmentID)
}

func (s *DepositTestSuite) TestConfirmTwice_NoSecondCommitment() {
	d := s.create(1000)
	_, _, err := s.svc.Resolve(s.ctx, d.ID, domain.FundingConfirmed)
	s.Require().NoError(err)

	_, _, err = s.svc.Resolve(s.ctx, d.ID, domain.FundingConfirmed)
	s.ErrorIs(err, domain.ErrAlreadyProcessed)
	_, _, err = s.svc.Resolve(s.ctx, d.ID, domain.FundingRejected)
	s.ErrorIs(err, domain.ErrAlreadyProcessed)

	_, total, err := s.uow.UserInvestmentRepository().List(s.ctx, repository.ListFilter{UserID: &s.user.ID})
	s.Require().NoError(err)
	s.Equal(int64(1), total)

	u, err := s.uow.UserRepository().Get(s.ctx, s.user.ID)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(1000).Equal(u.Balance))
}

func (s *DepositTestSuite) TestReject_NoLedgerChange() {
	d := s.create(1000)
	resolved, ui, err := s.svc.Resolve(s.ctx, d.ID, domain.FundingRejected)
	s.Require().NoError(err)
	s.Nil(ui)
	s.Equal(domain.FundingRejected, resolved.Status)

	u, err := s.uow.UserRepository().Get(s.ctx, s.user.ID)
	s.Require().NoError(err)
	s.True(u.Balance.IsZero())
	inv, err := s.uow.InvestmentRepository().Get(s.ctx, s.inv.ID)
	s.Require().NoError(err)
	s.True(inv.CurrentAmount.IsZero())

	notes := fixtures.Notifications(s.T(), s.uow, s.user.ID)
	s.Len(notes, 2)
}

func (s *DepositTestSuite) TestResolve_InvalidTarget() {
	d := s.create(1000)
	_, _, err := s.svc.Resolve(s.ctx, d.ID, domain.FundingPending)
	s.ErrorIs(err, domain.ErrInvalidStatus)
	_, _, err = s.svc.Resolve(s.ctx, uuid.New(), domain.FundingConfirmed)
	s.ErrorIs(err, domain.ErrNotFound)
}

type failingStore struct{ memStore }

func (f *failingStore) Put(context.Context, string, io.Reader, int64, string) (string, error) {
	return "", errors.New("disk full")
}

func TestCreate_UploadFailure(t *testing.T) {
	uow, _ := fixtures.NewUoW(t)
	u := fixtures.User(t, uow, "user@example.com", domain.RoleUser)
	inv := fixtures.Investment(t, uow, "6 months")
	uploader := storage.NewUploader(&failingStore{}, storage.Policy{MaxSize: 100, AllowedTypes: []string{".png"}})
	svc := deposit.New(uow, uploader, nil, testutils.DiscardLogger())

	_, err := svc.Create(context.Background(), u.ID, deposit.CreateInput{
		InvestmentID: inv.ID, Amount: decimal.NewFromInt(500), Network: "TRC20", Receipt: receipt(),
	})
	require.Error(t, err)
	list, _, err := uow.DepositRepository().List(context.Background(), repository.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}
