package withdrawal_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/amirasaad/invest/internal/fixtures"
	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/webapi/common"
	"github.com/amirasaad/invest/webapi/dto"
	"github.com/amirasaad/invest/webapi/testutils"
	"github.com/stretchr/testify/suite"
)

const bankDestination = `{"type":"BANK","bank_name":"First Bank","account_name":"Test User","account_number":"0123456789"}`

type WithdrawalTestSuite struct {
	testutils.E2ETestSuite
	user       *domain.User
	userToken  string
	adminToken string
	ui         *domain.UserInvestment
}

func TestWithdrawalTestSuite(t *testing.T) {
	suite.Run(t, new(WithdrawalTestSuite))
}

func (s *WithdrawalTestSuite) SetupTest() {
	s.E2ETestSuite.SetupTest()
	s.user = s.SeedUser(domain.RoleUser)
	admin := s.SeedUser(domain.RoleAdmin)
	inv := fixtures.Investment(s.T(), s.Uow, "6 months")
	s.ui = fixtures.UserInvestment(s.T(), s.Uow, s.user, inv, fixtures.Dec("1000"), fixtures.Dec("100"), time.Now().UTC())
	s.userToken = s.LoginUser(s.user)
	s.adminToken = s.LoginUser(admin)
}

func (s *WithdrawalTestSuite) request(amount string) *http.Response {
	body := fmt.Sprintf(`{"user_investment_id":%q,"amount":%s,"destination":%s}`, s.ui.ID, amount, bankDestination)
	return s.MakeRequest(http.MethodPost, "/api/withdrawals/request", body, s.userToken)
}

func (s *WithdrawalTestSuite) TestRequestThenReject_RestoresROI() {
	var w dto.WithdrawalDTO
	s.Decode(s.request("60"), http.StatusCreated, &w)
	s.Equal("PENDING", w.Status)
	s.True(s.Reload(s.user).ROI.Equal(fixtures.Dec("40")))

	// One pending request per commitment.
	s.Problem(s.request("10"), http.StatusBadRequest)

	var mine common.Page[dto.WithdrawalDTO]
	s.Decode(s.MakeRequest(http.MethodGet, "/api/withdrawals", "", s.userToken), http.StatusOK, &mine)
	s.Equal(int64(1), mine.Total)

	s.Decode(s.MakeRequest(http.MethodPut, fmt.Sprintf("/api/withdrawals/admin/%s/status", w.ID),
		`{"status":"REJECTED"}`, s.adminToken), http.StatusOK, &w)
	s.Equal("REJECTED", w.Status)
	s.True(s.Reload(s.user).ROI.Equal(fixtures.Dec("100")))
}

func (s *WithdrawalTestSuite) TestRequest_Refusals() {
	s.Problem(s.request("500"), http.StatusBadRequest)

	body := fmt.Sprintf(`{"user_investment_id":%q,"amount":10,"destination":{"type":"BANK"}}`, s.ui.ID)
	s.Problem(s.MakeRequest(http.MethodPost, "/api/withdrawals/request", body, s.userToken), http.StatusBadRequest)

	body = fmt.Sprintf(`{"user_investment_id":%q,"amount":10,"destination":{"type":"CHEQUE"}}`, s.ui.ID)
	s.Problem(s.MakeRequest(http.MethodPost, "/api/withdrawals/request", body, s.userToken), http.StatusBadRequest)

	other := s.SeedUser(domain.RoleUser)
	otherToken := s.LoginUser(other)
	body = fmt.Sprintf(`{"user_investment_id":%q,"amount":10,"destination":%s}`, s.ui.ID, bankDestination)
	s.Problem(s.MakeRequest(http.MethodPost, "/api/withdrawals/request", body, otherToken), http.StatusNotFound)
}

func (s *WithdrawalTestSuite) TestApproveAndProcess() {
	var w dto.WithdrawalDTO
	s.Decode(s.request("100"), http.StatusCreated, &w)

	path := fmt.Sprintf("/api/withdrawals/admin/%s/status", w.ID)
	s.Problem(s.MakeRequest(http.MethodPut, path, `{"status":"APPROVED"}`, s.userToken), http.StatusForbidden)
	s.Decode(s.MakeRequest(http.MethodPut, path, `{"status":"APPROVED"}`, s.adminToken), http.StatusOK, &w)
	s.Equal("APPROVED", w.Status)
	s.Decode(s.MakeRequest(http.MethodPut, path, `{"status":"PROCESSED"}`, s.adminToken), http.StatusOK, &w)
	s.Equal("PROCESSED", w.Status)
	s.Problem(s.MakeRequest(http.MethodPut, path, `{"status":"PENDING"}`, s.adminToken), http.StatusBadRequest)
}

func (s *WithdrawalTestSuite) TestPrincipal_RequiresMaturity() {
	path := fmt.Sprintf("/api/withdrawals/principal/%s", s.ui.ID)
	s.Problem(s.MakeRequest(http.MethodPost, path, "", s.userToken), http.StatusBadRequest)

	inv := fixtures.Investment(s.T(), s.Uow, "6 months")
	matured := fixtures.UserInvestment(s.T(), s.Uow, s.user, inv, fixtures.Dec("500"), fixtures.Dec("0"),
		time.Now().UTC().AddDate(-1, 0, 0))
	var ui dto.UserInvestmentDTO
	s.Decode(s.MakeRequest(http.MethodPost, fmt.Sprintf("/api/withdrawals/principal/%s", matured.ID), "", s.userToken),
		http.StatusOK, &ui)
	s.Equal("COMPLETED", ui.Status)
	s.True(s.Reload(s.user).Balance.Equal(fixtures.Dec("550")))
}

func (s *WithdrawalTestSuite) TestReferralWithdrawal() {
	body := `{"amount":100,"destination":{"type":"WALLET","wallet_address":"TXyz","network":"TRC20"}}`
	s.Problem(s.MakeRequest(http.MethodPost, "/api/referral-withdrawals", body, s.userToken), http.StatusBadRequest)

	ctx := context.Background()
	u := s.Reload(s.user)
	for i := 0; i < 10; i++ {
		u.CreditReferral(fixtures.Dec("50"))
	}
	s.Require().NoError(s.Uow.UserRepository().UpdateLedger(ctx, u))

	var w dto.ReferralWithdrawalDTO
	s.Decode(s.MakeRequest(http.MethodPost, "/api/referral-withdrawals", body, s.userToken), http.StatusCreated, &w)
	s.True(s.Reload(s.user).ReferralBonus.Equal(fixtures.Dec("400")))

	var all common.Page[dto.ReferralWithdrawalDTO]
	s.Decode(s.MakeRequest(http.MethodGet, "/api/admin/referral-withdrawals", "", s.adminToken), http.StatusOK, &all)
	s.Len(all.Items, 1)

	s.Decode(s.MakeRequest(http.MethodPut, fmt.Sprintf("/api/admin/referral-withdrawals/%s/status", w.ID),
		`{"status":"REJECTED"}`, s.adminToken), http.StatusOK, nil)
	s.True(s.Reload(s.user).ReferralBonus.Equal(fixtures.Dec("500")))
}
