package user_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/amirasaad/invest/internal/fixtures"
	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/webapi/common"
	"github.com/amirasaad/invest/webapi/dto"
	"github.com/amirasaad/invest/webapi/testutils"
	"github.com/stretchr/testify/suite"
)

type UserTestSuite struct {
	testutils.E2ETestSuite
	user       *domain.User
	admin      *domain.User
	userToken  string
	adminToken string
}

func TestUserTestSuite(t *testing.T) {
	suite.Run(t, new(UserTestSuite))
}

func (s *UserTestSuite) SetupTest() {
	s.E2ETestSuite.SetupTest()
	s.user = s.SeedUser(domain.RoleUser)
	s.admin = s.SeedUser(domain.RoleAdmin)
	s.userToken = s.LoginUser(s.user)
	s.adminToken = s.LoginUser(s.admin)
}

func (s *UserTestSuite) TestUpdateProfile() {
	var u dto.UserDTO
	s.Decode(s.MakeRequest(http.MethodPut, "/api/users/me", `{"first_name":"Grace","country":"UK"}`, s.userToken),
		http.StatusOK, &u)
	s.Equal("Grace", u.FirstName)
	s.Equal("UK", u.Country)
	s.Equal("User", u.LastName)
}

func (s *UserTestSuite) TestChangePassword() {
	s.Problem(s.MakeRequest(http.MethodPut, "/api/users/me/password",
		`{"current_password":"wrong","new_password":"another1"}`, s.userToken), http.StatusBadRequest)

	body := fmt.Sprintf(`{"current_password":%q,"new_password":"another1"}`, fixtures.DefaultPassword)
	s.Decode(s.MakeRequest(http.MethodPut, "/api/users/me/password", body, s.userToken), http.StatusOK, nil)

	signin := fmt.Sprintf(`{"email":%q,"password":"another1"}`, s.user.Email)
	s.Decode(s.MakeRequest(http.MethodPost, "/api/auth/signin", signin, ""), http.StatusOK, nil)
}

func (s *UserTestSuite) TestAdminUsers() {
	s.Problem(s.MakeRequest(http.MethodGet, "/api/admin/users", "", s.userToken), http.StatusForbidden)

	var page common.Page[dto.UserDTO]
	s.Decode(s.MakeRequest(http.MethodGet, "/api/admin/users", "", s.adminToken), http.StatusOK, &page)
	s.Equal(int64(2), page.Total)

	var u dto.UserDTO
	s.Decode(s.MakeRequest(http.MethodPut, fmt.Sprintf("/api/admin/users/%s/balance", s.user.ID),
		`{"balance":250.5,"roi":10}`, s.adminToken), http.StatusOK, &u)
	s.InDelta(250.5, u.Balance, 0.001)
	s.InDelta(10.0, u.ROI, 0.001)

	s.Problem(s.MakeRequest(http.MethodPut, fmt.Sprintf("/api/admin/users/%s/balance", s.user.ID),
		`{"balance":-1}`, s.adminToken), http.StatusBadRequest)

	var stats dto.StatsDTO
	s.Decode(s.MakeRequest(http.MethodGet, "/api/admin/stats", "", s.adminToken), http.StatusOK, &stats)
	s.Equal(int64(2), stats.Users)

	// Admins cannot delete themselves.
	s.Problem(s.MakeRequest(http.MethodDelete, "/api/admin/users/"+s.admin.ID.String(), "", s.adminToken),
		http.StatusForbidden)
	s.Decode(s.MakeRequest(http.MethodDelete, "/api/admin/users/"+s.user.ID.String(), "", s.adminToken),
		http.StatusOK, nil)
	s.Problem(s.MakeRequest(http.MethodGet, "/api/admin/users/"+s.user.ID.String(), "", s.adminToken),
		http.StatusNotFound)
}
