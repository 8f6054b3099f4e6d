package content_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/amirasaad/invest/internal/fixtures"
	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/service/price"
	"github.com/amirasaad/invest/webapi/common"
	"github.com/amirasaad/invest/webapi/dto"
	"github.com/amirasaad/invest/webapi/testutils"
	"github.com/stretchr/testify/suite"
)

type ContentTestSuite struct {
	testutils.E2ETestSuite
	userToken  string
	adminToken string
}

func TestContentTestSuite(t *testing.T) {
	suite.Run(t, new(ContentTestSuite))
}

func (s *ContentTestSuite) SetupTest() {
	s.E2ETestSuite.SetupTest()
	s.userToken = s.LoginUser(s.SeedUser(domain.RoleUser))
	s.adminToken = s.LoginUser(s.SeedUser(domain.RoleAdmin))
}

func (s *ContentTestSuite) TestPrices() {
	var snap price.Snapshot
	s.Decode(s.MakeRequest(http.MethodGet, "/api/prices", "", ""), http.StatusOK, &snap)
	s.InDelta(65000.0, snap.Prices["bitcoin"], 0.001)
	s.False(snap.Stale)
}

func (s *ContentTestSuite) TestPrices_UpstreamDown() {
	s.Prices.Err = errors.New("connection refused")
	s.Problem(s.MakeRequest(http.MethodGet, "/api/prices", "", ""), http.StatusBadGateway)
}

func (s *ContentTestSuite) TestNews_DraftsHiddenFromPublic() {
	var draft dto.NewsDTO
	resp := s.MakeMultipart(http.MethodPost, "/api/news", map[string]string{
		"title":     "Quarterly update",
		"body":      "Returns were steady.",
		"published": "false",
	}, "image", "cover.png", fixtures.PNG, s.adminToken)
	s.Decode(resp, http.StatusCreated, &draft)
	s.False(draft.Published)
	s.NotEmpty(draft.ImageURL)

	var public common.Page[dto.NewsDTO]
	s.Decode(s.MakeRequest(http.MethodGet, "/api/news", "", ""), http.StatusOK, &public)
	s.Empty(public.Items)
	s.Problem(s.MakeRequest(http.MethodGet, "/api/news/"+draft.ID, "", ""), http.StatusNotFound)

	var all common.Page[dto.NewsDTO]
	s.Decode(s.MakeRequest(http.MethodGet, "/api/news?all=true", "", s.adminToken), http.StatusOK, &all)
	s.Len(all.Items, 1)

	resp = s.MakeMultipart(http.MethodPut, "/api/news/"+draft.ID, map[string]string{"published": "true"},
		"", "", nil, s.adminToken)
	s.Decode(resp, http.StatusOK, nil)
	s.Decode(s.MakeRequest(http.MethodGet, "/api/news/"+draft.ID, "", ""), http.StatusOK, nil)

	s.Problem(s.MakeRequest(http.MethodDelete, "/api/news/"+draft.ID, "", s.userToken), http.StatusForbidden)
	s.Decode(s.MakeRequest(http.MethodDelete, "/api/news/"+draft.ID, "", s.adminToken), http.StatusOK, nil)
}

func (s *ContentTestSuite) TestMessages() {
	body := `{"name":"Guest","email":"guest@example.com","message":"How do I invest?"}`
	var m dto.MessageDTO
	s.Decode(s.MakeRequest(http.MethodPost, "/api/messages", body, ""), http.StatusCreated, &m)
	s.Nil(m.UserID)
	s.Equal("General enquiry", m.Subject)

	s.Decode(s.MakeRequest(http.MethodPost, "/api/messages", `{"message":"Signed in question"}`, s.userToken),
		http.StatusCreated, &m)
	s.NotNil(m.UserID)

	s.Problem(s.MakeRequest(http.MethodPost, "/api/messages", `{"name":"x","email":"x@example.com"}`, ""),
		http.StatusBadRequest)

	var inbox common.Page[dto.MessageDTO]
	s.Decode(s.MakeRequest(http.MethodGet, "/api/admin/messages", "", s.adminToken), http.StatusOK, &inbox)
	s.Equal(int64(2), inbox.Total)

	s.Decode(s.MakeRequest(http.MethodPut, fmt.Sprintf("/api/admin/messages/%s/read", m.ID), "", s.adminToken),
		http.StatusOK, nil)
	s.Decode(s.MakeRequest(http.MethodDelete, "/api/admin/messages/"+m.ID, "", s.adminToken), http.StatusOK, nil)
	s.Problem(s.MakeRequest(http.MethodDelete, "/api/admin/messages/"+m.ID, "", s.adminToken), http.StatusNotFound)
}

func (s *ContentTestSuite) TestWallets() {
	var w dto.WalletDTO
	s.Decode(s.MakeRequest(http.MethodPost, "/api/admin/wallets",
		`{"network":"TRC20","address":"TXabc","label":"USDT"}`, s.adminToken), http.StatusCreated, &w)
	s.True(w.Active)

	var list []dto.WalletDTO
	s.Decode(s.MakeRequest(http.MethodGet, "/api/wallets", "", s.userToken), http.StatusOK, &list)
	s.Len(list, 1)

	s.Decode(s.MakeRequest(http.MethodPut, "/api/admin/wallets/"+w.ID, `{"active":false}`, s.adminToken),
		http.StatusOK, &w)
	s.False(w.Active)

	s.Decode(s.MakeRequest(http.MethodGet, "/api/wallets", "", s.userToken), http.StatusOK, &list)
	s.Empty(list)
	s.Decode(s.MakeRequest(http.MethodGet, "/api/admin/wallets", "", s.adminToken), http.StatusOK, &list)
	s.Len(list, 1)

	s.Problem(s.MakeRequest(http.MethodGet, "/api/wallets", "", ""), http.StatusBadRequest)
}
