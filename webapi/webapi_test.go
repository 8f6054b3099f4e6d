package webapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amirasaad/invest/internal/fixtures"
	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/webapi"
	"github.com/amirasaad/invest/webapi/testutils"
	"github.com/stretchr/testify/suite"
)

type WebAPITestSuite struct {
	testutils.E2ETestSuite
}

func TestWebAPITestSuite(t *testing.T) {
	suite.Run(t, new(WebAPITestSuite))
}

func (s *WebAPITestSuite) get(ip string) *http.Response {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", ip)
	resp, err := s.Fiber.Test(req)
	s.Require().NoError(err)
	return resp
}

func (s *WebAPITestSuite) TestRateLimit_PerClient() {
	s.Cfg.RateLimit.MaxRequests = 2
	s.Fiber = webapi.SetupApp(s.App)

	for i := 0; i < 2; i++ {
		resp := s.get("203.0.113.7")
		s.Equal(http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}
	s.Problem(s.get("203.0.113.7"), http.StatusTooManyRequests)

	// Other clients keep their own budget.
	resp := s.get("198.51.100.2")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *WebAPITestSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/api/investments", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp, err := s.Fiber.Test(req)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal("http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func (s *WebAPITestSuite) TestUploadsServed() {
	resp := s.MakeMultipart(http.MethodPost, "/api/transfers",
		map[string]string{"amount": "10", "bank_name": "Bank"},
		"receipt", "r.png", fixtures.PNG, s.LoginUser(s.SeedUser(domain.RoleUser)))
	var t struct {
		Receipt string `json:"receipt"`
	}
	s.Decode(resp, http.StatusCreated, &t)
	s.Require().NotEmpty(t.Receipt)

	path := t.Receipt[len("http://localhost:3000"):]
	got := s.MakeRequest(http.MethodGet, path, "", "")
	defer got.Body.Close() //nolint: errcheck
	s.Equal(http.StatusOK, got.StatusCode)
}
