// Package testutils runs the full HTTP stack against a private sqlite
// database for end-to-end tests.
package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	infracache "github.com/amirasaad/invest/infra/cache"
	infraeventbus "github.com/amirasaad/invest/infra/eventbus"
	infrastorage "github.com/amirasaad/invest/infra/storage"
	"github.com/amirasaad/invest/internal/fixtures"
	"github.com/amirasaad/invest/pkg/app"
	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/mail"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/amirasaad/invest/pkg/testutils"
	"github.com/amirasaad/invest/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// Mailer records every message instead of sending it.
type Mailer struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (m *Mailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *Mailer) Sent() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mail.Message(nil), m.sent...)
}

// PriceFeed is a canned price provider. Set Err to simulate an outage.
type PriceFeed struct {
	Prices map[string]float64
	Err    error
}

func (p *PriceFeed) FetchPrices(_ context.Context, _ []string) (map[string]float64, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Prices, nil
}

// E2ETestSuite builds a fresh application for every test.
type E2ETestSuite struct {
	suite.Suite
	App    *app.App
	Fiber  *fiber.App
	Uow    repository.UnitOfWork
	Bus    *infraeventbus.MemoryEventBus
	Mailer *Mailer
	Prices *PriceFeed
	Cfg    *config.App
}

// TestConfig returns a configuration suitable for in-process tests.
func TestConfig(uploadDir string) *config.App {
	return &config.App{
		Env: "test",
		Server: &config.Server{
			Scheme:      "http",
			Host:        "localhost",
			Port:        3000,
			CorsOrigins: []string{"http://localhost:5173"},
			PublicURL:   "http://localhost:5173",
		},
		Log: &config.Log{},
		DB:  &config.DB{},
		Auth: &config.Auth{
			Jwt:           &config.Jwt{Secret: "test-secret", Expiry: time.Hour},
			ResetTokenTTL: time.Hour,
		},
		Redis:     &config.Redis{},
		RateLimit: &config.RateLimit{MaxRequests: 10000, Window: time.Minute},
		Upload: &config.Upload{
			Driver:       "local",
			Dir:          uploadDir,
			MaxSize:      5 << 20,
			AllowedTypes: []string{".jpg", ".jpeg", ".png", ".pdf"},
		},
		SMTP:      &config.SMTP{},
		Captcha:   &config.Captcha{},
		PriceFeed: &config.PriceFeed{Coins: []string{"bitcoin", "ethereum"}, CacheTTL: time.Minute},
		Kafka:     &config.Kafka{},
		Referral:  &config.Referral{Bonus: 50, Threshold: 10},
		Scheduler: &config.Scheduler{MaturitySpec: "@every 15m"},
	}
}

func (s *E2ETestSuite) SetupTest() {
	t := s.T()
	s.Cfg = TestConfig(t.TempDir())
	logger := testutils.DiscardLogger()

	uow, _ := fixtures.NewUoW(t)
	s.Uow = uow
	s.Bus = infraeventbus.NewWithMemory(logger, infraeventbus.WithRecording())
	s.Mailer = &Mailer{}
	s.Prices = &PriceFeed{Prices: map[string]float64{"bitcoin": 65000, "ethereum": 3200}}

	store, err := infrastorage.NewLocalStorage(s.Cfg.Upload.Dir, "http://localhost:3000"+infrastorage.PublicPath)
	s.Require().NoError(err)

	s.App = app.New(&app.Deps{
		Uow:      uow,
		Cache:    infracache.NewMemoryCache(),
		Storage:  store,
		Mailer:   s.Mailer,
		Prices:   s.Prices,
		EventBus: s.Bus,
		Logger:   logger,
	}, s.Cfg)
	s.Fiber = webapi.SetupApp(s.App)
}

// MakeRequest is a helper for making JSON requests in tests.
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	return s.do(req, token)
}

// MakeMultipart sends fields and an optional file as multipart/form-data.
func (s *E2ETestSuite) MakeMultipart(
	method, path string,
	fields map[string]string,
	fileField, filename string,
	content []byte,
	token string,
) *http.Response {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		s.Require().NoError(w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, filename)
		s.Require().NoError(err)
		_, err = fw.Write(content)
		s.Require().NoError(err)
	}
	s.Require().NoError(w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return s.do(req, token)
}

func (s *E2ETestSuite) do(req *http.Request, token string) *http.Response {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Fiber.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// Envelope is the success response with its data left raw.
type Envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Decode asserts status and unmarshals the data field into out.
func (s *E2ETestSuite) Decode(resp *http.Response, status int, out any) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().Equal(status, resp.StatusCode, string(body))
	if out == nil {
		return
	}
	var env Envelope
	s.Require().NoError(json.Unmarshal(body, &env))
	s.Require().NoError(json.Unmarshal(env.Data, out))
}

// Problem reads a problem details body and asserts its status.
func (s *E2ETestSuite) Problem(resp *http.Response, status int) map[string]any {
	defer resp.Body.Close()
	s.Require().Equal(status, resp.StatusCode)
	s.Require().Equal("application/problem+json", resp.Header.Get("Content-Type"))
	var pd map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}

// SeedUser stores a user directly and returns it.
func (s *E2ETestSuite) SeedUser(role domain.Role) *domain.User {
	email := fmt.Sprintf("user_%s@example.com", uuid.NewString()[:8])
	return fixtures.User(s.T(), s.Uow, email, role)
}

// LoginUser signs in over HTTP and returns the JWT.
func (s *E2ETestSuite) LoginUser(u *domain.User) string {
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, u.Email, fixtures.DefaultPassword)
	var out struct {
		Token string `json:"token"`
	}
	s.Decode(s.MakeRequest(http.MethodPost, "/api/auth/signin", body, ""), http.StatusOK, &out)
	s.Require().NotEmpty(out.Token)
	return out.Token
}

// Reload reads the user's current state from the store.
func (s *E2ETestSuite) Reload(u *domain.User) *domain.User {
	fresh, err := s.Uow.UserRepository().Get(context.Background(), u.ID)
	s.Require().NoError(err)
	return fresh
}
