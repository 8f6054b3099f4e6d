package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/service/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type revokedSet map[string]bool

func (r revokedSet) IsRevoked(_ context.Context, raw string) (bool, error) { return r[raw], nil }

var jwtCfg = &config.Jwt{Secret: "test-secret", Expiry: time.Hour}

func token(t *testing.T, role domain.Role) string {
	t.Helper()
	raw, _, err := auth.NewJWTStrategy(jwtCfg).GenerateToken(&domain.User{ID: uuid.New(), Email: "a@example.com", Role: role})
	require.NoError(t, err)
	return raw
}

func newApp(revoked revokedSet) *fiber.App {
	app := fiber.New()
	app.Get("/me", JwtProtected(jwtCfg, revoked), func(c *fiber.Ctx) error {
		ident, _ := CurrentIdentity(c)
		return c.SendString(ident.Email)
	})
	app.Get("/admin", JwtProtected(jwtCfg, revoked), AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/open", OptionalJwt(auth.NewJWTStrategy(jwtCfg), revoked), func(c *fiber.Ctx) error {
		if _, ok := CurrentIdentity(c); ok {
			return c.SendString("known")
		}
		return c.SendString("anonymous")
	})
	return app
}

func do(t *testing.T, app *fiber.App, path string, mutate func(*http.Request)) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if mutate != nil {
		mutate(req)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func bearer(raw string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+raw) }
}

func TestJwtProtected(t *testing.T) {
	user := token(t, domain.RoleUser)
	revokedTok := token(t, domain.RoleUser)
	app := newApp(revokedSet{revokedTok: true})

	assert.Equal(t, fiber.StatusBadRequest, do(t, app, "/me", nil).StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "/me", bearer("garbage.token.here")).StatusCode)
	assert.Equal(t, fiber.StatusOK, do(t, app, "/me", bearer(user)).StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "/me", bearer(revokedTok)).StatusCode)

	cookie := do(t, app, "/me", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: TokenCookie, Value: user})
	})
	assert.Equal(t, fiber.StatusOK, cookie.StatusCode)
}

func TestAdminOnly(t *testing.T) {
	app := newApp(revokedSet{})
	assert.Equal(t, fiber.StatusForbidden, do(t, app, "/admin", bearer(token(t, domain.RoleUser))).StatusCode)
	assert.Equal(t, fiber.StatusOK, do(t, app, "/admin", bearer(token(t, domain.RoleAdmin))).StatusCode)
}

func TestOptionalJwt(t *testing.T) {
	app := newApp(revokedSet{})
	read := func(resp *http.Response) string {
		buf := make([]byte, 16)
		n, _ := resp.Body.Read(buf)
		return string(buf[:n])
	}
	assert.Equal(t, "anonymous", read(do(t, app, "/open", nil)))
	assert.Equal(t, "anonymous", read(do(t, app, "/open", bearer("bad"))))
	assert.Equal(t, "known", read(do(t, app, "/open", bearer(token(t, domain.RoleUser)))))
}
