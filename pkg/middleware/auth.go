// Package middleware holds the fiber middleware shared by the HTTP routes.
package middleware

import (
	"context"
	"strings"

	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/service/auth"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenCookie is the cookie signin sets alongside the JSON token.
	TokenCookie = "token"
	tokenKey    = "user"
	identityKey = "identity"
)

// RevocationChecker reports whether a raw token was signed out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, raw string) (bool, error)
}

// JwtProtected rejects requests without a valid, unrevoked token. The token
// is read from the Authorization header, then the token cookie.
func JwtProtected(cfg *config.Jwt, revoked RevocationChecker) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.Secret)},
		ContextKey:   tokenKey,
		TokenLookup:  "header:Authorization,cookie:" + TokenCookie,
		AuthScheme:   "Bearer",
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, _ := c.Locals(tokenKey).(*jwt.Token)
			ident, err := auth.IdentityFromToken(token)
			if err != nil {
				return problem(c, fiber.StatusUnauthorized, "Invalid or expired JWT")
			}
			if revoked != nil {
				gone, err := revoked.IsRevoked(c.UserContext(), token.Raw)
				if err != nil {
					return problem(c, fiber.StatusInternalServerError, "Could not check session")
				}
				if gone {
					return problem(c, fiber.StatusUnauthorized, "Session has been signed out")
				}
			}
			c.Locals(identityKey, ident)
			return c.Next()
		},
	})
}

// OptionalJwt attaches the caller's identity when a valid token is sent and
// lets anonymous requests through.
func OptionalJwt(strategy *auth.JWTStrategy, revoked RevocationChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := RawToken(c)
		if raw == "" {
			return c.Next()
		}
		token, err := strategy.ParseToken(raw)
		if err != nil {
			return c.Next()
		}
		if revoked != nil {
			if gone, err := revoked.IsRevoked(c.UserContext(), raw); err != nil || gone {
				return c.Next()
			}
		}
		if ident, err := auth.IdentityFromToken(token); err == nil {
			c.Locals(tokenKey, token)
			c.Locals(identityKey, ident)
		}
		return c.Next()
	}
}

// AdminOnly must run after JwtProtected.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, ok := CurrentIdentity(c)
		if !ok {
			return problem(c, fiber.StatusUnauthorized, "Missing identity")
		}
		if !ident.IsAdmin() {
			return problem(c, fiber.StatusForbidden, "Admin access required")
		}
		return c.Next()
	}
}

// CurrentIdentity returns the identity set by JwtProtected or OptionalJwt.
func CurrentIdentity(c *fiber.Ctx) (auth.Identity, bool) {
	ident, ok := c.Locals(identityKey).(auth.Identity)
	return ident, ok
}

// CurrentToken returns the verified token, if any.
func CurrentToken(c *fiber.Ctx) (*jwt.Token, bool) {
	token, ok := c.Locals(tokenKey).(*jwt.Token)
	return token, ok && token != nil
}

// RawToken reads a bearer token from the header or the token cookie
// without verifying it.
func RawToken(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		if scheme, rest, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(rest)
		}
	}
	return c.Cookies(TokenCookie)
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == jwtware.ErrJWTMissingOrMalformed.Error() {
		return problem(c, fiber.StatusBadRequest, "Missing or malformed JWT")
	}
	return problem(c, fiber.StatusUnauthorized, "Invalid or expired JWT")
}

func problem(c *fiber.Ctx, status int, title string) error {
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(fiber.Map{
		"type":     "about:blank",
		"title":    title,
		"status":   status,
		"instance": c.OriginalURL(),
	})
}
