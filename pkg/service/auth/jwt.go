package auth

import (
	"fmt"
	"time"

	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is what a verified token says about its bearer.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	Role      domain.Role
	ExpiresAt time.Time
}

func (i Identity) IsAdmin() bool { return i.Role == domain.RoleAdmin }

// JWTStrategy issues and reads HS256 tokens.
type JWTStrategy struct {
	cfg *config.Jwt
	now func() time.Time
}

func NewJWTStrategy(cfg *config.Jwt) *JWTStrategy {
	return &JWTStrategy{cfg: cfg, now: time.Now}
}

// GenerateToken signs a token for u valid for the configured expiry.
func (s *JWTStrategy) GenerateToken(u *domain.User) (string, time.Time, error) {
	exp := s.now().Add(s.cfg.Expiry)
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = u.ID.String()
	claims["email"] = u.Email
	claims["role"] = string(u.Role)
	claims["exp"] = exp.Unix()
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// IdentityFromToken reads the claims of a token already verified by the
// middleware.
func IdentityFromToken(token *jwt.Token) (Identity, error) {
	if token == nil {
		return Identity{}, domain.ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, domain.ErrUnauthorized
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return Identity{}, domain.ErrUnauthorized
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return Identity{}, fmt.Errorf("bad user_id claim: %w", domain.ErrUnauthorized)
	}
	ident := Identity{UserID: id}
	ident.Email, _ = claims["email"].(string)
	if role, ok := claims["role"].(string); ok {
		ident.Role = domain.Role(role)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ident.ExpiresAt = exp.Time
	}
	return ident, nil
}

// ParseToken verifies a raw token string. Used where the fiber middleware
// is not in the path, such as signout with an expired session.
func (s *JWTStrategy) ParseToken(raw string) (*jwt.Token, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrUnauthorized)
	}
	return token, nil
}
