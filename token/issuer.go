// Package token issues and checks the HS256 access tokens of the development
// backend. The console itself treats tokens as opaque.
package token

import (
	"fmt"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-budget-console/internal/config"
	"github.com/jrsteele09/go-budget-console/internal/errors"
	"github.com/jrsteele09/go-budget-console/users"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Claims carried by an access token
type Claims struct {
	Role users.RoleType `json:"role"`
	jwtlib.RegisteredClaims
}

// UserID returns the numeric subject
func (c *Claims) UserID() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidToken, "[Claims UserID] subject %q", c.Subject)
	}
	return id, nil
}

// Issuer signs and verifies access tokens with a shared secret
type Issuer struct {
	secret []byte
	issuer string
	expiry time.Duration
}

func NewIssuer(cfg config.SecurityConfig) *Issuer {
	return &Issuer{
		secret: []byte(cfg.GetTokenSecret()),
		issuer: cfg.GetTokenIssuer(),
		expiry: cfg.GetAccessTokenExpiry(),
	}
}

// Expiry is the lifetime given to new tokens
func (i *Issuer) Expiry() time.Duration {
	return i.expiry
}

// Issue creates an access token for user
func (i *Issuer) Issue(user *users.Profile) (string, error) {
	now := NowTimeFunc()
	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(i.expiry)),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("[Issuer Issue] failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, issuer and expiry
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwtlib.ParseWithClaims(tokenString, claims,
		func(t *jwtlib.Token) (interface{}, error) {
			return i.secret, nil
		},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(i.issuer),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(NowTimeFunc),
	)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidToken, "[Issuer Parse] %v", err)
	}
	return claims, nil
}

// PeekExpiry reads the exp claim without verifying the token. It is only
// for display; ok is false for tokens that are not JWTs or carry no exp.
func PeekExpiry(tokenString string) (time.Time, bool) {
	claims := &jwtlib.RegisteredClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
