// Package token issues and verifies the signed bearer tokens that carry a
// caller's ledger address. The ledger trusts the token's address claim as
// the caller identity for authorization checks.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/models"
	dErrors "github.com/fourtytwo42/healthChains-sub004/pkg/domain-errors"
)

// Claims carries the caller's address alongside the registered claims.
type Claims struct {
	Address string `json:"addr"`
	jwt.RegisteredClaims
}

// Service signs and verifies caller tokens with a shared HMAC key.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

func NewService(signingKey, issuer string, ttl time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        ttl,
	}
}

// Issue mints a token asserting the given address as the caller identity.
func (s *Service) Issue(addr models.Address) (string, error) {
	addr = addr.Canonical()
	if addr.IsZero() || !addr.WellFormed() {
		return "", dErrors.New(dErrors.CodeInvalidAddress, "cannot issue token for malformed address")
	}

	now := time.Now()
	claims := Claims{
		Address: string(addr),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   string(addr),
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

// Verify parses and validates the token and returns the canonical caller
// address. Every failure maps to unauthorized; callers never learn whether
// the signature, expiry, or claims were at fault.
func (s *Service) Verify(tokenString string) (models.Address, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(t *jwt.Token) (interface{}, error) { return s.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
	)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid or expired token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	addr := models.Address(claims.Address).Canonical()
	if addr.IsZero() || !addr.WellFormed() {
		return "", dErrors.New(dErrors.CodeUnauthorized, "token carries no valid caller address")
	}
	return addr, nil
}
