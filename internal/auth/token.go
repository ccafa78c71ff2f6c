// Package auth issues and verifies the session tokens handed to clients
// after login.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vbonduro/assetreg/internal/domain"
)

var signingMethod = jwt.SigningMethodHS256

// Claims carries the actor identity inside a session token.
type Claims struct {
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret, issuer string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt ttl must be positive")
	}
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a token for u valid for the configured TTL.
func (m *TokenManager) Issue(u *domain.User) (string, time.Time, error) {
	if !u.Role.IsValid() {
		return "", time.Time{}, fmt.Errorf("invalid role %q", u.Role)
	}
	now := m.now()
	expires := now.Add(m.ttl)
	claims := Claims{
		Name: u.Name,
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing jwt: %w", err)
	}
	return signed, expires, nil
}

// Verify validates token and returns the actor it was issued for. Every
// failure unwraps to domain.ErrUnauthorized.
func (m *TokenManager) Verify(token string) (domain.Actor, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) {
			if t.Method != signingMethod {
				return nil, fmt.Errorf("unexpected signing method %s", t.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return domain.Actor{}, errors.Join(domain.ErrUnauthorized, err)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || !claims.Role.IsValid() {
		return domain.Actor{}, fmt.Errorf("malformed token claims: %w", domain.ErrUnauthorized)
	}
	return domain.Actor{UserID: id, Name: claims.Name, Role: claims.Role}, nil
}
