package auth

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

// JWTCustomClaims: the subject names the calling service or operator.
type JWTCustomClaims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

func GenerateToken(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &JWTCustomClaims{
		Scope: "shipments",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// NewTokenSource mints tokens for subject and reuses each one until it is
// an hour away from expiry. An empty secret yields no token.
func NewTokenSource(secret, subject string) func() (string, error) {
	var (
		mu      sync.Mutex
		current string
		expires time.Time
	)
	return func() (string, error) {
		if secret == "" {
			return "", nil
		}
		mu.Lock()
		defer mu.Unlock()
		if current != "" && time.Until(expires) > time.Hour {
			return current, nil
		}
		tok, err := GenerateToken(secret, subject, tokenTTL)
		if err != nil {
			return "", err
		}
		current, expires = tok, time.Now().Add(tokenTTL)
		return current, nil
	}
}
