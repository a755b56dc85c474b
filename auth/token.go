// Package auth guards the administrative inspection surface: a shared
// secret is exchanged for a short-lived JWT, which the admin endpoints
// then require as a bearer credential.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims defines the structure of the data stored inside the JWT.
type CustomClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Authenticator signs and validates admin tokens with a single HMAC key
// loaded from configuration.
type Authenticator struct {
	key []byte
	ttl time.Duration
}

func NewAuthenticator(key []byte, ttl time.Duration) *Authenticator {
	return &Authenticator{key: key, ttl: ttl}
}

// GenerateToken creates a signed JWT carrying the admin role.
func (a *Authenticator) GenerateToken(subject string) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		Roles: []string{"admin"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "roulette-lab",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.key)
}

// ValidateToken parses and validates the signature and expiration of a
// JWT string.
func (a *Authenticator) ValidateToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(*jwt.Token) (interface{}, error) {
		return a.key, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
