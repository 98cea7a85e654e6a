package client

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken marks tokens that are not syntactically valid JWTs or
// lack the required claims. Callers treat such tokens the same as absent ones.
var ErrMalformedToken = errors.New("malformed token")

// TokenClaims is the decoded payload of an access token.
type TokenClaims struct {
	UserType string `json:"user_type"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// ExpiresAtUnix returns the expiry as epoch seconds.
func (c *TokenClaims) ExpiresAtUnix() int64 {
	return c.ExpiresAt.Unix()
}

// DecodeToken decodes a token's claims without verifying the signature.
// Signature verification is the backend's responsibility: the client only
// ever stores tokens the backend issued to it over HTTPS, so a decoded
// payload is trusted by construction. The function is pure; the same input
// always yields the same result.
func DecodeToken(token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing sub or exp claim", ErrMalformedToken)
	}
	return claims, nil
}

// Expired reports whether the claims are expired at the given instant.
// The comparison is strict: a token expiring exactly now is already expired.
func (c *TokenClaims) Expired(now time.Time) bool {
	return c.ExpiresAt.Unix() <= now.Unix()
}
