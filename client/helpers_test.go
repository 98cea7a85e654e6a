package client

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// mintToken signs a token the way the backend does. The client never checks
// the signature, but real tokens keep the fixtures honest.
func mintToken(t *testing.T, username, role, email string, expiresAt time.Time) string {
	t.Helper()

	claims := &TokenClaims{
		UserType: role,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *recordingNotifier) Error(message string)   { n.errors = append(n.errors, message) }
