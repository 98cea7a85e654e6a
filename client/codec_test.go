package client

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

func TestDecodeTokenClaims(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	token := mintToken(t, "alice", "student", "alice@example.com", expiresAt)

	claims, err := DecodeToken(token)
	if err != nil {
		t.Fatalf("DecodeToken() error = %v", err)
	}
	if claims.Subject != "alice" {
		t.Errorf("Subject = %q, want alice", claims.Subject)
	}
	if claims.UserType != "student" {
		t.Errorf("UserType = %q, want student", claims.UserType)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %q, want alice@example.com", claims.Email)
	}
	if !claims.ExpiresAt.Time.Equal(expiresAt) {
		t.Errorf("ExpiresAt = %v, want %v", claims.ExpiresAt.Time, expiresAt)
	}
}

func TestDecodeTokenIsPure(t *testing.T) {
	token := mintToken(t, "alice", "student", "", time.Now().Add(time.Hour))

	first, err1 := DecodeToken(token)
	second, err2 := DecodeToken(token)
	if err1 != nil || err2 != nil {
		t.Fatalf("DecodeToken() errors = %v, %v", err1, err2)
	}
	if *first.ExpiresAt != *second.ExpiresAt || first.Subject != second.Subject ||
		first.UserType != second.UserType || first.Email != second.Email {
		t.Errorf("repeated decode differs: %+v vs %+v", first, second)
	}
}

func TestDecodeTokenMalformed(t *testing.T) {
	missingExp := func(t *testing.T) string {
		t.Helper()
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "alice"}).
			SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		return token
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "wrong segment count", token: "one.two"},
		{name: "invalid encoding", token: "!!!.###.$$$"},
		{name: "payload not json", token: "aGVsbG8.aGVsbG8.aGVsbG8"},
		{name: "missing exp", token: missingExp(t)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeToken(tt.token)
			if !errors.Is(err, ErrMalformedToken) {
				t.Errorf("DecodeToken() error = %v, want ErrMalformedToken", err)
			}
		})
	}
}

func TestClaimsExpiredBoundary(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{name: "future", expiresAt: now.Add(time.Hour), want: false},
		{name: "exactly now", expiresAt: now, want: true},
		{name: "past", expiresAt: now.Add(-10 * time.Second), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &TokenClaims{RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(tt.expiresAt),
			}}
			if got := claims.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}
