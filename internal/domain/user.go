package domain

import (
	"fmt"
	"time"
)

// Role determines which part of the platform an account may access.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// ParseRole validates a raw user_type value.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid user type %q", s)
}

// User is the domain model for platform accounts. Exactly one role per account.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
