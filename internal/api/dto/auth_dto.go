package dto

import (
	"time"

	"github.com/classgrid/learnhub/internal/domain"
)

// LoginRequest payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"user_type"`
}

// TokenResponse is the body of a successful login.
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	UserType    domain.Role `json:"user_type"`
	Username    string      `json:"username"`
}

// UserResponse mirrors an account without credentials.
type UserResponse struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	UserType  domain.Role `json:"user_type"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		UserType:  user.Role,
		CreatedAt: user.CreatedAt,
	}
}
