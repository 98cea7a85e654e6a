package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/classgrid/learnhub/internal/api/dto"
	"github.com/classgrid/learnhub/internal/domain"
	"github.com/classgrid/learnhub/internal/repository"
	"github.com/classgrid/learnhub/internal/service"
	apperrors "github.com/classgrid/learnhub/pkg/util"
)

// AdminHandler exposes account management for administrators.
type AdminHandler struct {
	auth  *service.AuthService
	users repository.UserRepository
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService, users repository.UserRepository) *AdminHandler {
	return &AdminHandler{auth: authService, users: users}
}

// ListUsers handles GET /api/v1/admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return apperrors.NewValidationError("No user found in database")
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, dto.NewUserResponse(user))
	}
	return c.JSON(out)
}

// CreateUser handles POST /api/v1/admin/users. Unlike self-registration this
// may create accounts of any role, including further admins.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("username, email and password are required")
	}
	role, err := domain.ParseRole(req.UserType)
	if err != nil {
		return apperrors.NewValidationError("Invalid user type")
	}

	user, err := h.auth.Register(c.Context(), req.Username, req.Email, req.Password, role)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewUserResponse(user))
}

// DeleteUser handles DELETE /api/v1/admin/users?email=.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return apperrors.NewValidationError("email query parameter is required")
	}

	if err := h.users.DeleteByEmail(c.Context(), email); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("User not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
