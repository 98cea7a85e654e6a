package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/classgrid/learnhub/internal/api/dto"
	"github.com/classgrid/learnhub/internal/auth"
	"github.com/classgrid/learnhub/internal/service"
	apperrors "github.com/classgrid/learnhub/pkg/util"
)

// InstructorHandler exposes the instructor profile, dashboard and course CRUD
// surface. All routes are gated on the instructor role by the router.
type InstructorHandler struct {
	courses   *service.CourseService
	dashboard *service.DashboardService
}

// NewInstructorHandler constructs handler.
func NewInstructorHandler(courses *service.CourseService, dashboard *service.DashboardService) *InstructorHandler {
	return &InstructorHandler{courses: courses, dashboard: dashboard}
}

// Profile handles GET /api/v1/instructor/profile.
func (h *InstructorHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	return c.JSON(dto.NewUserResponse(principal.User))
}

// Dashboard handles GET /api/v1/instructor/dashboard.
func (h *InstructorHandler) Dashboard(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}

	stats, err := h.dashboard.Stats(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// CreateCourse handles POST /api/v1/instructor/courses/create.
func (h *InstructorHandler) CreateCourse(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}

	var req dto.CourseCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body")
	}

	course, err := h.courses.Create(c.Context(), principal.User.ID, req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewCourseResponse(course))
}

// MyCourses handles GET /api/v1/instructor/courses/my-courses.
func (h *InstructorHandler) MyCourses(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}

	courses, err := h.courses.MyCourses(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCourseListResponse(courses))
}

// AllCourses handles GET /api/v1/instructor/courses/all-courses.
func (h *InstructorHandler) AllCourses(c *fiber.Ctx) error {
	courses, err := h.courses.AllCourses(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCourseListResponse(courses))
}

// GetCourse handles GET /api/v1/instructor/courses/course/:id.
func (h *InstructorHandler) GetCourse(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}

	course, err := h.courses.Get(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCourseResponse(course))
}

// UpdateCourse handles PUT /api/v1/instructor/courses/course/:id.
func (h *InstructorHandler) UpdateCourse(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}

	var req dto.CourseUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body")
	}

	course, err := h.courses.Update(c.Context(), principal.User.ID, c.Params("id"), req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCourseResponse(course))
}

// DeleteCourse handles DELETE /api/v1/instructor/courses/course/:id.
func (h *InstructorHandler) DeleteCourse(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}

	if err := h.courses.Delete(c.Context(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Course deleted successfully"})
}
