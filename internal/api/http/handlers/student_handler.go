package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/classgrid/learnhub/internal/api/dto"
	"github.com/classgrid/learnhub/internal/auth"
	"github.com/classgrid/learnhub/internal/service"
	apperrors "github.com/classgrid/learnhub/pkg/util"
)

// StudentHandler exposes the course catalog and enrollment endpoints.
type StudentHandler struct {
	courses     *service.CourseService
	enrollments *service.EnrollmentService
}

// NewStudentHandler constructs handler.
func NewStudentHandler(courses *service.CourseService, enrollments *service.EnrollmentService) *StudentHandler {
	return &StudentHandler{courses: courses, enrollments: enrollments}
}

// Catalog handles GET /api/v1/student/courses.
func (h *StudentHandler) Catalog(c *fiber.Ctx) error {
	courses, err := h.courses.AllCourses(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCourseListResponse(courses))
}

// Enroll handles POST /api/v1/student/courses/:id/enroll.
func (h *StudentHandler) Enroll(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}

	enrollment, err := h.enrollments.Enroll(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewEnrollmentResponse(enrollment))
}

// MyEnrollments handles GET /api/v1/student/enrollments.
func (h *StudentHandler) MyEnrollments(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}

	enrollments, err := h.enrollments.MyEnrollments(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}

	out := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		out = append(out, dto.NewEnrollmentResponse(enrollment))
	}
	return c.JSON(out)
}
