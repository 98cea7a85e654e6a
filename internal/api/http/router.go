package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/classgrid/learnhub/internal/api/http/handlers"
	"github.com/classgrid/learnhub/internal/auth"
	"github.com/classgrid/learnhub/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Instructor     *handlers.InstructorHandler
	Student        *handlers.StudentHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	instructor := api.Group("/instructor",
		cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleInstructor),
	)
	instructor.Get("/profile", cfg.Instructor.Profile)
	instructor.Get("/dashboard", cfg.Instructor.Dashboard)

	courses := instructor.Group("/courses")
	courses.Post("/create", cfg.Instructor.CreateCourse)
	courses.Get("/my-courses", cfg.Instructor.MyCourses)
	courses.Get("/all-courses", cfg.Instructor.AllCourses)
	courses.Get("/course/:id", cfg.Instructor.GetCourse)
	courses.Put("/course/:id", cfg.Instructor.UpdateCourse)
	courses.Delete("/course/:id", cfg.Instructor.DeleteCourse)

	student := api.Group("/student",
		cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleStudent),
	)
	student.Get("/courses", cfg.Student.Catalog)
	student.Post("/courses/:id/enroll", cfg.Student.Enroll)
	student.Get("/enrollments", cfg.Student.MyEnrollments)

	admin := api.Group("/admin",
		cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleAdmin),
	)
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Post("/users", cfg.Admin.CreateUser)
	admin.Delete("/users", cfg.Admin.DeleteUser)
}
