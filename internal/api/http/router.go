package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/openlearn/coursehub/internal/api/http/handlers"
	"github.com/openlearn/coursehub/internal/auth"
	"github.com/openlearn/coursehub/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Admin          *handlers.AdminHandler
	Courses        *handlers.CoursesHandler
	AuthMiddleware *auth.AuthMiddleware
	CSRF           *auth.CSRFManager
	Gate           auth.Gate
}

// RegisterRoutes wires HTTP routes. Mutating session-authenticated routes run
// the CSRF check before business logic; login is exempt because it creates
// the session the double-submit token protects.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/csrf-token", cfg.Auth.CSRFToken)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.CSRF.Middleware(), cfg.Auth.Logout)
	authGroup.Post("/reset-password", cfg.CSRF.Middleware(), cfg.Auth.ResetPassword)

	// Role gate runs before CSRF so an unauthorized caller always sees 403
	// before anything else, and before any lookup can reveal existence.
	admin := app.Group("/admin",
		cfg.AuthMiddleware.Handle,
		auth.RequireRole(cfg.Gate, domain.RoleAdmin),
		cfg.CSRF.Middleware(),
	)
	admin.Post("/users/:id/reset-password-link", cfg.Admin.ResetPasswordLink)

	courses := app.Group("/courses", cfg.AuthMiddleware.Handle)
	courses.Get("/", cfg.Courses.List)
	courses.Get("/:id", cfg.Courses.Get)
	courses.Post("/", cfg.CSRF.Middleware(), cfg.Courses.Create)
	courses.Patch("/:id", cfg.CSRF.Middleware(), cfg.Courses.Update)
}
