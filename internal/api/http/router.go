package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hirenow-api/internal/api/http/handlers"
	"github.com/spec-kit/hirenow-api/internal/auth"
	"github.com/spec-kit/hirenow-api/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Workers        *handlers.WorkersHandler
	Categories     *handlers.CategoriesHandler
	Reviews        *handlers.ReviewsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/send-code", cfg.Auth.SendCode)
	authGroup.Post("/verify-code", cfg.Auth.VerifyCode)
	authGroup.Post("/register-with-code", cfg.Auth.RegisterWithCode)
	authGroup.Post("/firebase/login", cfg.Auth.FirebaseLogin)
	authGroup.Post("/firebase/register", cfg.Auth.FirebaseRegister)

	users := api.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	users.Get("/", cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)

	workers := api.Group("/workers")
	workers.Get("/", cfg.Workers.List)
	workers.Get("/:id", cfg.Workers.Get)

	categories := api.Group("/categories")
	categories.Get("/", cfg.Categories.List)
	categories.Get("/:id", cfg.Categories.Get)

	reviews := api.Group("/reviews")
	reviews.Get("/", cfg.Reviews.List)
	reviews.Get("/:id", cfg.Reviews.Get)

	protected := reviews.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	protected.Post("/", cfg.Reviews.Create)
	protected.Put("/:id", cfg.Reviews.Update)
	protected.Delete("/:id", cfg.Reviews.Delete)
}
