package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/api/http/handlers"
	"github.com/spec-kit/todo-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Todos          *handlers.TodosHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health", cfg.Health.Health)

	api := app.Group("/api")
	api.Post("/auth/login", cfg.Auth.Login)
	api.Get("/auth/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	todos := api.Group("/todos", cfg.AuthMiddleware.Handle)
	todos.Get("/", cfg.Todos.List)
	todos.Post("/", cfg.Todos.Create)
	todos.Get("/:id", cfg.Todos.Get)
	todos.Put("/:id", cfg.Todos.Update)
	todos.Delete("/:id", cfg.Todos.Delete)
}
