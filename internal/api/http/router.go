package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/console-service/internal/api/http/handlers"
	"github.com/spec-kit/console-service/internal/auth"
	"github.com/spec-kit/console-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Calls          *handlers.CallsHandler
	Tickets        *handlers.TicketsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/logout", cfg.Auth.Logout)

	calls := app.Group("/calls", cfg.AuthMiddleware.Handle, auth.RequireRole())
	calls.Get("/", cfg.Calls.List)
	calls.Post("/", cfg.Calls.Incoming)
	calls.Get("/urgent", cfg.Calls.Urgent)
	calls.Get("/archive", cfg.Calls.Archive)
	calls.Get("/:id", cfg.Calls.Get)
	calls.Post("/:id/accept", cfg.Calls.Accept)
	calls.Post("/:id/hold", cfg.Calls.Hold)
	calls.Post("/:id/transfer", cfg.Calls.Transfer)
	calls.Post("/:id/complete", cfg.Calls.Complete)
	calls.Post("/:id/intervene", cfg.Calls.Intervene)
	calls.Post("/:id/reclassify", cfg.Calls.Reclassify)
	calls.Put("/:id/context", cfg.Calls.UpdateContext)
	calls.Delete("/:id", cfg.Calls.Delete)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle, auth.RequireRole())
	tickets.Get("/", cfg.Tickets.List)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/stats", cfg.Tickets.Stats)
	tickets.Get("/overdue", cfg.Tickets.Overdue)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Post("/:id/status", cfg.Tickets.ChangeStatus)
	tickets.Post("/:id/assign", cfg.Tickets.Assign)
	tickets.Post("/:id/escalate", cfg.Tickets.Escalate)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.UserRoleSupervisor, domain.UserRoleAdmin))
	admin.Post("/state/save", cfg.Admin.SaveState)
	admin.Post("/state/load", cfg.Admin.LoadState)
	admin.Delete("/state", cfg.Admin.ClearState)
}
