package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/hotel-front/internal/api/http/handlers"
	"github.com/spec-kit/hotel-front/internal/identity"
	"github.com/spec-kit/hotel-front/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	StaffAuth    *handlers.AuthHandler
	CustomerAuth *handlers.AuthHandler
	Rooms        *handlers.RoomsHandler
	Bookings     *handlers.BookingsHandler
	Admin        *handlers.AdminHandler
	Metrics      *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Route namespaces mirror the identity
// classes: everything under /admin belongs to staff, the customer area
// lives at the root, and the public catalog needs no session at all.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	// Public surface.
	app.Get("/", cfg.Rooms.Home)
	app.Get("/home", cfg.Rooms.Home)
	app.Get("/rooms", cfg.Rooms.List)
	app.Get("/rooms/:id", cfg.Rooms.Get)
	app.Get("/availability", cfg.Rooms.Availability)

	// Customer auth.
	app.Get("/login", cfg.CustomerAuth.LoginPage)
	app.Post("/login", cfg.CustomerAuth.Login)
	app.Post("/register", cfg.CustomerAuth.Register)

	// Staff auth.
	app.Get("/admin/login", cfg.StaffAuth.LoginPage)
	app.Post("/admin/login", cfg.StaffAuth.Login)
	app.Post("/admin/register", cfg.StaffAuth.Register)

	// Customer area. The customer class owns the root namespace, so the
	// guard is attached per route rather than as a catch-all prefix.
	customerGuard := Guard(identity.Customer, cfg.Metrics)
	app.Get("/my-bookings", customerGuard, cfg.Bookings.MyBookings)
	app.Post("/my-bookings", customerGuard, cfg.Bookings.Reserve)
	app.Delete("/my-bookings/:id", customerGuard, cfg.Bookings.Cancel)
	app.Post("/logout", customerGuard, cfg.CustomerAuth.Logout)

	// Staff area.
	admin := app.Group("/admin", Guard(identity.Staff, cfg.Metrics))
	admin.Get("/dashboard", cfg.Admin.Dashboard)
	admin.Post("/logout", cfg.StaffAuth.Logout)

	admin.Get("/rooms", cfg.Rooms.List)
	admin.Post("/rooms", cfg.Rooms.Create)
	admin.Get("/rooms/:id", cfg.Rooms.Get)
	admin.Put("/rooms/:id", cfg.Rooms.Update)
	admin.Delete("/rooms/:id", cfg.Rooms.Delete)

	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Get("/users/:id", cfg.Admin.GetUser)
	admin.Put("/users/:id", cfg.Admin.UpdateUser)
	admin.Delete("/users/:id", cfg.Admin.DeleteUser)

	admin.Get("/customers", cfg.Admin.ListCustomers)
	admin.Get("/customers/:id", cfg.Admin.GetCustomer)
	admin.Put("/customers/:id", cfg.Admin.UpdateCustomer)
	admin.Delete("/customers/:id", cfg.Admin.DeleteCustomer)

	admin.Get("/bookings", cfg.Admin.ListBookings)
}
