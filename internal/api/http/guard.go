package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hotel-front/internal/api/http/handlers"
	"github.com/spec-kit/hotel-front/internal/identity"
	"github.com/spec-kit/hotel-front/internal/observability"
)

// Guard blocks entry to a route group unless the visitor's session is
// authenticated for the owning identity class; otherwise it cancels the
// navigation with a redirect to that class's login route.
//
// The check runs on every request, never cached, so a logout immediately
// closes off protected routes.
func Guard(class identity.Class, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := handlers.Session(c)
		if sess != nil && sess.Authenticated(class) {
			return c.Next()
		}
		if metrics != nil {
			metrics.GuardRedirects.WithLabelValues(string(class.Name)).Inc()
		}
		return c.Redirect(class.LoginRoute, fiber.StatusSeeOther)
	}
}
