package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hotel-front/internal/session"
)

// SessionLocalsKey is where the session middleware parks the visitor's
// session on the request.
const SessionLocalsKey = "session"

// Session returns the visitor's session resolved by the session middleware.
func Session(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(SessionLocalsKey).(*session.Session)
	return sess
}

// SetSessionCookie writes the signed session cookie on the response.
func SetSessionCookie(c *fiber.Ctx, value string, expiresAt time.Time, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
