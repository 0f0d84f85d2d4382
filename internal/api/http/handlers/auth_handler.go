package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hotel-front/internal/api/dto"
	"github.com/spec-kit/hotel-front/internal/authflow"
	"github.com/spec-kit/hotel-front/internal/identity"
	"github.com/spec-kit/hotel-front/internal/session"
	"github.com/spec-kit/hotel-front/internal/upstream"
)

// AuthHandler exposes login, registration and logout for one identity
// class. Two instances are mounted, one per class.
type AuthHandler struct {
	flows         *authflow.Flows
	cookies       *session.CookieManager
	secureCookies bool
	class         identity.Class
}

// NewAuthHandler constructs a handler bound to an identity class.
func NewAuthHandler(flows *authflow.Flows, cookies *session.CookieManager, secureCookies bool, class identity.Class) *AuthHandler {
	return &AuthHandler{flows: flows, cookies: cookies, secureCookies: secureCookies, class: class}
}

// refreshCookie restarts the session cookie's lifetime. The cookie's expiry
// normally starts at the visitor's first anonymous request; restarting it at
// login keeps it from expiring before the credential stored alongside it.
func (h *AuthHandler) refreshCookie(c *fiber.Ctx) {
	sess := Session(c)
	if sess == nil {
		return
	}
	value, expiresAt, err := h.cookies.IssueFor(sess.ID())
	if err != nil {
		return
	}
	SetSessionCookie(c, value, expiresAt, h.secureCookies)
}

// LoginPage describes the login page for clients that render it.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	sess := Session(c)
	authenticated := sess != nil && sess.Authenticated(h.class)
	return c.JSON(fiber.Map{
		"page":          string(h.class.Name) + "-login",
		"authenticated": authenticated,
	})
}

// Login handles the login form submission.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form dto.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	sess := Session(c)
	destination, err := h.flows.Login(c.UserContext(), sess, h.class, upstream.LoginRequest{
		Mail:     form.Mail,
		Password: form.Password,
	})
	if err != nil {
		return err
	}

	h.refreshCookie(c)
	return c.JSON(fiber.Map{"data": dto.AuthResult{Authenticated: true, RedirectTo: destination}})
}

// Register handles the registration form submission.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var form dto.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	sess := Session(c)
	destination, err := h.flows.Register(c.UserContext(), sess, h.class, upstream.RegisterRequest{
		FullName: form.FullName,
		Mail:     form.Mail,
		Password: form.Password,
		Phone:    form.Phone,
		ImageURL: form.ImageURL,
		Role:     identity.Role(form.Role),
	})
	if err != nil {
		return err
	}

	h.refreshCookie(c)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.AuthResult{Authenticated: true, RedirectTo: destination}})
}

// Logout drops the class's session and redirects to its login route.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess := Session(c)
	loginRoute, err := h.flows.Logout(c.UserContext(), sess, h.class)
	if err != nil {
		return err
	}
	return c.Redirect(loginRoute, fiber.StatusSeeOther)
}
