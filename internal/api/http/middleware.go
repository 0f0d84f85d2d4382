package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/hotel-front/internal/api/http/handlers"
	"github.com/spec-kit/hotel-front/internal/session"
	"github.com/spec-kit/hotel-front/internal/upstream"
	apperrors "github.com/spec-kit/hotel-front/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as error handling,
// session resolution and logging. The request logger sits outside the error
// mapper so it observes the status the mapper actually wrote.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, cookies *session.CookieManager, registry *session.Registry, secureCookies bool, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(requestLoggerMiddleware(logger))
	app.Use(errorHandlingMiddleware(logger))
	app.Use(sessionMiddleware(cookies, registry, secureCookies))
}

// sessionMiddleware resolves the visitor's session from the signed cookie,
// minting a fresh session when the cookie is absent or fails validation.
// The session travels on the request user context so the upstream
// authorizer can reach it.
func sessionMiddleware(cookies *session.CookieManager, registry *session.Registry, secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sessionID string
		if value := c.Cookies(session.CookieName); value != "" {
			if sid, err := cookies.Parse(value); err == nil {
				sessionID = sid
			}
		}
		if sessionID == "" {
			sid, value, expiresAt, err := cookies.Issue()
			if err != nil {
				return apperrors.NewInternalError(err)
			}
			sessionID = sid
			handlers.SetSessionCookie(c, value, expiresAt, secure)
		}

		sess := registry.Resolve(c.UserContext(), sessionID)
		c.Locals(handlers.SessionLocalsKey, sess)

		ctx := upstream.WithSession(c.UserContext(), sess)
		ctx = upstream.WithRoute(ctx, c.Path())
		c.SetUserContext(ctx)

		return c.Next()
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware maps errors to responses. A stale-session error
// becomes a redirect to the owning class's login route; everything else is
// a JSON error envelope.
func errorHandlingMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err == nil {
				return
			}
			if loginRoute, ok := apperrors.IsSessionExpired(err); ok {
				err = c.Redirect(loginRoute, fiber.StatusSeeOther)
				return
			}

			domainErr := apperrors.ToDomainError(err)
			response := fiber.Map{"error": fiber.Map{
				"code":    domainErr.Code,
				"message": domainErr.Message,
			}}
			if len(domainErr.Details) > 0 {
				response["error"].(fiber.Map)["details"] = domainErr.Details
			}
			if domainErr.HTTPStatus >= 500 {
				logger.Error("request failed", zap.Error(domainErr))
			}
			c.Status(domainErr.HTTPStatus)
			_ = c.JSON(response)
			err = nil
		}()
		return c.Next()
	}
}

func requestLoggerMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)))
		return err
	}
}
