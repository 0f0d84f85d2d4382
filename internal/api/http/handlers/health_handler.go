package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hotel-front/internal/credstore"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	store credstore.Store
}

// NewHealthHandler constructs the handler.
func NewHealthHandler(store credstore.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// Live reports process liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready reports readiness; the gateway is ready when the credential store
// answers.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"error":  "credential store unreachable",
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
