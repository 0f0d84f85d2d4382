package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hotel-front/internal/identity"
	"github.com/spec-kit/hotel-front/internal/upstream"
)

// AdminHandler serves the staff dashboard and the management proxies for
// staff accounts, customers and booking records.
type AdminHandler struct {
	client *upstream.Client
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(client *upstream.Client) *AdminHandler {
	return &AdminHandler{client: client}
}

// Dashboard handles GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	profile := Session(c).Profile(identity.Staff)

	ctx := c.UserContext()
	rooms, err := h.client.ListRooms(ctx)
	if err != nil {
		return err
	}
	bookings, err := h.client.ListBookings(ctx)
	if err != nil {
		return err
	}
	customers, err := h.client.ListCustomers(ctx)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"profile":       profile,
		"roomCount":     len(rooms),
		"bookingCount":  len(bookings),
		"customerCount": len(customers),
	}})
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.client.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": users})
}

// GetUser handles GET /admin/users/:id.
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.client.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// UpdateUser handles PUT /admin/users/:id.
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	var req upstream.StaffUserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	user, err := h.client.UpdateUser(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// DeleteUser handles DELETE /admin/users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.client.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListCustomers handles GET /admin/customers.
func (h *AdminHandler) ListCustomers(c *fiber.Ctx) error {
	customers, err := h.client.ListCustomers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customers})
}

// GetCustomer handles GET /admin/customers/:id.
func (h *AdminHandler) GetCustomer(c *fiber.Ctx) error {
	customer, err := h.client.GetCustomer(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customer})
}

// UpdateCustomer handles PUT /admin/customers/:id.
func (h *AdminHandler) UpdateCustomer(c *fiber.Ctx) error {
	var req upstream.CustomerUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	customer, err := h.client.UpdateCustomer(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customer})
}

// DeleteCustomer handles DELETE /admin/customers/:id.
func (h *AdminHandler) DeleteCustomer(c *fiber.Ctx) error {
	if err := h.client.DeleteCustomer(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListBookings handles GET /admin/bookings (checkout records).
func (h *AdminHandler) ListBookings(c *fiber.Ctx) error {
	bookings, err := h.client.ListBookings(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookings})
}
