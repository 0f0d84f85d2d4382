package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hotel-front/internal/identity"
	"github.com/spec-kit/hotel-front/internal/upstream"
	apperrors "github.com/spec-kit/hotel-front/pkg/util"
)

// RoomsHandler serves the public room catalog and the staff room
// management proxies.
type RoomsHandler struct {
	client *upstream.Client
}

// NewRoomsHandler constructs the handler.
func NewRoomsHandler(client *upstream.Client) *RoomsHandler {
	return &RoomsHandler{client: client}
}

// List handles GET /rooms (public catalog) and GET /admin/rooms.
func (h *RoomsHandler) List(c *fiber.Ctx) error {
	rooms, err := h.client.ListRooms(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rooms})
}

// Get handles GET /rooms/:id.
func (h *RoomsHandler) Get(c *fiber.Ctx) error {
	room, err := h.client.GetRoom(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": room})
}

// Availability handles GET /availability with stay parameters.
func (h *RoomsHandler) Availability(c *fiber.Ctx) error {
	query := upstream.AvailabilityQuery{
		CheckInDate:  c.Query("checkInDate"),
		CheckOutDate: c.Query("checkOutDate"),
		NumAdults:    c.QueryInt("numAdults", 1),
		NumChildren:  c.QueryInt("numChildren", 0),
	}
	if query.CheckInDate == "" || query.CheckOutDate == "" {
		return apperrors.NewValidationError("checkInDate and checkOutDate required", nil)
	}

	rooms, err := h.client.AvailableRooms(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rooms})
}

// Create handles POST /admin/rooms.
func (h *RoomsHandler) Create(c *fiber.Ctx) error {
	var req upstream.RoomCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	room, err := h.client.CreateRoom(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": room})
}

// Update handles PUT /admin/rooms/:id.
func (h *RoomsHandler) Update(c *fiber.Ctx) error {
	var req upstream.RoomUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	room, err := h.client.UpdateRoom(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": room})
}

// Delete handles DELETE /admin/rooms/:id.
func (h *RoomsHandler) Delete(c *fiber.Ctx) error {
	if err := h.client.DeleteRoom(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Home handles the public landing page payload.
func (h *RoomsHandler) Home(c *fiber.Ctx) error {
	sess := Session(c)
	payload := fiber.Map{"page": "home"}
	if sess != nil {
		payload["staffAuthenticated"] = sess.Authenticated(identity.Staff)
		payload["customerAuthenticated"] = sess.Authenticated(identity.Customer)
		if profile := sess.Profile(identity.Customer); profile != nil {
			payload["customer"] = profile
		}
	}
	return c.JSON(payload)
}
