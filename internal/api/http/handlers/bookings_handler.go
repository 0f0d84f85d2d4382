package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hotel-front/internal/api/dto"
	"github.com/spec-kit/hotel-front/internal/identity"
	"github.com/spec-kit/hotel-front/internal/upstream"
	apperrors "github.com/spec-kit/hotel-front/pkg/util"
)

// BookingsHandler serves the customer area: their bookings and the
// reservation flow.
type BookingsHandler struct {
	client *upstream.Client
}

// NewBookingsHandler constructs the handler.
func NewBookingsHandler(client *upstream.Client) *BookingsHandler {
	return &BookingsHandler{client: client}
}

// MyBookings handles GET /my-bookings for the logged-in customer.
func (h *BookingsHandler) MyBookings(c *fiber.Ctx) error {
	profile := Session(c).Profile(identity.Customer)
	if profile == nil {
		return apperrors.NewForbidden("customer session required")
	}

	bookings, err := h.client.BookingsByCustomer(c.UserContext(), profile.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"customer": profile,
		"bookings": bookings,
	}})
}

// Reserve handles POST /my-bookings. The customer ID always comes from the
// session, never from the request body.
func (h *BookingsHandler) Reserve(c *fiber.Ctx) error {
	profile := Session(c).Profile(identity.Customer)
	if profile == nil {
		return apperrors.NewForbidden("customer session required")
	}

	var form dto.ReservationForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if form.RoomID == "" || form.CheckInDate == "" || form.CheckOutDate == "" {
		return apperrors.NewValidationError("roomId, checkInDate and checkOutDate required", nil)
	}
	if form.NumAdults <= 0 {
		form.NumAdults = 1
	}

	booking, err := h.client.CreateBooking(c.UserContext(), upstream.BookingCreateRequest{
		CustomerID:   profile.ID,
		RoomID:       form.RoomID,
		CheckInDate:  form.CheckInDate,
		CheckOutDate: form.CheckOutDate,
		NumAdults:    form.NumAdults,
		NumChildren:  form.NumChildren,
		Notes:        form.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": booking})
}

// Cancel handles DELETE /my-bookings/:id.
func (h *BookingsHandler) Cancel(c *fiber.Ctx) error {
	if err := h.client.CancelBooking(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
