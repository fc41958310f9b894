package handlers

import (
	"github.com/gofiber/fiber/v2"

	"workersdeck/internal/apperr"
	applog "workersdeck/internal/log"
	"workersdeck/internal/services"
	"workersdeck/internal/validate"
)

type BookingHandler struct {
	Bookings *services.BookingService
}

// POST /api/book
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var in services.NewBooking
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}
	b, err := h.Bookings.Create(c.UserContext(), callerID(c), in)
	if err != nil {
		return err
	}
	applog.Audit(c, "booking.create", map[string]any{"booking_id": b.ID, "service_id": b.ServiceID})
	return c.JSON(fiber.Map{"message": "Booking successful", "booking_id": b.ID})
}

// DELETE /api/bookings/:id
func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apperr.Forbidden("Unauthorized or booking not found")
	}
	if err := h.Bookings.Cancel(c.UserContext(), id, callerID(c)); err != nil {
		if apperr.Is(err, apperr.KindForbidden) {
			applog.Security(c, "booking.cancel.denied", map[string]any{"booking_id": id})
		}
		return err
	}
	applog.Audit(c, "booking.cancel", map[string]any{"booking_id": id})
	return c.JSON(fiber.Map{"message": "Booking cancelled"})
}
