package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "workersdeck/internal/log"
	"workersdeck/internal/services"
)

type WorkerHandler struct {
	Bookings *services.BookingService
}

// GET /api/bookings/worker/my-bookings
func (h *WorkerHandler) MyBookings(c *fiber.Ctx) error {
	list, err := h.Bookings.ListForWorker(c.UserContext(), callerID(c))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// PUT /api/bookings/worker/update-status/:id
//
// Updating a booking assigned to someone else still answers 200.
func (h *WorkerHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var in services.StatusChange
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}
	changed, err := h.Bookings.UpdateStatus(c.UserContext(), id, callerID(c), in)
	if err != nil {
		return err
	}
	fields := map[string]any{"booking_id": id, "status": in.Status}
	if !changed {
		applog.Security(c, "booking.status.noop", fields)
	} else {
		applog.Audit(c, "booking.status", fields)
	}
	return c.JSON(fiber.Map{"message": "Status updated"})
}
