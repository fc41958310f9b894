package handlers

import (
	"github.com/gofiber/fiber/v2"

	"workersdeck/internal/apperr"
	applog "workersdeck/internal/log"
	"workersdeck/internal/services"
	"workersdeck/internal/validate"
)

type AdminHandler struct {
	Users    *services.UserService
	Bookings *services.BookingService
}

// GET /api/bookings/admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	list, err := h.Users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// DELETE /api/bookings/admin/users/:id
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apperr.NotFound("User not found")
	}
	if err := h.Users.Delete(c.UserContext(), id); err != nil {
		return err
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"target_id": id})
	return c.JSON(fiber.Map{"message": "User deleted"})
}

// GET /api/bookings/admin/bookings
func (h *AdminHandler) AllBookings(c *fiber.Ctx) error {
	list, err := h.Bookings.ListForAdmin(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

type assignBody struct {
	WorkerID string `json:"worker_id"`
}

// PUT /api/bookings/admin/assign-worker/:bookingId
func (h *AdminHandler) AssignWorker(c *fiber.Ctx) error {
	id := c.Params("bookingId")
	var in assignBody
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}
	changed, err := h.Bookings.AssignWorker(c.UserContext(), id, in.WorkerID)
	if err != nil {
		return err
	}
	fields := map[string]any{"booking_id": id, "worker_id": in.WorkerID}
	if !changed {
		applog.Security(c, "admin.assign.noop", fields)
	} else {
		applog.Audit(c, "admin.assign", fields)
	}
	return c.JSON(fiber.Map{"message": "Worker assigned successfully"})
}
