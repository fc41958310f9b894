package handlers

import (
	"github.com/gofiber/fiber/v2"

	"workersdeck/internal/apperr"
	applog "workersdeck/internal/log"
	"workersdeck/internal/services"
	"workersdeck/internal/validate"
)

// ServiceHandler serves the public catalog and its admin mutations.
type ServiceHandler struct {
	Catalog *services.CatalogService
}

// GET /api/services
// GET /api/bookings/admin/services
func (h *ServiceHandler) List(c *fiber.Ctx) error {
	list, err := h.Catalog.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GET /api/services/:id
func (h *ServiceHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apperr.NotFound("Service not found")
	}
	s, err := h.Catalog.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(s)
}

// POST /api/bookings/admin/services
func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	var in services.ServiceInput
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}
	s, err := h.Catalog.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	applog.Audit(c, "admin.services.create", map[string]any{"service_id": s.ID, "name": s.Name})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Service added", "id": s.ID})
}

// PUT /api/bookings/admin/services/:id
func (h *ServiceHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apperr.NotFound("Service not found")
	}
	var in services.ServiceInput
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}
	if err := h.Catalog.Update(c.UserContext(), id, in); err != nil {
		return err
	}
	applog.Audit(c, "admin.services.update", map[string]any{"service_id": id})
	return c.JSON(fiber.Map{"message": "Service updated"})
}

// DELETE /api/bookings/admin/services/:id
func (h *ServiceHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apperr.NotFound("Service not found")
	}
	if err := h.Catalog.Delete(c.UserContext(), id); err != nil {
		return err
	}
	applog.Audit(c, "admin.services.delete", map[string]any{"service_id": id})
	return c.JSON(fiber.Map{"message": "Service deleted"})
}
