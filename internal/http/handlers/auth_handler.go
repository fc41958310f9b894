package handlers

import (
	"github.com/gofiber/fiber/v2"

	"workersdeck/internal/apperr"
	applog "workersdeck/internal/log"
	"workersdeck/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in services.Registration
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}
	u, err := h.Auth.Register(c.UserContext(), in)
	if err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			applog.Security(c, "auth.register.duplicate", map[string]any{"email": in.Email})
		}
		return err
	}
	applog.Audit(c, "auth.register", map[string]any{"new_user_id": u.ID, "role": u.Role})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered successfully"})
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in loginBody
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}
	if in.Email == "" || in.Password == "" {
		return apperr.BadRequest("Email and password are required")
	}
	tok, u, err := h.Auth.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": in.Email, "reason": apperr.KindOf(err).String()})
		return err
	}
	c.Locals(applog.LocalUserID, u.ID)
	applog.Audit(c, "auth.login.success", nil)
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   tok,
		"user":    fiber.Map{"id": u.ID, "name": u.Name, "role": u.Role},
	})
}

type forgotBody struct {
	Email string `json:"email"`
}

// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in forgotBody
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}
	if in.Email == "" {
		return apperr.BadRequest("Email is required")
	}
	if err := h.Auth.ForgotPassword(c.UserContext(), in.Email); err != nil {
		return err
	}
	applog.Audit(c, "auth.forgot", nil)
	return c.JSON(fiber.Map{"message": services.ForgotPasswordMessage})
}

type resetBody struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in resetBody
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}
	if err := h.Auth.ResetPassword(c.UserContext(), in.Token, in.Password); err != nil {
		if apperr.Is(err, apperr.KindUnauthorized) {
			applog.Security(c, "auth.reset.fail", nil)
		}
		return err
	}
	applog.Audit(c, "auth.reset", nil)
	return c.JSON(fiber.Map{"message": "Password has been reset successfully."})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u, bookings, err := h.Auth.Me(c.UserContext(), callerID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": u, "bookings": bookings})
}
