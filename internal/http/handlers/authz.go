package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"workersdeck/internal/apperr"
	"workersdeck/internal/auth"
	"workersdeck/internal/domain"
	applog "workersdeck/internal/log"
)

const localClaims = "claims"

// Authenticate verifies the bearer session token and stores its claims on the
// request.
func Authenticate(tokens *auth.Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		h := c.Get(fiber.HeaderAuthorization)
		raw, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			return apperr.Unauthorized("Unauthorized: No token provided")
		}
		claims, err := tokens.ParseSession(strings.TrimSpace(raw))
		if err != nil {
			applog.Security(c, "auth.token.invalid", map[string]any{"err": err.Error()})
			return apperr.Unauthorized("Unauthorized: Invalid token")
		}
		c.Locals(localClaims, claims)
		c.Locals(applog.LocalUserID, claims.UserID)
		return c.Next()
	}
}

// RequireRole must run after Authenticate.
func RequireRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cl := claimsOf(c)
		if cl != nil {
			for _, r := range roles {
				if cl.Role == r {
					return c.Next()
				}
			}
		}
		fields := map[string]any{"required": roles}
		if cl != nil {
			fields["role"] = cl.Role
		}
		applog.Security(c, "access.denied", fields)
		return apperr.Forbidden("Access denied")
	}
}

func claimsOf(c *fiber.Ctx) *auth.Claims {
	cl, _ := c.Locals(localClaims).(*auth.Claims)
	return cl
}

// callerID is only meaningful on routes behind Authenticate.
func callerID(c *fiber.Ctx) string {
	if cl := claimsOf(c); cl != nil {
		return cl.UserID
	}
	return ""
}
