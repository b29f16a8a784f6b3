package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"twostreet/internal/domain"
	applog "twostreet/internal/log"
	"twostreet/internal/services"
)

// RequireUser parses the Bearer token and stores the authenticated principal
// in Locals("userID")/Locals("role"). The principal is trusted from there on;
// handlers only add ownership checks.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return jsonError(c, fiber.StatusUnauthorized, "Access denied. No token provided.")
		}
		userID, role, err := auth.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			applog.Security(c, "auth.token.invalid", nil)
			return jsonError(c, fiber.StatusUnauthorized, "Invalid token.")
		}
		c.Locals("userID", userID)
		c.Locals("role", role)
		return c.Next()
	}
}

// RequireAdmin checks the role set by RequireUser; register it after that
// middleware on admin groups.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals("role").(string); role != domain.RoleAdmin {
			applog.Security(c, "access.denied.admin", nil)
			return jsonError(c, fiber.StatusForbidden, "Access denied. Admin only.")
		}
		return c.Next()
	}
}

func currentUserID(c *fiber.Ctx) int {
	id, _ := c.Locals("userID").(int)
	return id
}
