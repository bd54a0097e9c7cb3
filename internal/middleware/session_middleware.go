package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/gatherly-gateway/internal/models"
	"github.com/sefazor/gatherly-gateway/internal/session"
)

const localsUserKey = "currentUser"

// SessionMiddleware attaches the persisted identity to the request.
// Guests pass through with no user set; route guards decide what that
// means per surface.
func SessionMiddleware(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if user, _, ok := store.Current(); ok {
			c.Locals(localsUserKey, user)
		}
		return c.Next()
	}
}

// CurrentUser returns the identity attached by SessionMiddleware, or
// nil for guests.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localsUserKey).(*models.User)
	return user
}

func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authentication required"))
		}
		return c.Next()
	}
}

// RequireRole gates organizer and admin surfaces.
func RequireRole(roles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authentication required"))
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("You don't have permission to access this resource"))
	}
}
