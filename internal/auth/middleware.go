package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Vextroyer/mange/internal/models"
	"github.com/Vextroyer/mange/internal/repository"
)

// CtxUserKey holds the authenticated *models.User in the request locals.
const CtxUserKey = "user"

// TokenMiddleware resolves the Authorization header ("Bearer <token>" or the
// bare token value) to a user and stores it in the request locals.
func TokenMiddleware(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header is missing")
		}

		value := header
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			value = parts[1]
		}

		user, err := repo.UserFromToken(value)
		if err != nil {
			return err
		}

		c.Locals(CtxUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user placed in the locals by TokenMiddleware.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(CtxUserKey).(*models.User)
	if !ok || user == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "no authenticated user")
	}
	return user, nil
}

// RequireGroup rejects users outside the named groups.
func RequireGroup(groups ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return err
		}
		for _, g := range groups {
			if user.IsInGroup(g) {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "insufficient credentials")
	}
}
