package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Vextroyer/mange/internal/models"
	"github.com/Vextroyer/mange/internal/repository"
)

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type RegisterAdminRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// RegisterAdminHandler bootstraps the first Admin user on an empty
// installation. Once any Admin exists the endpoint refuses.
func RegisterAdminHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "fields ('name','password') are required")
		}

		group, err := repository.GetOrCreate[models.Group](repo, repository.Filter{"name": models.AdminGroup})
		if err != nil {
			return err
		}
		admins, err := repository.Find[models.User](repo, repository.Filter{"group_id": group.ID}).All()
		if err != nil {
			return err
		}
		if len(admins) > 0 {
			return fiber.NewError(fiber.StatusForbidden, "an admin user already exists")
		}

		user, err := repo.CreateUser(body.Name, body.Password, &group.ID)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       user.ID,
			"name":     user.Name,
			"group_id": user.GroupID,
			"token":    user.Token.Value,
		})
	}
}

// LoginHandler exchanges credentials for the user's token value.
func LoginHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "fields ('name','password') are required")
		}

		token, err := repo.Login(body.Name, body.Password)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{"token": token})
	}
}

// MeHandler returns the authenticated user.
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return err
		}

		response := fiber.Map{
			"id":       user.ID,
			"name":     user.Name,
			"group_id": user.GroupID,
		}
		if user.Group != nil {
			response["group"] = user.Group.Name
		}
		return c.JSON(response)
	}
}
