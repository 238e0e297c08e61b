package admin

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Vextroyer/mange/internal/httputil"
	"github.com/Vextroyer/mange/internal/models"
	"github.com/Vextroyer/mange/internal/repository"
)

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type UpdateGroupRequest struct {
	Name *string `json:"name"`
}

type AddMemberRequest struct {
	UserID uint `json:"user_id"`
}

func CreateGroupHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateGroupRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		group := models.Group{Name: strings.TrimSpace(body.Name)}
		if err := repo.CreateGroup(&group); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(group)
	}
}

func ListGroupsHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		groups, err := repository.Find[models.Group](repo, nil).Order("id").All()
		if err != nil {
			return err
		}
		return c.JSON(groups)
	}
}

func GetGroupHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c)
		if err != nil {
			return err
		}
		group, err := repository.Find[models.Group](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}
		return c.JSON(group)
	}
}

func UpdateGroupHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c)
		if err != nil {
			return err
		}
		group, err := repository.Find[models.Group](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}

		var body UpdateGroupRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		fields := map[string]any{}
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "group name must not be empty")
			}
			fields["name"] = name
		}

		if err := repo.Update(group, fields); err != nil {
			return err
		}
		group, err = repository.Find[models.Group](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}
		return c.JSON(group)
	}
}

func DeleteGroupHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c)
		if err != nil {
			return err
		}
		group, err := repository.Find[models.Group](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}
		if err := repo.Delete(group); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// AddMemberHandler puts an existing user into the group.
func AddMemberHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c)
		if err != nil {
			return err
		}
		group, err := repository.Find[models.Group](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}

		var body AddMemberRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		user, err := repository.Find[models.User](repo, repository.Filter{"id": body.UserID}).One()
		if err != nil {
			return err
		}

		if err := repo.Update(user, map[string]any{"group_id": group.ID}); err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"group_id": group.ID,
			"user_id":  user.ID,
		})
	}
}
