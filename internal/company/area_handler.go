package company

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Vextroyer/mange/internal/httputil"
	"github.com/Vextroyer/mange/internal/models"
	"github.com/Vextroyer/mange/internal/repository"
)

type CreateAreaRequest struct {
	CompanyID uint   `json:"company_id"`
	Name      string `json:"name"`
	Manager   string `json:"manager"`
}

type UpdateAreaRequest struct {
	Name    *string `json:"name"`
	Manager *string `json:"manager"`
}

func CreateAreaHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateAreaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		// The owning company must exist.
		if _, err := repository.Find[models.Company](repo, repository.Filter{"id": body.CompanyID}).One(); err != nil {
			return err
		}

		area := models.Area{
			CompanyID: body.CompanyID,
			Name:      strings.TrimSpace(body.Name),
			Manager:   body.Manager,
		}
		if err := repo.CreateArea(&area); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(area)
	}
}

func ListAreasHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := repository.Filter{}
		if companyID := c.QueryInt("company_id"); companyID > 0 {
			filter["company_id"] = uint(companyID)
		}
		areas, err := repository.Find[models.Area](repo, filter).Order("id").All()
		if err != nil {
			return err
		}
		return c.JSON(areas)
	}
}

func GetAreaHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c)
		if err != nil {
			return err
		}
		area, err := repository.Find[models.Area](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}
		return c.JSON(area)
	}
}

func UpdateAreaHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c)
		if err != nil {
			return err
		}
		area, err := repository.Find[models.Area](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}

		var body UpdateAreaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		fields := map[string]any{}
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "area name must not be empty")
			}
			fields["name"] = name
		}
		if body.Manager != nil {
			fields["manager"] = *body.Manager
		}

		if err := repo.Update(area, fields); err != nil {
			return err
		}
		area, err = repository.Find[models.Area](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}
		return c.JSON(area)
	}
}

func DeleteAreaHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c)
		if err != nil {
			return err
		}
		area, err := repository.Find[models.Area](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}
		if err := repo.Delete(area); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
