package company

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Vextroyer/mange/internal/httputil"
	"github.com/Vextroyer/mange/internal/models"
	"github.com/Vextroyer/mange/internal/repository"
)

type CreateCompanyRequest struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Address      string `json:"address"`
	LastReading  int64  `json:"last_reading"`
	Reading      int64  `json:"reading"`
	Limit        int64  `json:"limit"`
	ExtraPercent *int64 `json:"extra_percent"` // optional, defaults to 15
	Extra        *int64 `json:"extra"`         // optional, defaults to 20
}

type UpdateCompanyRequest struct {
	Name         *string `json:"name"`
	Type         *string `json:"type"`
	Address      *string `json:"address"`
	Reading      *int64  `json:"reading"`
	Limit        *int64  `json:"limit"`
	ExtraPercent *int64  `json:"extra_percent"`
	Extra        *int64  `json:"extra"`
}

func CreateCompanyHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCompanyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		company := models.Company{
			Name:        strings.TrimSpace(body.Name),
			Type:        body.Type,
			Address:     body.Address,
			LastReading: body.LastReading,
			Reading:     body.Reading,
			Limit:       body.Limit,
		}
		if body.ExtraPercent != nil {
			company.ExtraPercent = *body.ExtraPercent
		}
		if body.Extra != nil {
			company.Extra = *body.Extra
		}

		if err := repo.CreateCompany(&company); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(company)
	}
}

func ListCompaniesHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companies, err := repository.Find[models.Company](repo, nil).Order("id").All()
		if err != nil {
			return err
		}
		return c.JSON(companies)
	}
}

func GetCompanyHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c)
		if err != nil {
			return err
		}
		company, err := repository.Find[models.Company](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}
		return c.JSON(company)
	}
}

func UpdateCompanyHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c)
		if err != nil {
			return err
		}
		company, err := repository.Find[models.Company](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}

		var body UpdateCompanyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		fields := map[string]any{}
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "company name must not be empty")
			}
			fields["name"] = name
		}
		if body.Type != nil {
			fields["type"] = *body.Type
		}
		if body.Address != nil {
			fields["address"] = *body.Address
		}
		if body.Reading != nil {
			fields["reading"] = *body.Reading
		}
		if body.Limit != nil {
			fields["limit"] = *body.Limit
		}
		if body.ExtraPercent != nil {
			fields["extra_percent"] = *body.ExtraPercent
		}
		if body.Extra != nil {
			fields["extra"] = *body.Extra
		}

		if err := repo.Update(company, fields); err != nil {
			return err
		}
		company, err = repository.Find[models.Company](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}
		return c.JSON(company)
	}
}

func DeleteCompanyHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c)
		if err != nil {
			return err
		}
		company, err := repository.Find[models.Company](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}
		if err := repo.Delete(company); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
