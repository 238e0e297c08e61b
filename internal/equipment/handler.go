package equipment

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Vextroyer/mange/internal/httputil"
	"github.com/Vextroyer/mange/internal/models"
	"github.com/Vextroyer/mange/internal/repository"
)

type CreateEquipmentRequest struct {
	Model                  string `json:"model"`
	Brand                  string `json:"brand"`
	Type                   string `json:"type"`
	EfficiencyClass        string `json:"efficiency_class"`
	MaintenanceState       string `json:"maintenance_state"`
	AvgDailyConsumption    int64  `json:"avg_daily_consumption"`
	NominalCapacity        int64  `json:"nominal_capacity"`
	EstimatedLifetimeYears int64  `json:"estimated_lifetime_years"`
	InstallDate            string `json:"install_date"` // optional, "2006-01-02"
	UsageFrequency         string `json:"usage_frequency"`
	CriticalSystem         bool   `json:"critical_system"`
}

type UpdateEquipmentRequest struct {
	Model                  *string `json:"model"`
	Brand                  *string `json:"brand"`
	Type                   *string `json:"type"`
	EfficiencyClass        *string `json:"efficiency_class"`
	MaintenanceState       *string `json:"maintenance_state"`
	AvgDailyConsumption    *int64  `json:"avg_daily_consumption"`
	NominalCapacity        *int64  `json:"nominal_capacity"`
	EstimatedLifetimeYears *int64  `json:"estimated_lifetime_years"`
	UsageFrequency         *string `json:"usage_frequency"`
	CriticalSystem         *bool   `json:"critical_system"`
}

func CreateEquipmentHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateEquipmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		eq := models.Equipment{
			Model:                  strings.TrimSpace(body.Model),
			Brand:                  body.Brand,
			Type:                   body.Type,
			EfficiencyClass:        body.EfficiencyClass,
			MaintenanceState:       body.MaintenanceState,
			AvgDailyConsumption:    body.AvgDailyConsumption,
			NominalCapacity:        body.NominalCapacity,
			EstimatedLifetimeYears: body.EstimatedLifetimeYears,
			UsageFrequency:         body.UsageFrequency,
			CriticalSystem:         body.CriticalSystem,
		}
		if body.InstallDate != "" {
			installed, err := time.Parse("2006-01-02", body.InstallDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "field 'install_date' must use format 2006-01-02")
			}
			eq.InstallDate = &installed
		}

		if err := repo.CreateEquipment(&eq); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(eq)
	}
}

func ListEquipmentHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := repository.Find[models.Equipment](repo, nil).Order("id").All()
		if err != nil {
			return err
		}
		return c.JSON(items)
	}
}

func GetEquipmentHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c)
		if err != nil {
			return err
		}
		eq, err := repository.Find[models.Equipment](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}
		return c.JSON(eq)
	}
}

func UpdateEquipmentHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c)
		if err != nil {
			return err
		}
		eq, err := repository.Find[models.Equipment](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}

		var body UpdateEquipmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		fields := map[string]any{}
		if body.Model != nil {
			model := strings.TrimSpace(*body.Model)
			if model == "" {
				return fiber.NewError(fiber.StatusBadRequest, "equipment model must not be empty")
			}
			fields["model"] = model
		}
		if body.Brand != nil {
			fields["brand"] = *body.Brand
		}
		if body.Type != nil {
			fields["type"] = *body.Type
		}
		if body.EfficiencyClass != nil {
			fields["efficiency_class"] = *body.EfficiencyClass
		}
		if body.MaintenanceState != nil {
			fields["maintenance_state"] = *body.MaintenanceState
		}
		if body.AvgDailyConsumption != nil {
			fields["avg_daily_consumption"] = *body.AvgDailyConsumption
		}
		if body.NominalCapacity != nil {
			fields["nominal_capacity"] = *body.NominalCapacity
		}
		if body.EstimatedLifetimeYears != nil {
			fields["estimated_lifetime_years"] = *body.EstimatedLifetimeYears
		}
		if body.UsageFrequency != nil {
			fields["usage_frequency"] = *body.UsageFrequency
		}
		if body.CriticalSystem != nil {
			fields["critical_system"] = *body.CriticalSystem
		}

		if err := repo.Update(eq, fields); err != nil {
			return err
		}
		eq, err = repository.Find[models.Equipment](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}
		return c.JSON(eq)
	}
}

func DeleteEquipmentHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c)
		if err != nil {
			return err
		}
		eq, err := repository.Find[models.Equipment](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}
		if err := repo.Delete(eq); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
