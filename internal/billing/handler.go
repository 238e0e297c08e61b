package billing

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Vextroyer/mange/internal/httputil"
	"github.com/Vextroyer/mange/internal/models"
	"github.com/Vextroyer/mange/internal/repository"
)

type LiquidateRequest struct {
	Date string `json:"date"` // optional, "2006-01-02", defaults to today
}

func findCompany(repo *repository.Client, c *fiber.Ctx) (*models.Company, error) {
	id, err := httputil.ParseID(c)
	if err != nil {
		return nil, err
	}
	return repository.Find[models.Company](repo, repository.Filter{"id": id}).One()
}

// LiquidateHandler closes the company's billing period and returns the new
// bill.
func LiquidateHandler(repo *repository.Client, engine *Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		company, err := findCompany(repo, c)
		if err != nil {
			return err
		}

		var body LiquidateRequest
		// The body is optional; an empty body means "liquidate today".
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
			}
		}

		var date time.Time
		if body.Date != "" {
			date, err = time.Parse("2006-01-02", body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "field 'date' must use format 2006-01-02")
			}
		}

		bill, err := engine.LiquidateBill(company, date)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(bill)
	}
}

func TotalConsumptionHandler(repo *repository.Client, engine *Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		company, err := findCompany(repo, c)
		if err != nil {
			return err
		}
		start, end, err := dateRange(c)
		if err != nil {
			return err
		}
		total, err := engine.TotalConsumption(company, start, end)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"company_id": company.ID,
			"start":      start.Format("2006-01-02"),
			"end":        end.Format("2006-01-02"),
			"total":      total,
		})
	}
}

func AverageConsumptionHandler(repo *repository.Client, engine *Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		company, err := findCompany(repo, c)
		if err != nil {
			return err
		}
		start, end, err := dateRange(c)
		if err != nil {
			return err
		}
		average, err := engine.AverageConsumption(company, start, end)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"company_id": company.ID,
			"start":      start.Format("2006-01-02"),
			"end":        end.Format("2006-01-02"),
			"average":    average,
		})
	}
}

func PredictConsumptionHandler(repo *repository.Client, engine *Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		company, err := findCompany(repo, c)
		if err != nil {
			return err
		}
		start, end, err := dateRange(c)
		if err != nil {
			return err
		}
		prediction, err := engine.PredictConsumption(company, start, end)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"company_id": company.ID,
			"start":      start.Format("2006-01-02"),
			"end":        end.Format("2006-01-02"),
			"prediction": prediction,
		})
	}
}

func AlertsHandler(repo *repository.Client, engine *Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		company, err := findCompany(repo, c)
		if err != nil {
			return err
		}
		alerts, err := engine.ListAlerts(company)
		if err != nil {
			return err
		}
		return c.JSON(alerts)
	}
}

func OverConsumptionHandler(engine *Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := dateRange(c)
		if err != nil {
			return err
		}
		bills, err := engine.OverConsumption(start, end)
		if err != nil {
			return err
		}
		return c.JSON(bills)
	}
}

func CompareConsumptionHandler(engine *Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := dateRange(c)
		if err != nil {
			return err
		}
		bills, err := engine.CompareConsumption(start, end)
		if err != nil {
			return err
		}
		return c.JSON(bills)
	}
}

// ListBillsHandler lists bills, optionally restricted to one company.
func ListBillsHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := repository.Filter{}
		if companyID := c.QueryInt("company_id"); companyID > 0 {
			filter["company_id"] = uint(companyID)
		}
		bills, err := repository.Find[models.Bill](repo, filter).Order("date").All()
		if err != nil {
			return err
		}
		return c.JSON(bills)
	}
}

func GetBillHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c)
		if err != nil {
			return err
		}
		bill, err := repository.Find[models.Bill](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}
		return c.JSON(bill)
	}
}

func dateRange(c *fiber.Ctx) (start, end time.Time, err error) {
	start, err = httputil.ParseDate(c, "start")
	if err != nil {
		return start, end, err
	}
	end, err = httputil.ParseDate(c, "end")
	return start, end, err
}
