package export

import (
	"encoding/base64"

	"github.com/gofiber/fiber/v2"
)

type ExportRequest struct {
	Data string `json:"data"`
}

// ListExportersHandler lists the registered exporter names.
func ListExportersHandler(reg *Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(reg.Names())
	}
}

// ExportHandler runs the named exporter over the posted data and returns the
// result base64-encoded.
func ExportHandler(reg *Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		exporter, ok := reg.Get(c.Params("name"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown exporter")
		}

		body := ExportRequest{Data: "<html></html>"}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
			}
		}

		result, err := exporter.Export(body.Data)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"name": exporter.Name(),
			"data": base64.StdEncoding.EncodeToString(result),
		})
	}
}
