package httputil

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ParseID reads the :id route parameter. Anything non-numeric is a client
// error, not a lookup miss.
func ParseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "the id field must be an integer")
	}
	return uint(id), nil
}

// ParseDate reads a required "2006-01-02" query parameter.
func ParseDate(c *fiber.Ctx, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "query parameter '"+name+"' is required (format 2006-01-02)")
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "query parameter '"+name+"' must use format 2006-01-02")
	}
	return t, nil
}
