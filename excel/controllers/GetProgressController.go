package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// GetProgressController is the polling alternative to the websocket
// stream, for clients that cannot hold a socket open.
func (ec *ExcelController) GetProgressController(c *fiber.Ctx) error {
	progress, status := ec.Tracker.Snapshot()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"progress": progress,
		"status":   status,
	})
}
