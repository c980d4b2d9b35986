package controllers

import (
	"habit-tracker-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ListUploadedFilesController lists every upload kept in storage; files
// survive successful ingestion on purpose, for retrieval and audit.
func (ec *ExcelController) ListUploadedFilesController(c *fiber.Ctx) error {
	files, err := ec.Storage.ListFiles()
	if err != nil {
		config.Logger.Error("Failed to list uploaded files", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list files",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"files": files,
		"count": len(files),
	})
}
