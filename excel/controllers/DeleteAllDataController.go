package controllers

import (
	"habit-tracker-backend/config"
	"habit-tracker-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DeleteAllDataController clears every ingested row and every stored
// upload. The two deletions are independent: a file cleanup failure does
// not undo the row deletion, it is reported as a partial result instead.
func (ec *ExcelController) DeleteAllDataController(c *fiber.Ctx) error {
	deletedRecords, err := ec.ExcelRepo.DeleteAllRecords()
	if err != nil {
		config.Logger.Error("Failed to delete excel records", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete data",
		})
	}

	deletedFiles, err := ec.Storage.DeleteAllFiles()
	if err != nil {
		// Rows are already gone; report what happened rather than failing
		// the whole request.
		config.Logger.Warn("Failed to delete some uploaded files", zap.Error(err))
	}

	utils.InvalidateCacheAsync("excel_data")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":         "Data and files deleted successfully",
		"deleted_records": deletedRecords,
		"deleted_files":   deletedFiles,
	})
}
