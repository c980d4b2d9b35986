package controllers

import (
	"net/url"
	"strings"

	"habit-tracker-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DeleteUploadedFileController removes one file from upload storage.
// Names carrying path separators or a leading dot are rejected before
// touching the filesystem.
func (ec *ExcelController) DeleteUploadedFileController(c *fiber.Ctx) error {
	fileName, err := url.PathUnescape(c.Params("filename"))
	if err != nil || fileName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid file name",
		})
	}

	if strings.ContainsAny(fileName, "/\\") || strings.HasPrefix(fileName, ".") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid file name",
		})
	}

	exists, err := ec.Storage.FileExists(fileName)
	if err != nil {
		config.Logger.Error("Failed to check file existence", zap.String("file", fileName), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete file",
		})
	}
	if !exists {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "File not found: " + fileName,
		})
	}

	if err := ec.Storage.DeleteFile(fileName); err != nil {
		config.Logger.Error("Failed to delete uploaded file", zap.String("file", fileName), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete file",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":      "File '" + fileName + "' deleted successfully",
		"deleted_file": fileName,
	})
}
