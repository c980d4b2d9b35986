package controllers

import (
	"errors"
	"strings"

	"habit-tracker-backend/config"
	"habit-tracker-backend/excel/services"
	"habit-tracker-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UploadExcelController handles the bulk spreadsheet upload. The heavy
// lifting lives in the ingestion service; this handler only deals with
// multipart plumbing, user resolution and error-to-status mapping.
func (ec *ExcelController) UploadExcelController(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to get file",
		})
	}

	userID := ec.resolveUserID(c)

	src, err := fileHeader.Open()
	if err != nil {
		config.Logger.Error("Failed to open uploaded file", zap.String("file", fileHeader.Filename), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}
	defer src.Close()

	result, err := ec.Ingestion.Ingest(src, fileHeader.Filename, userID)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedFormat) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "The file must be .xls or .xlsx",
			})
		}
		if errors.Is(err, services.ErrEmptyWorkbook) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "The Excel file is empty",
			})
		}
		config.Logger.Error("Excel ingestion failed",
			zap.String("file", fileHeader.Filename),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process the file: " + err.Error(),
		})
	}

	// Listing caches are stale now that new rows exist
	utils.InvalidateCacheAsync("excel_data")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":        "File processed successfully",
		"filename":       result.FileName,
		"rows_processed": result.RowsProcessed,
		"columns":        result.Columns,
	})
}

// resolveUserID takes the explicit user_id form value when present,
// otherwise tries to decode a bearer token. Any decode failure simply
// yields "no user": the notification side effect is skipped, the upload
// itself proceeds.
func (ec *ExcelController) resolveUserID(c *fiber.Ctx) string {
	if userID := c.FormValue("user_id"); userID != "" {
		return userID
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}

	payload, err := ec.TokenMaker.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		config.Logger.Warn("Could not decode bearer token for upload notification", zap.Error(err))
		return ""
	}
	return payload.UserID
}
