package controllers

import (
	"encoding/json"
	"fmt"
	"time"

	"habit-tracker-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// listingCacheTTL bounds staleness for pages that were never explicitly
// invalidated; uploads and bulk deletes drop the keys immediately.
const listingCacheTTL = 5 * time.Minute

// GetExcelDataController returns ingested rows with limit/offset
// pagination, most recent upload first. Pages are served read-through
// from Redis: a hit skips the database entirely, a miss fills the cache
// for the next caller.
func (ec *ExcelController) GetExcelDataController(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	if limit <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid limit parameter",
		})
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid offset parameter",
		})
	}

	cacheKey := fmt.Sprintf("excel_data:listing:%d:%d", limit, offset)
	if ec.Cache != nil {
		if cached, ok := ec.Cache.Get(c.Context(), cacheKey); ok {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Status(fiber.StatusOK).Send(cached)
		}
	}

	records, err := ec.ExcelRepo.GetRecords(limit, offset)
	if err != nil {
		config.Logger.Error("Failed to fetch excel data", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch data",
		})
	}

	total, err := ec.ExcelRepo.CountRecords()
	if err != nil {
		config.Logger.Error("Failed to count excel data", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch data",
		})
	}

	payload := fiber.Map{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"data":   records,
	}

	if ec.Cache != nil {
		if raw, err := json.Marshal(payload); err == nil {
			ec.Cache.Set(c.Context(), cacheKey, raw, listingCacheTTL)
		}
	}

	return c.Status(fiber.StatusOK).JSON(payload)
}
