package controllers

import (
	"errors"

	"habit-tracker-backend/config"
	"habit-tracker-backend/db/models"
	"habit-tracker-backend/notifications/repositories"
	"habit-tracker-backend/notifications/requests"
	users_repositories "habit-tracker-backend/users/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationController struct {
	NotificationRepo repositories.NotificationRepository
	UserRepo         users_repositories.UserRepository
}

// GetNotificationsController returns a user's notifications, newest
// first, with actions preloaded.
func (nc *NotificationController) GetNotificationsController(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or missing user_id parameter",
		})
	}
	includeRead := c.QueryBool("include_read", true)

	notifications, err := nc.NotificationRepo.GetUserNotifications(userID, includeRead)
	if err != nil {
		config.Logger.Error("Failed to fetch notifications", zap.String("user_id", userID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch notifications",
		})
	}

	return c.Status(fiber.StatusOK).JSON(notifications)
}

// GetUnreadCountController returns how many notifications the user has
// not read yet.
func (nc *NotificationController) GetUnreadCountController(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or missing user_id parameter",
		})
	}

	count, err := nc.NotificationRepo.CountUnread(userID)
	if err != nil {
		config.Logger.Error("Failed to count unread notifications", zap.String("user_id", userID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count notifications",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"unread_count": count,
	})
}

// CreateNotificationController creates a notification directly, outside
// the upload side effect.
func (nc *NotificationController) CreateNotificationController(c *fiber.Ctx) error {
	var req requests.CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Title == "" || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title and message are required",
		})
	}

	user, err := nc.UserRepo.GetUserByID(req.UserID)
	if err != nil {
		if errors.Is(err, users_repositories.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		config.Logger.Error("Failed to look up user for notification", zap.String("user_id", req.UserID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create notification",
		})
	}

	notification := &models.Notification{
		UserID:  user.ID,
		Title:   req.Title,
		Message: req.Message,
		IsRead:  req.IsRead,
	}
	for _, action := range req.Actions {
		notification.Actions = append(notification.Actions, models.NotificationAction{
			ActionType: models.NotificationActionType(action.ActionType),
			Label:      action.Label,
			Payload:    action.Payload,
		})
	}

	created, err := nc.NotificationRepo.CreateNotification(notification)
	if err != nil {
		config.Logger.Error("Failed to create notification", zap.String("user_id", req.UserID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create notification",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// MarkNotificationAsReadController marks a single notification read.
func (nc *NotificationController) MarkNotificationAsReadController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid notification id",
		})
	}

	notification, err := nc.NotificationRepo.MarkAsRead(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Notification not found",
			})
		}
		config.Logger.Error("Failed to mark notification as read", zap.String("id", id.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update notification",
		})
	}

	return c.Status(fiber.StatusOK).JSON(notification)
}

// MarkAllNotificationsAsReadController marks every unread notification
// for the user as read and reports how many changed.
func (nc *NotificationController) MarkAllNotificationsAsReadController(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or missing user_id parameter",
		})
	}

	updated, err := nc.NotificationRepo.MarkAllAsRead(userID)
	if err != nil {
		config.Logger.Error("Failed to mark notifications as read", zap.String("user_id", userID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update notifications",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"updated": updated,
	})
}
