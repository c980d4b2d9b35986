package routes

import (
	notification_controllers "habit-tracker-backend/notifications/controllers"
	notification_repositories "habit-tracker-backend/notifications/repositories"
	users_repositories "habit-tracker-backend/users/repositories"

	"github.com/gofiber/fiber/v2"
)

func NotificationRouterInit(
	app *fiber.App,
	notificationRepo notification_repositories.NotificationRepository,
	userRepo users_repositories.UserRepository,
) {
	notificationController := &notification_controllers.NotificationController{
		NotificationRepo: notificationRepo,
		UserRepo:         userRepo,
	}

	app.Get("/notifications", notificationController.GetNotificationsController)
	app.Get("/notifications/unread/count", notificationController.GetUnreadCountController)
	app.Post("/notifications", notificationController.CreateNotificationController)
	app.Put("/notifications/:id/read", notificationController.MarkNotificationAsReadController)
	app.Put("/notifications/mark-all/read", notificationController.MarkAllNotificationsAsReadController)
}
