package main

import (
	"context"
	"time"

	"habit-tracker-backend/config"
	"habit-tracker-backend/middleware"
	"habit-tracker-backend/token"
	"habit-tracker-backend/utils"

	// Repositories
	excel_repositories "habit-tracker-backend/excel/repositories"
	notification_repositories "habit-tracker-backend/notifications/repositories"
	users_repositories "habit-tracker-backend/users/repositories"

	// Services
	excel_services "habit-tracker-backend/excel/services"
	notification_services "habit-tracker-backend/notifications/services"

	// Routes
	excel_routes "habit-tracker-backend/excel/routes"
	notification_routes "habit-tracker-backend/notifications/routes"

	// WebSocket
	"habit-tracker-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	err := godotenv.Load(".env")
	if err != nil {
		config.Logger.Fatal("Error loading .env file", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // uploads can be large spreadsheets
	})

	// Apply CORS middleware from middleware package
	middleware.InitCors(app)

	// Initialize database and configs
	db := config.ConfigureDatabase()
	port := config.GetEnvOrDefault("PORT", "8000")
	ctx := context.Background()

	redisClient := config.InitRedisServer(ctx)

	// Token verification tries the primary key first, then the legacy key,
	// so tokens issued before the key rotation still resolve a user.
	primaryKey := config.GetEnvOrDefault("SECRET_KEY", "keysecreta")
	legacyKey := config.GetEnv("LEGACY_SECRET_KEY")
	tokenMaker, err := token.NewJWTMaker(primaryKey, legacyKey)
	if err != nil {
		config.Logger.Fatal("Cannot create token maker", zap.Error(err))
	}

	uploadDir := config.GetEnvOrDefault("UPLOAD_DIR", "./uploads")

	// Serve stored uploads for the notification download action
	app.Static("/uploads", uploadDir)

	// Repositories
	excelRepo := excel_repositories.NewExcelRepository(db)
	userRepo := users_repositories.NewUserRepository(db)
	notificationRepo := notification_repositories.NewNotificationRepository(db)

	// Services
	listingCache := utils.NewRedisListingCache(redisClient)
	fileStorage := utils.NewLocalFileStorage(uploadDir)
	tracker := excel_services.NewProgressTracker()
	uploadNotifier := notification_services.NewUploadNotificationService(notificationRepo, userRepo)
	ingestionService := excel_services.NewIngestionService(excelRepo, fileStorage, tracker, uploadNotifier)

	// Routes
	excel_routes.ExcelRouterInit(app, excelRepo, ingestionService, tracker, fileStorage, tokenMaker, listingCache)
	notification_routes.NotificationRouterInit(app, notificationRepo, userRepo)

	// ------ WebSocket progress publisher ------
	wsHub := websocket.NewHub()
	go wsHub.Run()
	wsHandler := websocket.NewProgressHandler(wsHub, tracker)
	app.Get("/excel/ws/progress", wsHandler.HandleProgress)
	config.Logger.Info("WebSocket progress endpoint registered at /excel/ws/progress")

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Habit Tracker API up and running"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	// Background cleanup of expired uploads
	go utils.RunScheduledCleanup(redisClient, uploadDir, 7*24*time.Hour)

	// Start the application
	config.Logger.Info("Server starting", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}
