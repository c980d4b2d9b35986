package routes

import (
	excel_controllers "habit-tracker-backend/excel/controllers"
	excel_repositories "habit-tracker-backend/excel/repositories"
	"habit-tracker-backend/excel/services"
	"habit-tracker-backend/token"
	"habit-tracker-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func ExcelRouterInit(
	app *fiber.App,
	excelRepo excel_repositories.ExcelRepository,
	ingestion *services.IngestionService,
	tracker *services.ProgressTracker,
	storage utils.FileStorage,
	tokenMaker token.Maker,
	cache utils.ListingCache,
) {
	excelController := &excel_controllers.ExcelController{
		ExcelRepo:  excelRepo,
		Ingestion:  ingestion,
		Tracker:    tracker,
		Storage:    storage,
		TokenMaker: tokenMaker,
		Cache:      cache,
	}

	app.Post("/excel/upload_excel", excelController.UploadExcelController)
	app.Get("/excel/progress", excelController.GetProgressController)
	app.Get("/excel/data", excelController.GetExcelDataController)
	app.Get("/excel/list-files", excelController.ListUploadedFilesController)
	app.Delete("/excel/file/:filename", excelController.DeleteUploadedFileController)
	app.Delete("/excel/data", excelController.DeleteAllDataController)
}
