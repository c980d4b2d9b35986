package controllers

import (
	"habit-tracker-backend/excel/repositories"
	"habit-tracker-backend/excel/services"
	"habit-tracker-backend/token"
	"habit-tracker-backend/utils"
)

type ExcelController struct {
	ExcelRepo  repositories.ExcelRepository
	Ingestion  *services.IngestionService
	Tracker    *services.ProgressTracker
	Storage    utils.FileStorage
	TokenMaker token.Maker
	Cache      utils.ListingCache
}
