package repositories

import (
	"habit-tracker-backend/db/models"

	"gorm.io/gorm"
)

type ExcelRepository interface {
	BulkInsertRecords(records []models.ExcelRecord) error
	GetRecords(limit int, offset int) ([]models.ExcelRecord, error)
	CountRecords() (int64, error)
	DeleteAllRecords() (int64, error)
}

type excelRepository struct {
	db *gorm.DB
}

func NewExcelRepository(db *gorm.DB) ExcelRepository {
	return &excelRepository{
		db: db,
	}
}

// BulkInsertRecords commits one batch of ingested rows as a single
// transaction.
func (r *excelRepository) BulkInsertRecords(records []models.ExcelRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
}

// GetRecords returns a page of ingested rows, most recent upload first.
func (r *excelRepository) GetRecords(limit int, offset int) ([]models.ExcelRecord, error) {
	var records []models.ExcelRecord
	err := r.db.
		Order("uploaded_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	return records, err
}

func (r *excelRepository) CountRecords() (int64, error) {
	var total int64
	err := r.db.Model(&models.ExcelRecord{}).Count(&total).Error
	return total, err
}

// DeleteAllRecords clears the table and reports how many rows were
// removed.
func (r *excelRepository) DeleteAllRecords() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&models.ExcelRecord{})
	return result.RowsAffected, result.Error
}
