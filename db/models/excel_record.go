package models

import (
	"time"
)

// ExcelRecord stores one row ingested from an uploaded spreadsheet.
// The five columns are generic text slots; adapt the mapping to your sheet.
type ExcelRecord struct {
	ID      uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Column1 *string `gorm:"type:varchar(255)" json:"column1"`
	Column2 *string `gorm:"type:varchar(255)" json:"column2"`
	Column3 *string `gorm:"type:varchar(255)" json:"column3"`
	Column4 *string `gorm:"type:varchar(255)" json:"column4"`
	Column5 *string `gorm:"type:varchar(255)" json:"column5"`

	// Provenance metadata
	FileName   string    `gorm:"type:varchar(255);index" json:"file_name"`
	UploadedAt time.Time `gorm:"not null;index" json:"uploaded_at"`
}

// TableName keeps the table name the frontend already queries against.
func (ExcelRecord) TableName() string {
	return "excel_data"
}
