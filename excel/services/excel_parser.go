package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedFormat means the file name does not carry a spreadsheet
	// extension. Checked before any content is read.
	ErrUnsupportedFormat = errors.New("file must be .xls or .xlsx")

	// ErrEmptyWorkbook means the first sheet has no data rows below the
	// header row.
	ErrEmptyWorkbook = errors.New("the Excel file is empty")
)

// IsSupportedSpreadsheet reports whether the file name carries one of the
// accepted spreadsheet extensions.
func IsSupportedSpreadsheet(fileName string) bool {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xls", ".xlsx":
		return true
	}
	return false
}

// ParseWorkbook opens a saved spreadsheet and returns the header row plus
// all data rows from the first sheet. Cells come back as text; a data row
// may be shorter than the header row when trailing cells are empty.
func ParseWorkbook(path string) (headers []string, rows [][]string, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	allRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows from Excel sheet: %w", err)
	}

	if len(allRows) == 0 {
		return nil, nil, ErrEmptyWorkbook
	}

	headers = allRows[0]
	rows = allRows[1:]
	if len(rows) == 0 {
		return nil, nil, ErrEmptyWorkbook
	}

	return headers, rows, nil
}

// CellAt returns a pointer to the text of the cell at position idx, or
// nil when the row is too short. Coercion is total: it cannot fail for
// any row shape.
func CellAt(row []string, idx int) *string {
	if idx >= len(row) {
		return nil
	}
	value := row[idx]
	return &value
}
