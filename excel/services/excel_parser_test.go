package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestIsSupportedSpreadsheet(t *testing.T) {
	tests := []struct {
		fileName string
		want     bool
	}{
		{"datos.xlsx", true},
		{"datos.xls", true},
		{"DATOS.XLSX", true},
		{"datos.csv", false},
		{"datos.txt", false},
		{"datos", false},
		{"datos.xlsx.exe", false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, IsSupportedSpreadsheet(tc.fileName), tc.fileName)
	}
}

func TestParseWorkbook_ReturnsHeadersAndDataRows(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"name", "email", "age"},
		{"ana", "ana@example.com", "30"},
		{"luis", "luis@example.com", "41"},
	})

	headers, rows, err := ParseWorkbook(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "email", "age"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"ana", "ana@example.com", "30"}, rows[0])
}

func TestParseWorkbook_HeaderOnlyIsEmpty(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"name", "email"},
	})

	_, _, err := ParseWorkbook(path)
	assert.ErrorIs(t, err, ErrEmptyWorkbook)
}

func TestParseWorkbook_NoRowsIsEmpty(t *testing.T) {
	path := writeWorkbook(t, nil)

	_, _, err := ParseWorkbook(path)
	assert.ErrorIs(t, err, ErrEmptyWorkbook)
}

func TestParseWorkbook_GarbageFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a spreadsheet"), 0644))

	_, _, err := ParseWorkbook(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyWorkbook)
}

func TestCellAt_TotalCoercion(t *testing.T) {
	row := []string{"a", ""}

	require.NotNil(t, CellAt(row, 0))
	assert.Equal(t, "a", *CellAt(row, 0))

	// An empty cell is still a present cell
	require.NotNil(t, CellAt(row, 1))
	assert.Equal(t, "", *CellAt(row, 1))

	// Positions past the row's width are nil, not an error
	assert.Nil(t, CellAt(row, 2))
	assert.Nil(t, CellAt(row, 4))
}
