package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"habit-tracker-backend/config"
	"habit-tracker-backend/db/models"
	"habit-tracker-backend/excel/services"
	"habit-tracker-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	config.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func newTestApp(t *testing.T) (*fiber.App, utils.FileStorage, *services.ProgressTracker) {
	t.Helper()

	storage := utils.NewLocalFileStorage(t.TempDir())
	tracker := services.NewProgressTracker()
	controller := &ExcelController{
		Tracker: tracker,
		Storage: storage,
	}

	app := fiber.New()
	app.Get("/excel/progress", controller.GetProgressController)
	app.Get("/excel/list-files", controller.ListUploadedFilesController)
	app.Delete("/excel/file/:filename", controller.DeleteUploadedFileController)
	return app, storage, tracker
}

// fakeRecordsRepo serves pages from an in-memory slice and counts how
// often the database would have been hit.
type fakeRecordsRepo struct {
	records    []models.ExcelRecord
	getCalls   int
	failInsert bool
}

func (r *fakeRecordsRepo) BulkInsertRecords(records []models.ExcelRecord) error {
	if r.failInsert {
		return errors.New("connection reset by peer")
	}
	r.records = append(r.records, records...)
	return nil
}

func (r *fakeRecordsRepo) GetRecords(limit int, offset int) ([]models.ExcelRecord, error) {
	r.getCalls++
	if offset >= len(r.records) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.records) {
		end = len(r.records)
	}
	return r.records[offset:end], nil
}

func (r *fakeRecordsRepo) CountRecords() (int64, error) {
	return int64(len(r.records)), nil
}

func (r *fakeRecordsRepo) DeleteAllRecords() (int64, error) {
	n := int64(len(r.records))
	r.records = nil
	return n, nil
}

type fakeListingCache struct {
	entries map[string][]byte
	sets    int
}

func (c *fakeListingCache) Get(ctx context.Context, key string) ([]byte, bool) {
	v, ok := c.entries[key]
	return v, ok
}

func (c *fakeListingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	c.entries[key] = value
	c.sets++
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestGetProgressController_IdleTracker(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/excel/progress", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, 0.0, body["progress"])
	assert.Equal(t, "processing", body["status"])
}

func TestGetProgressController_CompletedJob(t *testing.T) {
	app, _, tracker := newTestApp(t)
	tracker.Complete()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/excel/progress", nil))
	require.NoError(t, err)

	body := decodeBody(t, resp)
	assert.Equal(t, 100.0, body["progress"])
	assert.Equal(t, "completed", body["status"])
}

func TestListUploadedFilesController(t *testing.T) {
	app, storage, _ := newTestApp(t)
	_, err := storage.UploadFileFromReader(bytes.NewBufferString("x"), "a.xlsx")
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/excel/list-files", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, 1.0, body["count"])
	files := body["files"].([]interface{})
	require.Len(t, files, 1)
	assert.Equal(t, "a.xlsx", files[0].(map[string]interface{})["filename"])
}

func TestDeleteUploadedFileController_RejectsTraversalNames(t *testing.T) {
	app, _, _ := newTestApp(t)

	for _, target := range []string{
		"/excel/file/..%5C..%5Cboot", // decodes to ..\..\boot
		"/excel/file/.env",           // hidden file
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, target, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
	}
}

func TestDeleteUploadedFileController_MissingFileIs404(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/excel/file/nope.xlsx", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteUploadedFileController_DeletesExistingFile(t *testing.T) {
	app, storage, _ := newTestApp(t)
	_, err := storage.UploadFileFromReader(bytes.NewBufferString("x"), "datos.xlsx")
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/excel/file/datos.xlsx", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "datos.xlsx", body["deleted_file"])

	exists, err := storage.FileExists("datos.xlsx")
	require.NoError(t, err)
	assert.False(t, exists)
}

func newDataTestApp(repo *fakeRecordsRepo, cache utils.ListingCache) *fiber.App {
	controller := &ExcelController{
		ExcelRepo: repo,
		Cache:     cache,
	}
	app := fiber.New()
	app.Get("/excel/data", controller.GetExcelDataController)
	return app
}

func seedRecords(n int) []models.ExcelRecord {
	records := make([]models.ExcelRecord, n)
	for i := range records {
		records[i] = models.ExcelRecord{
			ID:         uint(i + 1),
			FileName:   "seed.xlsx",
			UploadedAt: time.Now().UTC(),
		}
	}
	return records
}

func TestGetExcelDataController_InvalidPagination(t *testing.T) {
	app := newDataTestApp(&fakeRecordsRepo{}, nil)

	for _, target := range []string{
		"/excel/data?limit=0",
		"/excel/data?limit=-5",
		"/excel/data?offset=-1",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
	}
}

func TestGetExcelDataController_WithoutCache(t *testing.T) {
	repo := &fakeRecordsRepo{records: seedRecords(3)}
	app := newDataTestApp(repo, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/excel/data", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, 3.0, body["total"])
	assert.Equal(t, 100.0, body["limit"])
	assert.Len(t, body["data"], 3)
}

func TestGetExcelDataController_ReadThroughCache(t *testing.T) {
	repo := &fakeRecordsRepo{records: seedRecords(5)}
	cache := &fakeListingCache{entries: map[string][]byte{}}
	app := newDataTestApp(repo, cache)

	fetch := func(target string) []byte {
		t.Helper()
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		defer resp.Body.Close()
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return raw
	}

	// First request misses and fills the cache under the page key
	first := fetch("/excel/data?limit=2&offset=0")
	assert.Equal(t, 1, repo.getCalls)
	assert.Equal(t, 1, cache.sets)
	require.Contains(t, cache.entries, "excel_data:listing:2:0")

	// Second request is served from the cache, byte for byte
	second := fetch("/excel/data?limit=2&offset=0")
	assert.Equal(t, 1, repo.getCalls)
	assert.Equal(t, first, second)

	// A different page is its own key, not a hit
	fetch("/excel/data?limit=2&offset=2")
	assert.Equal(t, 2, repo.getCalls)
	require.Contains(t, cache.entries, "excel_data:listing:2:2")
}

func newUploadTestApp(t *testing.T, repo *fakeRecordsRepo) *fiber.App {
	t.Helper()

	storage := utils.NewLocalFileStorage(t.TempDir())
	tracker := services.NewProgressTracker()
	controller := &ExcelController{
		ExcelRepo: repo,
		Ingestion: services.NewIngestionService(repo, storage, tracker, nil),
		Tracker:   tracker,
		Storage:   storage,
	}

	app := fiber.New()
	app.Post("/excel/upload_excel", controller.UploadExcelController)
	return app
}

func multipartUpload(t *testing.T, fileName string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/excel/upload_excel", body)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	return req
}

func uploadWorkbook(t *testing.T, dataRows int) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	headers := []interface{}{"col_a", "col_b"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &headers))
	for i := 0; i < dataRows; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		row := []interface{}{fmt.Sprintf("r%d", i), "x"}
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestUploadExcelController_MissingFilePartIs400(t *testing.T) {
	app := newUploadTestApp(t, &fakeRecordsRepo{})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/excel/upload_excel", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadExcelController_UnsupportedExtensionIs400(t *testing.T) {
	app := newUploadTestApp(t, &fakeRecordsRepo{})

	resp, err := app.Test(multipartUpload(t, "datos.csv", []byte("a,b\n1,2")), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "The file must be .xls or .xlsx", body["error"])
}

func TestUploadExcelController_EmptyWorkbookIs400(t *testing.T) {
	app := newUploadTestApp(t, &fakeRecordsRepo{})

	resp, err := app.Test(multipartUpload(t, "empty.xlsx", uploadWorkbook(t, 0)), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "The Excel file is empty", body["error"])
}

func TestUploadExcelController_PersistenceFailureIs500(t *testing.T) {
	app := newUploadTestApp(t, &fakeRecordsRepo{failInsert: true})

	resp, err := app.Test(multipartUpload(t, "datos.xlsx", uploadWorkbook(t, 3)), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestUploadExcelController_Success(t *testing.T) {
	repo := &fakeRecordsRepo{}
	app := newUploadTestApp(t, repo)

	resp, err := app.Test(multipartUpload(t, "datos.xlsx", uploadWorkbook(t, 3)), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "File processed successfully", body["message"])
	assert.Equal(t, "datos.xlsx", body["filename"])
	assert.Equal(t, 3.0, body["rows_processed"])
	assert.Equal(t, []interface{}{"col_a", "col_b"}, body["columns"])
	assert.Len(t, repo.records, 3)
}
