package services

import (
	"errors"
	"fmt"
	"io"
	"time"

	"habit-tracker-backend/config"
	"habit-tracker-backend/db/models"
	"habit-tracker-backend/excel/repositories"
	"habit-tracker-backend/utils"

	"go.uber.org/zap"
)

const (
	// batchSize is how many rows are grouped into one commit.
	batchSize = 10

	// batchPause is a cooperative yield after each committed batch so
	// progress readers are not starved by a tight insert loop. Fairness
	// only, no correctness riding on it.
	batchPause = 100 * time.Millisecond
)

// UploadNotifier records a completion notice for the user who triggered
// an upload. Implementations own their transaction; failures never
// propagate into the ingestion result.
type UploadNotifier interface {
	NotifyUploadComplete(userID string, fileName string) error
}

// IngestResult is what a successful ingestion reports back to the client.
type IngestResult struct {
	FileName      string   `json:"filename"`
	RowsProcessed int      `json:"rows_processed"`
	Columns       []string `json:"columns"`
}

// IngestionService drives the row-by-row persistence loop for uploaded
// spreadsheets: save the raw file, parse it, insert rows in batches while
// publishing progress, then fire the notification side effect.
type IngestionService struct {
	excelRepo repositories.ExcelRepository
	storage   utils.FileStorage
	tracker   *ProgressTracker
	notifier  UploadNotifier
}

func NewIngestionService(
	excelRepo repositories.ExcelRepository,
	storage utils.FileStorage,
	tracker *ProgressTracker,
	notifier UploadNotifier,
) *IngestionService {
	return &IngestionService{
		excelRepo: excelRepo,
		storage:   storage,
		tracker:   tracker,
		notifier:  notifier,
	}
}

// Ingest runs the whole pipeline for one uploaded file. userID may be
// empty, in which case the notification step is skipped.
//
// On any persistence or parse failure past the empty-file check the
// progress tracker is reset and the stored upload removed; on success the
// upload is deliberately kept for later retrieval via the file listing.
func (s *IngestionService) Ingest(src io.Reader, fileName string, userID string) (*IngestResult, error) {
	if !IsSupportedSpreadsheet(fileName) {
		return nil, ErrUnsupportedFormat
	}

	path, err := s.storage.UploadFileFromReader(src, fileName)
	if err != nil {
		// fail() also clears any reading left over from a previous job;
		// DeleteFile on the never-written upload is a no-op.
		return nil, s.fail(fileName, fmt.Errorf("failed to save uploaded file: %w", err))
	}

	headers, rows, err := ParseWorkbook(path)
	if err != nil {
		if errors.Is(err, ErrEmptyWorkbook) {
			// Nothing to ingest; the upload stays on disk for audit.
			return nil, err
		}
		return nil, s.fail(fileName, err)
	}

	s.tracker.Reset()

	totalRows := len(rows)
	batch := make([]models.ExcelRecord, 0, batchSize)
	rowsProcessed := 0
	uploadedAt := time.Now().UTC()

	for _, row := range rows {
		batch = append(batch, models.ExcelRecord{
			Column1:    CellAt(row, 0),
			Column2:    CellAt(row, 1),
			Column3:    CellAt(row, 2),
			Column4:    CellAt(row, 3),
			Column5:    CellAt(row, 4),
			FileName:   fileName,
			UploadedAt: uploadedAt,
		})
		rowsProcessed++
		s.tracker.Advance(rowsProcessed, totalRows)

		if rowsProcessed%batchSize == 0 {
			if err := s.excelRepo.BulkInsertRecords(batch); err != nil {
				return nil, s.fail(fileName, fmt.Errorf("failed to insert batch: %w", err))
			}
			batch = batch[:0]
			time.Sleep(batchPause)
		}
	}

	// Remaining rows that did not fill a whole batch
	if err := s.excelRepo.BulkInsertRecords(batch); err != nil {
		return nil, s.fail(fileName, fmt.Errorf("failed to insert final batch: %w", err))
	}

	s.tracker.Complete()

	if userID != "" {
		if err := s.notifier.NotifyUploadComplete(userID, fileName); err != nil {
			// Side effect is isolated: log and move on, the rows are
			// already committed.
			config.Logger.Error("Failed to record upload notification",
				zap.String("user_id", userID),
				zap.String("file", fileName),
				zap.Error(err),
			)
		}
	}

	return &IngestResult{
		FileName:      fileName,
		RowsProcessed: rowsProcessed,
		Columns:       headers,
	}, nil
}

// fail resets shared progress state and removes the stored upload before
// surfacing the error.
func (s *IngestionService) fail(fileName string, err error) error {
	s.tracker.Reset()
	if removeErr := s.storage.DeleteFile(fileName); removeErr != nil {
		config.Logger.Warn("Failed to remove upload after ingestion error",
			zap.String("file", fileName),
			zap.Error(removeErr),
		)
	}
	return fmt.Errorf("failed to process file: %w", err)
}
