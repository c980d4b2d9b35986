package utils

import (
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

// StoredFileInfo describes one file kept in upload storage.
type StoredFileInfo struct {
	Filename   string    `json:"filename"`
	SizeBytes  int64     `json:"size_bytes"`
	SizeMB     float64   `json:"size_mb"`
	ModifiedAt time.Time `json:"modified_at"`
}

type FileStorage interface {
	UploadFile(file multipart.File, fileName string) (string, error)
	UploadFileFromReader(src io.Reader, fileName string) (string, error)
	DownloadFile(fileName string) (io.ReadCloser, error)
	DeleteFile(fileName string) error
	DeleteAllFiles() (int, error)
	ListFiles() ([]StoredFileInfo, error)
	FileExists(fileName string) (bool, error)
}

type LocalFileStorage struct {
	uploadPath string
}

func NewLocalFileStorage(uploadPath string) *LocalFileStorage {
	return &LocalFileStorage{uploadPath: uploadPath}
}

func (s *LocalFileStorage) ensureUploadDir() error {
	if _, err := os.Stat(s.uploadPath); os.IsNotExist(err) {
		if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
			return fmt.Errorf("failed to create upload directory: %w", err)
		}
	}
	return nil
}

// UploadFile handles multipart file uploads. An existing file with the
// same name is overwritten (last write wins).
func (s *LocalFileStorage) UploadFile(file multipart.File, fileName string) (string, error) {
	return s.UploadFileFromReader(file, fileName)
}

// UploadFileFromReader handles file uploads from any io.Reader
func (s *LocalFileStorage) UploadFileFromReader(src io.Reader, fileName string) (string, error) {
	if err := s.ensureUploadDir(); err != nil {
		return "", err
	}

	filePath := filepath.Join(s.uploadPath, fileName)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		// Clean up on error
		os.Remove(filePath)
		return "", fmt.Errorf("failed to copy file content: %w", err)
	}

	return filePath, nil
}

// DownloadFile retrieves a file for reading
func (s *LocalFileStorage) DownloadFile(fileName string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.uploadPath, fileName)

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// DeleteFile removes a file from storage
func (s *LocalFileStorage) DeleteFile(fileName string) error {
	fullPath := filepath.Join(s.uploadPath, fileName)

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil // File doesn't exist, nothing to delete
	}

	err := os.Remove(fullPath)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// DeleteAllFiles removes every file from storage and reports how many
// were deleted. Subdirectories are left alone.
func (s *LocalFileStorage) DeleteAllFiles() (int, error) {
	entries, err := os.ReadDir(s.uploadPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read upload directory: %w", err)
	}

	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.uploadPath, entry.Name())); err != nil {
			return deleted, fmt.Errorf("failed to delete file %s: %w", entry.Name(), err)
		}
		deleted++
	}

	return deleted, nil
}

// ListFiles returns metadata for every file in storage.
func (s *LocalFileStorage) ListFiles() ([]StoredFileInfo, error) {
	entries, err := os.ReadDir(s.uploadPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []StoredFileInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read upload directory: %w", err)
	}

	files := make([]StoredFileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat file %s: %w", entry.Name(), err)
		}
		files = append(files, StoredFileInfo{
			Filename:   info.Name(),
			SizeBytes:  info.Size(),
			SizeMB:     math.Round(float64(info.Size())/(1024*1024)*100) / 100,
			ModifiedAt: info.ModTime(),
		})
	}

	return files, nil
}

// FileExists checks if a file exists in storage
func (s *LocalFileStorage) FileExists(fileName string) (bool, error) {
	fullPath := filepath.Join(s.uploadPath, fileName)

	_, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check file existence: %w", err)
	}

	return true, nil
}
