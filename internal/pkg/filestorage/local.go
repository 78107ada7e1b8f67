package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ecampus/backend/internal/pkg/apperrors"
	"github.com/ecampus/backend/internal/pkg/logger"
)

// allowed extensions for profile photo uploads
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

const maxUploadSize = 5 << 20 // 5 MiB

// LocalStorage persists uploaded files on the local filesystem and serves
// them back through a URL prefix.
type LocalStorage struct {
	basePath  string
	urlPrefix string
}

func NewLocalStorage(basePath, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("error creating storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// SaveImage validates and stores an uploaded image, returning its public URL.
func (s *LocalStorage) SaveImage(file *multipart.FileHeader) (string, error) {
	if file.Size > maxUploadSize {
		return "", apperrors.NewValidationError("file exceeds the maximum allowed size")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return "", apperrors.NewValidationError("unsupported image format")
	}

	name := uuid.New().String() + ext
	dst := filepath.Join(s.basePath, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening uploaded file: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("error creating file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("error writing file: %w", err)
	}

	return s.urlPrefix + "/" + name, nil
}

// Delete removes a previously stored file identified by its public URL.
// Missing files are not treated as errors.
func (s *LocalStorage) Delete(url string) error {
	name := filepath.Base(url)
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.basePath, name))
	if err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Str("file", name).Msg("Failed to delete stored file")
		return err
	}
	return nil
}

// BasePath returns the directory files are stored under, for static serving.
func (s *LocalStorage) BasePath() string {
	return s.basePath
}
