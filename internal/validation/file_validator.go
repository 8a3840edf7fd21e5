package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	apperrors "sheetlens/internal/errors"
)

// FileValidator checks uploaded workbooks before and after they are stored
type FileValidator struct {
	logger    *slog.Logger
	maxBytes  int64
	extension string
}

// NewFileValidator creates a validator accepting files of up to maxBytes
// with the given extension
func NewFileValidator(logger *slog.Logger, maxBytes int64, extension string) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger:    logger.With(slog.String("component", "file_validator")),
		maxBytes:  maxBytes,
		extension: strings.ToLower(extension),
	}
}

// MaxBytes returns the upload size limit
func (v *FileValidator) MaxBytes() int64 {
	return v.maxBytes
}

// ValidateUpload checks the client file name and declared size of an upload.
// Checks run in order: presence, size, extension.
func (v *FileValidator) ValidateUpload(name string, size int64) error {
	if strings.TrimSpace(name) == "" || size <= 0 {
		v.logger.Warn("upload rejected: missing file",
			slog.String("file", name),
			slog.Int64("size", size))
		return apperrors.ErrFileRequired
	}

	if size > v.maxBytes {
		v.logger.Warn("upload rejected: too large",
			slog.String("file", name),
			slog.Int64("size", size),
			slog.Int64("max_size", v.maxBytes))
		return apperrors.NewWithDetails(http.StatusBadRequest, apperrors.CodeValidationFailed,
			fmt.Sprintf("File is too large (max %dMB).", v.maxBytes>>20),
			apperrors.ValidationError{Field: "file", Message: "file exceeds the upload size limit"})
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext != v.extension {
		v.logger.Warn("upload rejected: unsupported extension",
			slog.String("file", name),
			slog.String("extension", ext))
		return apperrors.NewWithDetails(http.StatusBadRequest, apperrors.CodeValidationFailed,
			fmt.Sprintf("Only %s files are supported.", v.extension),
			apperrors.ValidationError{Field: "file", Message: "unsupported file extension"})
	}

	if strings.HasPrefix(filepath.Base(name), "~$") {
		v.logger.Warn("upload rejected: temporary office file",
			slog.String("file", name))
		return apperrors.NewWithDetails(http.StatusBadRequest, apperrors.CodeValidationFailed,
			"Temporary Excel lock files are not supported.",
			apperrors.ValidationError{Field: "file", Message: "temporary lock file"})
	}

	return nil
}

// ValidateFile checks that path is an existing, readable regular file
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		v.logger.Error("file does not exist", slog.String("file", path))
		return apperrors.NewNotFoundError(fmt.Sprintf("file %s does not exist", path), err).
			WithContext("resource", "file")
	}
	if err != nil {
		v.logger.Error("failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to stat file", err)
	}
	if info.IsDir() {
		v.logger.Error("path is a directory, not a file", slog.String("path", path))
		return apperrors.NewInvalidArgumentError(fmt.Sprintf("%s is a directory, not a file", path))
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("file is not readable", err)
	}
	file.Close()

	v.logger.Debug("file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateWorkbookFile checks that path is readable and carries the
// expected extension
func (v *FileValidator) ValidateWorkbookFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != v.extension {
		v.logger.Error("file is not a workbook",
			slog.String("file", path),
			slog.String("extension", ext))
		return apperrors.NewInvalidArgumentError(fmt.Sprintf("file %s is not a %s workbook", filepath.Base(path), v.extension))
	}
	return nil
}
