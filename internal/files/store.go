package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	apperrors "sheetlens/internal/errors"
)

// Extension is the suffix of every stored workbook
const Extension = ".xlsx"

var idPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// StoredFile describes a workbook written by Save
type StoredFile struct {
	ID           string
	OriginalName string
	Path         string
	Size         int64
}

// Store manages uploaded workbooks under one directory
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates the upload directory if needed and returns a store over it
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(dir) == "" {
		return nil, apperrors.NewConfigError("upload directory is required", nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.NewStorageError("failed to create upload directory", err)
	}
	return &Store{
		dir:    dir,
		logger: logger.With(slog.String("component", "file_store")),
	}, nil
}

// Dir returns the upload directory
func (s *Store) Dir() string {
	return s.dir
}

// NewID returns a random upload id
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ValidID reports whether id has the shape produced by NewID
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// Save writes r to a new <id>.xlsx. The file is created exclusively and
// removed again if the copy fails or ctx ends first.
func (s *Store) Save(ctx context.Context, originalName string, r io.Reader) (*StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := NewID()
	path := s.pathFor(id)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to create upload file", err)
	}

	size, copyErr := io.Copy(f, &contextReader{ctx: ctx, r: r})
	if copyErr == nil {
		copyErr = f.Sync()
	}
	closeErr := f.Close()

	if copyErr != nil || closeErr != nil {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			s.logger.WarnContext(ctx, "failed to remove partial upload",
				slog.String("file_id", id),
				slog.String("error", rmErr.Error()))
		}
		if copyErr != nil {
			return nil, classifyCopyError(copyErr)
		}
		return nil, apperrors.NewStorageError("failed to write upload file", closeErr)
	}

	s.logger.InfoContext(ctx, "upload stored",
		slog.String("file_id", id),
		slog.String("original_name", originalName),
		slog.Int64("size_bytes", size))

	return &StoredFile{ID: id, OriginalName: originalName, Path: path, Size: size}, nil
}

// classifyCopyError keeps request-side failures (cancellation, oversized
// bodies) recognizable and reports everything else as storage trouble.
func classifyCopyError(err error) error {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.As(err, &maxBytes):
		return err
	default:
		return apperrors.NewStorageError("failed to write upload file", err)
	}
}

// Path resolves id to the stored workbook path
func (s *Store) Path(id string) (string, error) {
	if !ValidID(id) {
		return "", notFound(id, nil)
	}
	path := s.pathFor(id)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", notFound(id, err)
		}
		return "", apperrors.NewStorageError("failed to stat upload file", err)
	}
	if info.IsDir() {
		return "", notFound(id, nil)
	}
	return path, nil
}

// Exists reports whether id names a stored workbook
func (s *Store) Exists(id string) bool {
	_, err := s.Path(id)
	return err == nil
}

// Delete removes the stored workbook for id
func (s *Store) Delete(id string) error {
	path, err := s.Path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return apperrors.NewStorageError("failed to delete upload file", err)
	}
	s.logger.Info("upload deleted", slog.String("file_id", id))
	return nil
}

func (s *Store) pathFor(id string) string {
	return filepath.Join(s.dir, id+Extension)
}

func notFound(id string, cause error) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("file '%s' not found", id), cause).
		WithContext("resource", "file").
		WithContext("file_id", id)
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
