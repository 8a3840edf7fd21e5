package services

import (
	"context"
	"io"

	"sheetlens/internal/files"
	"sheetlens/internal/spreadsheet"
	"sheetlens/internal/validation"
	"sheetlens/pkg/contracts/domain"
)

// FileLocator resolves upload ids to workbook paths
type FileLocator interface {
	Path(id string) (string, error)
}

// FileStore persists uploads
type FileStore interface {
	FileLocator
	Save(ctx context.Context, originalName string, r io.Reader) (*files.StoredFile, error)
	Delete(id string) error
}

// WorkbookReader reads worksheets from workbook files
type WorkbookReader interface {
	WithSheet(ctx context.Context, path string, opts spreadsheet.ReadOptions, fn func(*domain.Grid) error) error
	Sheets(path string) ([]string, error)
}

// UploadValidator checks an upload before it is stored. SniffContent
// returns a reader replaying the inspected bytes.
type UploadValidator interface {
	ValidateUpload(name string, size int64) error
	SniffContent(r io.Reader) (io.Reader, error)
}

var (
	_ FileStore       = (*files.Store)(nil)
	_ WorkbookReader  = spreadsheet.FileReader{}
	_ UploadValidator = (*validation.FileValidator)(nil)
)
