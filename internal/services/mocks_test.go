package services

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"sheetlens/internal/files"
	"sheetlens/internal/spreadsheet"
	"sheetlens/pkg/contracts/domain"
)

// MockFileStore is a mock for FileStore
type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Path(id string) (string, error) {
	args := m.Called(id)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) Save(ctx context.Context, originalName string, r io.Reader) (*files.StoredFile, error) {
	args := m.Called(ctx, originalName, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*files.StoredFile), args.Error(1)
}

func (m *MockFileStore) Delete(id string) error {
	return m.Called(id).Error(0)
}

// MockWorkbookReader is a mock for WorkbookReader
type MockWorkbookReader struct {
	mock.Mock
}

func (m *MockWorkbookReader) WithSheet(ctx context.Context, path string, opts spreadsheet.ReadOptions, fn func(*domain.Grid) error) error {
	args := m.Called(ctx, path, opts, fn)
	if grid, ok := args.Get(0).(*domain.Grid); ok && grid != nil {
		return fn(grid)
	}
	return args.Error(1)
}

func (m *MockWorkbookReader) Sheets(path string) ([]string, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockUploadValidator is a mock for UploadValidator
type MockUploadValidator struct {
	mock.Mock
}

func (m *MockUploadValidator) ValidateUpload(name string, size int64) error {
	return m.Called(name, size).Error(0)
}

func (m *MockUploadValidator) SniffContent(r io.Reader) (io.Reader, error) {
	args := m.Called(r)
	if replay, ok := args.Get(0).(io.Reader); ok {
		return replay, args.Error(1)
	}
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return r, nil
}
