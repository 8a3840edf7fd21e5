package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sheetlens/internal/errors"
	"sheetlens/internal/shared/testutil"
)

const testMaxBytes = 15 << 20

func TestFileValidator_ValidateUpload(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		size        int64
		wantMessage string
	}{
		{name: "valid workbook", file: "report.xlsx", size: 1024},
		{name: "upper-case extension", file: "REPORT.XLSX", size: 1024},
		{name: "exactly at limit", file: "big.xlsx", size: testMaxBytes},
		{name: "missing name", file: "", size: 10, wantMessage: "File is required."},
		{name: "empty file", file: "a.xlsx", size: 0, wantMessage: "File is required."},
		{name: "too large", file: "a.xlsx", size: testMaxBytes + 1, wantMessage: "File is too large (max 15MB)."},
		{name: "legacy xls", file: "a.xls", size: 10, wantMessage: "Only .xlsx files are supported."},
		{name: "csv", file: "a.csv", size: 10, wantMessage: "Only .xlsx files are supported."},
		{name: "no extension", file: "workbook", size: 10, wantMessage: "Only .xlsx files are supported."},
		{name: "office lock file", file: "~$report.xlsx", size: 10, wantMessage: "Temporary Excel lock files are not supported."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			v := NewFileValidator(logger, testMaxBytes, ".xlsx")

			err := v.ValidateUpload(tt.file, tt.size)
			if tt.wantMessage == "" {
				assert.NoError(t, err)
				return
			}

			var apiErr *apperrors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, 400, apiErr.StatusCode)
			assert.Equal(t, apperrors.CodeValidationFailed, apiErr.ErrorCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestFileValidator_ValidateFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.xlsx")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	other := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))

	v := NewFileValidator(nil, testMaxBytes, ".xlsx")

	assert.NoError(t, v.ValidateFile(file))
	assert.NoError(t, v.ValidateWorkbookFile(file))

	err := v.ValidateFile(filepath.Join(dir, "missing.xlsx"))
	assert.ErrorIs(t, err, apperrors.ErrNotFoundKind)

	err = v.ValidateFile(dir)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgumentKind)
	assert.Contains(t, err.Error(), "is a directory")

	err = v.ValidateWorkbookFile(other)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgumentKind)
	assert.Contains(t, err.Error(), "not a .xlsx workbook")
}

func TestFileValidator_MaxBytes(t *testing.T) {
	assert.Equal(t, int64(42), NewFileValidator(nil, 42, ".xlsx").MaxBytes())
}
