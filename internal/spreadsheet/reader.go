// Package spreadsheet reads the used region of .xlsx worksheets into
// domain grids of formatted cell strings.
package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "sheetlens/internal/errors"
	"sheetlens/pkg/contracts/domain"
)

// ReadOptions selects the worksheet and bounds the read.
// An empty Sheet selects the first worksheet in workbook order.
// MaxRows > 0 stops after that many used rows.
type ReadOptions struct {
	Sheet   string
	MaxRows int
}

// Workbook is an open, read-only workbook handle
type Workbook struct {
	f *excelize.File
}

// Open opens the workbook at path
func Open(path string) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewNotFoundError("file not found", err).WithContext("resource", "file")
		}
		return nil, apperrors.NewStorageError("failed to stat workbook", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, malformed(err)
	}
	return &Workbook{f: f}, nil
}

// OpenReader opens a workbook from r
func OpenReader(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, malformed(err)
	}
	return &Workbook{f: f}, nil
}

func malformed(err error) error {
	return apperrors.NewMalformedInputError("file is not a valid xlsx workbook", err)
}

// Close releases the handle
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Sheets returns the worksheet names in workbook order
func (w *Workbook) Sheets() []string {
	return w.f.GetSheetList()
}

// ResolveSheet maps a requested sheet name to the stored one. Exact matches
// win over case-insensitive ones; an empty name selects the first sheet.
func (w *Workbook) ResolveSheet(name string) (string, error) {
	sheets := w.f.GetSheetList()
	if len(sheets) == 0 {
		return "", apperrors.NewNotFoundError("workbook has no worksheets", nil).WithContext("resource", "sheet")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == name {
			return s, nil
		}
	}
	for _, s := range sheets {
		if strings.EqualFold(s, name) {
			return s, nil
		}
	}
	return "", apperrors.NewNotFoundError(fmt.Sprintf("sheet '%s' not found", name), nil).
		WithContext("resource", "sheet").
		WithContext("sheet", name)
}

// ReadGrid streams the selected worksheet and returns its used rows.
// ctx is checked between rows.
func (w *Workbook) ReadGrid(ctx context.Context, opts ReadOptions) (*domain.Grid, error) {
	sheet, err := w.ResolveSheet(opts.Sheet)
	if err != nil {
		return nil, err
	}

	rows, err := w.f.Rows(sheet)
	if err != nil {
		return nil, malformed(err)
	}
	defer rows.Close()

	grid := &domain.Grid{Sheet: sheet}
	firstCol, lastCol := 0, 0
	rowNum := 0

	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rowNum++

		cols, err := rows.Columns()
		if err != nil {
			return nil, malformed(err)
		}

		first, last := usedSpan(cols)
		if first == 0 {
			continue
		}

		if opts.MaxRows > 0 && len(grid.Rows) == opts.MaxRows {
			grid.Truncated = true
			break
		}

		if firstCol == 0 || first < firstCol {
			firstCol = first
		}
		if last > lastCol {
			lastCol = last
		}
		grid.Rows = append(grid.Rows, domain.Row{Number: rowNum, Cells: cols[:last]})
	}
	if err := rows.Error(); err != nil {
		return nil, malformed(err)
	}

	if len(grid.Rows) == 0 {
		return grid, nil
	}

	for i := range grid.Rows {
		grid.Rows[i].Cells = clip(grid.Rows[i].Cells, firstCol)
	}
	grid.Range = domain.UsedRange{
		FirstRow: grid.Rows[0].Number,
		LastRow:  grid.Rows[len(grid.Rows)-1].Number,
		FirstCol: firstCol,
		LastCol:  lastCol,
	}
	return grid, nil
}

// usedSpan returns the 1-based first and last non-empty positions, 0 if none
func usedSpan(cols []string) (int, int) {
	first, last := 0, 0
	for i, v := range cols {
		if v == "" {
			continue
		}
		if first == 0 {
			first = i + 1
		}
		last = i + 1
	}
	return first, last
}

// clip drops the cells left of the used range's first column
func clip(cells []string, firstCol int) []string {
	if firstCol-1 >= len(cells) {
		return []string{}
	}
	return cells[firstCol-1:]
}

// WithSheet opens path, reads the selected worksheet and hands the grid to
// fn. The workbook is closed on every exit path, including a panic in fn.
func WithSheet(ctx context.Context, path string, opts ReadOptions, fn func(*domain.Grid) error) error {
	wb, err := Open(path)
	if err != nil {
		return err
	}
	defer wb.Close()

	grid, err := wb.ReadGrid(ctx, opts)
	if err != nil {
		return err
	}
	return fn(grid)
}

// FileReader reads workbooks from disk. Its zero value is ready to use.
type FileReader struct{}

// WithSheet calls the package level WithSheet
func (FileReader) WithSheet(ctx context.Context, path string, opts ReadOptions, fn func(*domain.Grid) error) error {
	return WithSheet(ctx, path, opts, fn)
}

// Sheets returns the worksheet names of the workbook at path
func (FileReader) Sheets(path string) ([]string, error) {
	wb, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return wb.Sheets(), nil
}
