package spreadsheet

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sheetlens/internal/errors"
	"sheetlens/internal/shared/testutil"
	"sheetlens/pkg/contracts/domain"
)

func readGrid(t *testing.T, path string, opts ReadOptions) *domain.Grid {
	t.Helper()
	var got *domain.Grid
	require.NoError(t, WithSheet(context.Background(), path, opts, func(g *domain.Grid) error {
		got = g
		return nil
	}))
	return got
}

func TestReadGrid_UsedRegion(t *testing.T) {
	path := testutil.WriteWorkbook(t, "offset.xlsx", testutil.Sheet{
		Name:   "Sales",
		Origin: "B3",
		Rows: [][]interface{}{
			{"Region", "Amount"},
			{},
			{"North", 10},
			{"South", nil, "note"},
		},
	})

	grid := readGrid(t, path, ReadOptions{})

	assert.Equal(t, "Sales", grid.Sheet)
	assert.Equal(t, domain.UsedRange{FirstRow: 3, LastRow: 6, FirstCol: 2, LastCol: 4}, grid.Range)
	require.Len(t, grid.Rows, 3, "blank row 4 is not a used row")

	assert.Equal(t, 3, grid.Rows[0].Number)
	assert.Equal(t, []string{"Region", "Amount"}, grid.Rows[0].Cells)
	assert.Equal(t, 5, grid.Rows[1].Number)
	assert.Equal(t, "10", grid.Rows[1].Cell(2))
	assert.Equal(t, "note", grid.Rows[2].Cell(3))
	assert.Equal(t, "", grid.Rows[2].Cell(2))
	assert.False(t, grid.Truncated)
}

func TestReadGrid_SheetSelection(t *testing.T) {
	path := testutil.WriteWorkbook(t, "multi.xlsx",
		testutil.Sheet{Name: "First", Rows: [][]interface{}{{"a"}}},
		testutil.Sheet{Name: "Second", Rows: [][]interface{}{{"b"}}},
	)

	tests := []struct {
		name      string
		sheet     string
		wantSheet string
		wantErr   bool
	}{
		{"default is first sheet", "", "First", false},
		{"exact name", "Second", "Second", false},
		{"case-insensitive name", "second", "Second", false},
		{"missing sheet", "Third", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WithSheet(context.Background(), path, ReadOptions{Sheet: tt.sheet}, func(g *domain.Grid) error {
				assert.Equal(t, tt.wantSheet, g.Sheet)
				return nil
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrNotFoundKind)
				assert.Contains(t, err.Error(), "sheet 'Third' not found")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestReadGrid_MaxRows(t *testing.T) {
	path := testutil.WriteRows(t,
		[]interface{}{"h"},
		[]interface{}{"1"},
		[]interface{}{},
		[]interface{}{"2"},
		[]interface{}{"3"},
	)

	grid := readGrid(t, path, ReadOptions{MaxRows: 3})
	require.Len(t, grid.Rows, 3)
	assert.Equal(t, 4, grid.Rows[2].Number)
	assert.Equal(t, 4, grid.Range.LastRow)
	assert.True(t, grid.Truncated)

	grid = readGrid(t, path, ReadOptions{MaxRows: 4})
	assert.Len(t, grid.Rows, 4)
	assert.False(t, grid.Truncated)
}

func TestReadGrid_EmptySheet(t *testing.T) {
	path := testutil.WriteWorkbook(t, "empty.xlsx", testutil.Sheet{Name: "Blank"})

	grid := readGrid(t, path, ReadOptions{})
	assert.True(t, grid.IsEmpty())
	assert.True(t, grid.Range.IsEmpty())
	assert.Equal(t, "Blank", grid.Sheet)
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.xlsx"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFoundKind)

	garbage := filepath.Join(dir, "garbage.xlsx")
	require.NoError(t, os.WriteFile(garbage, []byte("not a zip archive"), 0o644))
	_, err = Open(garbage)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMalformedInputKind)
}

func TestOpenReader(t *testing.T) {
	path := testutil.WriteRows(t, []interface{}{"x", "y"})
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	wb, err := OpenReader(f)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Data"}, wb.Sheets())
	grid, err := wb.ReadGrid(context.Background(), ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, grid.Rows[0].Cells)
}

func TestReadGrid_Cancelled(t *testing.T) {
	path := testutil.WriteRows(t, []interface{}{"a"}, []interface{}{"b"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := WithSheet(ctx, path, ReadOptions{}, func(*domain.Grid) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestWithSheet_PropagatesCallbackError(t *testing.T) {
	path := testutil.WriteRows(t, []interface{}{"a"})
	err := WithSheet(context.Background(), path, ReadOptions{}, func(*domain.Grid) error {
		return apperrors.NewInvalidArgumentError("column 'z' not found")
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgumentKind)
}

func TestFileReader(t *testing.T) {
	path := testutil.WriteWorkbook(t, "book.xlsx",
		testutil.Sheet{Name: "Summary", Rows: [][]interface{}{{"a"}}},
		testutil.Sheet{Name: "Detail", Rows: [][]interface{}{{"b"}}},
	)

	var r FileReader
	sheets, err := r.Sheets(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Summary", "Detail"}, sheets)

	err = r.WithSheet(context.Background(), path, ReadOptions{Sheet: "detail"}, func(g *domain.Grid) error {
		assert.Equal(t, "Detail", g.Sheet)
		assert.Equal(t, "b", g.Rows[0].Cell(1))
		return nil
	})
	require.NoError(t, err)

	_, err = r.Sheets(filepath.Join(t.TempDir(), "none.xlsx"))
	assert.ErrorIs(t, err, apperrors.ErrNotFoundKind)
}
