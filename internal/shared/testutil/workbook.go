package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Sheet describes one worksheet of a generated workbook. Rows are written
// starting at cell A1 unless Origin is set (for example "C3").
type Sheet struct {
	Name   string
	Origin string
	Rows   [][]interface{}
}

// WriteWorkbook creates an .xlsx file in a temp directory and returns its path.
// The first sheet replaces excelize's default "Sheet1".
func WriteWorkbook(t *testing.T, name string, sheets ...Sheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sh := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sh.Name))
		} else {
			_, err := f.NewSheet(sh.Name)
			require.NoError(t, err)
		}

		origin := sh.Origin
		if origin == "" {
			origin = "A1"
		}
		col, row, err := excelize.CellNameToCoordinates(origin)
		require.NoError(t, err)

		for r, values := range sh.Rows {
			cell, err := excelize.CoordinatesToCellName(col, row+r)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(sh.Name, cell, &values))
		}
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// WriteRows is WriteWorkbook for a single sheet named "Data".
func WriteRows(t *testing.T, rows ...[]interface{}) string {
	t.Helper()
	return WriteWorkbook(t, "data.xlsx", Sheet{Name: "Data", Rows: rows})
}
