package domain

import "strings"

// Cell is a read-only view of one spreadsheet cell
type Cell struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Value string `json:"value"`
}

// UsedRange is the minimal bounding box containing every non-empty cell.
// The zero value describes an empty sheet.
type UsedRange struct {
	FirstRow int `json:"firstRow"`
	LastRow  int `json:"lastRow"`
	FirstCol int `json:"firstCol"`
	LastCol  int `json:"lastCol"`
}

// IsEmpty reports whether the range holds no cells
func (u UsedRange) IsEmpty() bool {
	return u.FirstRow == 0 || u.FirstCol == 0
}

// Width returns the number of columns in the range
func (u UsedRange) Width() int {
	if u.IsEmpty() {
		return 0
	}
	return u.LastCol - u.FirstCol + 1
}

// Row is a used sheet row. Number is the 1-based sheet row number and
// Cells[0] holds the first column of the used range.
type Row struct {
	Number int      `json:"number"`
	Cells  []string `json:"cells"`
}

// Cell returns the formatted value at the 1-based column, or "" past the end
func (r Row) Cell(col int) string {
	if col < 1 || col > len(r.Cells) {
		return ""
	}
	return r.Cells[col-1]
}

// At returns the cell at the 1-based column as a Cell value
func (r Row) At(col int) Cell {
	return Cell{Row: r.Number, Col: col, Value: r.Cell(col)}
}

// LastNonEmpty returns the 1-based index of the last non-blank cell, 0 if none
func (r Row) LastNonEmpty() int {
	for i := len(r.Cells) - 1; i >= 0; i-- {
		if strings.TrimSpace(r.Cells[i]) != "" {
			return i + 1
		}
	}
	return 0
}

// Grid is the used region of one worksheet: the rows holding at least one
// non-empty cell, in sheet order. Truncated is set when a row cap stopped
// the read before the end of the sheet.
type Grid struct {
	Sheet     string    `json:"sheet"`
	Range     UsedRange `json:"range"`
	Rows      []Row     `json:"rows"`
	Truncated bool      `json:"truncated"`
}

// IsEmpty reports whether the grid has no used rows
func (g *Grid) IsEmpty() bool {
	return g == nil || len(g.Rows) == 0
}

// RowsBelow returns the used rows whose sheet number is strictly greater than row
func (g *Grid) RowsBelow(row int) []Row {
	for i, r := range g.Rows {
		if r.Number > row {
			return g.Rows[i:]
		}
	}
	return nil
}

// Find returns the used row with the given sheet number
func (g *Grid) Find(row int) (Row, bool) {
	for _, r := range g.Rows {
		if r.Number == row {
			return r, true
		}
	}
	return Row{}, false
}
