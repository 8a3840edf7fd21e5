package tabular

import "sheetlens/pkg/contracts/domain"

// BuildPreview returns the first used row of grid as column labels and up
// to maxRows following used rows, each padded or clipped to the label
// count. maxRows <= 0 uses the default preview size.
func BuildPreview(grid *domain.Grid, maxRows int) domain.Preview {
	if maxRows <= 0 {
		maxRows = DefaultOptions().PreviewRows
	}

	preview := domain.Preview{Columns: []string{}, Rows: [][]string{}}
	if grid == nil {
		return preview
	}
	preview.SheetName = grid.Sheet
	if grid.IsEmpty() {
		return preview
	}

	header := grid.Rows[0]
	width := header.LastNonEmpty()
	preview.Columns = append(preview.Columns, header.Cells[:width]...)

	for _, r := range grid.Rows[1:] {
		if len(preview.Rows) == maxRows {
			break
		}
		row := make([]string, width)
		for c := 1; c <= width; c++ {
			row[c-1] = r.Cell(c)
		}
		preview.Rows = append(preview.Rows, row)
	}
	return preview
}
