package tabular

import (
	"context"
	"fmt"
	"strings"

	"sheetlens/pkg/contracts/domain"
)

const maxExamples = 3

// Profile locates the header row of grid and profiles every column it names.
// An empty grid yields header row 1 and no columns.
func Profile(ctx context.Context, grid *domain.Grid, opts Options) (*domain.FileProfile, error) {
	opts = opts.withDefaults()

	profile := &domain.FileProfile{HeaderRowIndex: 1, Columns: []domain.ColumnProfile{}}
	if grid == nil {
		return profile, nil
	}
	profile.SheetName = grid.Sheet
	if grid.IsEmpty() {
		return profile, nil
	}

	header := LocateHeader(grid.Rows, opts)
	profile.HeaderRowIndex = header.Row

	headerRow, _ := grid.Find(header.Row)
	width := headerRow.LastNonEmpty()
	if width == 0 {
		return profile, nil
	}

	raw := headerRow.Cells[:width]
	normalized := NormalizeHeader(raw)

	data := grid.RowsBelow(header.Row)
	if len(data) > opts.SampleRows {
		data = data[:opts.SampleRows]
	}

	columns := make([][]string, width)
	for i := range columns {
		columns[i] = make([]string, 0, len(data))
	}
	for _, r := range data {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for c := 1; c <= width; c++ {
			columns[c-1] = append(columns[c-1], strings.TrimSpace(r.Cell(c)))
		}
	}

	profile.Columns = make([]domain.ColumnProfile, width)
	for i := 0; i < width; i++ {
		col := profileColumn(columns[i], opts)
		col.Index = i + 1
		col.OriginalName = strings.TrimSpace(raw[i])
		if col.OriginalName == "" {
			col.OriginalName = fmt.Sprintf("column_%d", i+1)
		}
		col.NormalizedName = normalized[i]
		profile.Columns[i] = col
	}

	return profile, nil
}

// profileColumn computes the value statistics of one column sample
func profileColumn(values []string, opts Options) domain.ColumnProfile {
	col := domain.ColumnProfile{Examples: []string{}}

	unique := make(map[string]struct{})
	seen := make(map[string]struct{})
	for _, v := range values {
		if v == "" {
			col.EmptyCount++
			continue
		}
		col.NonEmptyCount++
		unique[strings.ToLower(v)] = struct{}{}

		if len(col.Examples) < maxExamples {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				col.Examples = append(col.Examples, v)
			}
		}
	}
	col.UniqueCount = len(unique)
	col.InferredType = InferType(values, opts)
	if col.InferredType == domain.ColumnTypeNumber {
		col.Summary = Summarize(values)
	}
	return col
}
