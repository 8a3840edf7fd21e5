package tabular

import "sheetlens/pkg/contracts/domain"

// gridOf builds a grid whose rows are numbered from 1; all-blank rows are
// dropped the way the reader drops unused rows.
func gridOf(rows ...[]string) *domain.Grid {
	g := &domain.Grid{Sheet: "Sheet1"}
	for i, cells := range rows {
		r := domain.Row{Number: i + 1, Cells: cells}
		if r.LastNonEmpty() == 0 {
			continue
		}
		g.Rows = append(g.Rows, r)
	}
	if len(g.Rows) > 0 {
		g.Range = domain.UsedRange{FirstRow: g.Rows[0].Number, LastRow: g.Rows[len(g.Rows)-1].Number, FirstCol: 1, LastCol: 1}
	}
	return g
}
