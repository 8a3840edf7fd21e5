package tabular

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"sheetlens/pkg/contracts/domain"
)

// looksLikeHeaderText reports whether trimmed text has at least two
// characters and contains a letter.
func looksLikeHeaderText(s string) bool {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < 2 {
		return false
	}
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// ScoreRow computes the header-likeness of a row from its first
// MaxCellsPerRow non-blank cells.
func ScoreRow(cells []string, opts Options) float64 {
	opts = opts.withDefaults()

	var nonEmpty, stringy, numeric int
	for _, c := range cells {
		if nonEmpty == opts.MaxCellsPerRow {
			break
		}
		if strings.TrimSpace(c) == "" {
			continue
		}
		nonEmpty++
		if looksLikeHeaderText(c) {
			stringy++
		}
		if IsNumber(c) {
			numeric++
		}
	}

	w := opts.Scoring
	return w.StringyWeight*float64(stringy) + w.NonEmptyWeight*float64(nonEmpty) + w.NumericWeight*float64(numeric)
}

// LocateHeader scores the first HeaderScanRows used rows and returns the
// best one. Ties keep the earlier row. An empty grid yields row 1.
func LocateHeader(rows []domain.Row, opts Options) domain.HeaderCandidate {
	opts = opts.withDefaults()

	window := rows
	if len(window) > opts.HeaderScanRows {
		window = window[:opts.HeaderScanRows]
	}
	if len(window) == 0 {
		return domain.HeaderCandidate{Row: 1}
	}

	best := domain.HeaderCandidate{Row: window[0].Number}
	found := false
	for _, r := range window {
		if r.LastNonEmpty() == 0 {
			continue
		}
		score := ScoreRow(r.Cells, opts)
		if !found || score > best.Score {
			best = domain.HeaderCandidate{Row: r.Number, Score: score}
			found = true
		}
	}
	return best
}
