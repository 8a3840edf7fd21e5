package tabular

import (
	"strings"

	"github.com/montanaflynn/stats"

	"sheetlens/pkg/contracts/domain"
)

// Summarize computes summary statistics over the values that read as
// numbers. Comma grouping is dropped before parsing. Nil when no value is
// numeric.
func Summarize(values []string) *domain.NumericSummary {
	data := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		if !IsNumber(v) {
			continue
		}
		if f, ok := parsePlain(strings.ReplaceAll(strings.TrimSpace(v), ",", "")); ok {
			data = append(data, f)
		}
	}
	if len(data) == 0 {
		return nil
	}

	summary := &domain.NumericSummary{Count: len(data)}
	summary.Min, _ = data.Min()
	summary.Max, _ = data.Max()
	summary.Mean, _ = data.Mean()
	summary.Median, _ = data.Median()
	summary.StdDev, _ = data.StandardDeviation()
	return summary
}
