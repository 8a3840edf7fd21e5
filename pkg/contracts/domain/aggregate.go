package domain

import "strings"

// AggregateKind is the statistic computed per group
type AggregateKind string

const (
	AggregateSum   AggregateKind = "sum"
	AggregateAvg   AggregateKind = "avg"
	AggregateCount AggregateKind = "count"
	AggregateMin   AggregateKind = "min"
	AggregateMax   AggregateKind = "max"
)

// AggregateKinds lists the supported statistics in their canonical order
var AggregateKinds = []AggregateKind{AggregateSum, AggregateAvg, AggregateCount, AggregateMin, AggregateMax}

// ParseAggregateKind trims and lowercases s and reports whether it is supported
func ParseAggregateKind(s string) (AggregateKind, bool) {
	kind := AggregateKind(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range AggregateKinds {
		if k == kind {
			return kind, true
		}
	}
	return kind, false
}

// AggregatePoint is one finalized group
type AggregatePoint struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// AggregateResult is the ordered output of a grouped aggregation
type AggregateResult struct {
	FileID    string           `json:"fileId,omitempty"`
	SheetName string           `json:"sheetName"`
	GroupBy   string           `json:"groupBy"`
	Value     string           `json:"value"`
	Agg       AggregateKind    `json:"agg"`
	Data      []AggregatePoint `json:"data"`
}

// Top returns a copy of the result truncated to the first n points.
// n <= 0 keeps every point.
func (r AggregateResult) Top(n int) AggregateResult {
	if n <= 0 || n >= len(r.Data) {
		return r
	}
	out := r
	out.Data = append([]AggregatePoint(nil), r.Data[:n]...)
	return out
}
