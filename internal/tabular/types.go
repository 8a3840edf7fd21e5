package tabular

import (
	"strings"
	"time"

	"sheetlens/pkg/contracts/domain"
)

// dateLayouts are tried in order when classifying a value as a date
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"01-02-06",
	"02-Jan-2006",
	"02-Jan-06",
	"2-Jan-06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
	"1/2/06 15:04",
	time.RFC1123,
	"15:04:05",
	"15:04",
	"3:04 PM",
	"3:04:05 PM",
}

func isBool(s string) bool {
	return strings.EqualFold(s, "true") || strings.EqualFold(s, "false")
}

func isDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// TypeCounts tallies how the sampled values of a column classified
type TypeCounts struct {
	Bool   int
	Number int
	Date   int
	Text   int
}

// Total returns the number of classified values
func (c TypeCounts) Total() int {
	return c.Bool + c.Number + c.Date + c.Text
}

// ClassifyValues classifies up to limit non-blank values. Each value falls
// in the first category it parses as: bool, number, date, then text.
func ClassifyValues(values []string, limit int) TypeCounts {
	var c TypeCounts
	for _, raw := range values {
		if limit > 0 && c.Total() == limit {
			break
		}
		v := strings.TrimSpace(raw)
		switch {
		case v == "":
			continue
		case isBool(v):
			c.Bool++
		case IsNumber(v):
			c.Number++
		case isDate(v):
			c.Date++
		default:
			c.Text++
		}
	}
	return c
}

// Resolve maps the tallies to a column type. Thresholds are checked in the
// order bool, number, date, text.
func (c TypeCounts) Resolve(threshold float64) domain.ColumnType {
	total := c.Total()
	if total == 0 {
		return domain.ColumnTypeEmpty
	}

	n := float64(total)
	switch {
	case float64(c.Bool)/n >= threshold:
		return domain.ColumnTypeBool
	case float64(c.Number)/n >= threshold:
		return domain.ColumnTypeNumber
	case float64(c.Date)/n >= threshold:
		return domain.ColumnTypeDate
	case float64(c.Text) >= n*threshold:
		return domain.ColumnTypeText
	default:
		return domain.ColumnTypeMixed
	}
}

// InferType classifies a column from its sampled values using the
// inference sample size and threshold of opts.
func InferType(values []string, opts Options) domain.ColumnType {
	opts = opts.withDefaults()
	return ClassifyValues(values, opts.InferenceSample).Resolve(opts.TypeThreshold)
}
