package exporter

import (
	"strconv"
)

// formatFloat formats a value with the fewest digits that round-trip
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
