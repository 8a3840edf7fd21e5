package tabular

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// plainNumber is a decimal literal with optional sign, fraction and
	// exponent. strconv alone would also accept inf, nan, hex and
	// underscores.
	plainNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

	// groupedNumber additionally allows comma digit grouping, matching how
	// formatted cells such as 1,234.50 are displayed.
	groupedNumber = regexp.MustCompile(`^[+-]?(\d[\d,]*\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
)

func parsePlain(s string) (float64, bool) {
	if !plainNumber.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IsNumber reports whether a trimmed cell text reads as a number, with
// optional comma grouping. Used for header scoring and type inference.
func IsNumber(s string) bool {
	s = strings.TrimSpace(s)
	if !groupedNumber.MatchString(s) {
		return false
	}
	_, ok := parsePlain(strings.ReplaceAll(s, ",", ""))
	return ok
}

// ParseNumber parses an aggregation value. The trimmed, space-stripped text
// is parsed as a plain number first; on failure every comma is replaced by
// a period and the parse retried. "7,5" yields 7.5 and "1,234" yields
// 1.234, since grouping cannot be told apart from a decimal comma.
func ParseNumber(raw string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if s == "" {
		return 0, false
	}
	if v, ok := parsePlain(s); ok {
		return v, true
	}
	return parsePlain(strings.ReplaceAll(s, ",", "."))
}
