package tabular

import (
	"fmt"
	"regexp"
	"strings"
)

const fallbackName = "column"

var (
	separatorRun = regexp.MustCompile(`[\s\-/.]+`)
	disallowed   = regexp.MustCompile(`[^a-z0-9_]+`)
	underscores  = regexp.MustCompile(`_+`)
)

// NormalizeName turns a raw header label into a lowercase identifier:
// separator runs become "_", other characters outside [a-z0-9_] are
// dropped and a blank result becomes "column".
func NormalizeName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = separatorRun.ReplaceAllString(name, "_")
	name = disallowed.ReplaceAllString(name, "")
	name = underscores.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return fallbackName
	}
	return name
}

// UniqueNames resolves collisions left to right. The first occurrence keeps
// its name; later ones get _2, _3 and so on per base name. Comparison is
// case-insensitive, and a suffix already taken by another column is skipped.
func UniqueNames(names []string) []string {
	out := make([]string, len(names))
	taken := make(map[string]bool, len(names))
	next := make(map[string]int)

	for i, n := range names {
		base := n
		if strings.TrimSpace(base) == "" {
			base = fallbackName
		}
		key := strings.ToLower(base)

		if !taken[key] {
			taken[key] = true
			out[i] = base
			continue
		}

		k := next[key]
		if k < 2 {
			k = 2
		}
		candidate := fmt.Sprintf("%s_%d", base, k)
		for taken[strings.ToLower(candidate)] {
			k++
			candidate = fmt.Sprintf("%s_%d", base, k)
		}
		next[key] = k + 1
		taken[strings.ToLower(candidate)] = true
		out[i] = candidate
	}
	return out
}

// NormalizeHeader normalizes and deduplicates a whole header row
func NormalizeHeader(raw []string) []string {
	names := make([]string, len(raw))
	for i, r := range raw {
		names[i] = NormalizeName(r)
	}
	return UniqueNames(names)
}

// MatchColumn returns the 1-based position of the first header whose
// trimmed text equals name case-insensitively, or 0.
func MatchColumn(headers []string, name string) int {
	name = strings.TrimSpace(name)
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i + 1
		}
	}
	return 0
}
