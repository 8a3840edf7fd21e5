package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sheetlens/pkg/contracts/domain"
)

func TestInferType(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   domain.ColumnType
	}{
		{"all numeric", []string{"1", "2", "3.5", "4"}, domain.ColumnTypeNumber},
		{"yes is not a bool", []string{"true", "false", "yes"}, domain.ColumnTypeMixed},
		{"all blank", []string{"", " ", ""}, domain.ColumnTypeEmpty},
		{"no values", nil, domain.ColumnTypeEmpty},
		{"bools any case", []string{"TRUE", "false", "True"}, domain.ColumnTypeBool},
		{"grouped numbers", []string{"1,234", "12", "-3.5e2"}, domain.ColumnTypeNumber},
		{"iso dates", []string{"2024-01-15", "2024-02-01", "2024-03-31 10:00:00"}, domain.ColumnTypeDate},
		{"excel short dates", []string{"01-15-24", "02-01-24"}, domain.ColumnTypeDate},
		{"text", []string{"North", "South", "East"}, domain.ColumnTypeText},
		{"blank cells ignored", []string{"1", "", "2", ""}, domain.ColumnTypeNumber},
		{
			"text at threshold",
			[]string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", "p", "q", "1", "2", "3"},
			domain.ColumnTypeText,
		},
		{
			"text below threshold",
			[]string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", "p", "1", "2", "3", "4"},
			domain.ColumnTypeMixed,
		},
		{"inf and nan are text", []string{"inf", "NaN", "Infinity"}, domain.ColumnTypeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferType(tt.values, DefaultOptions()))
		})
	}
}

func TestInferType_SampleLimit(t *testing.T) {
	values := []string{"1", "2", "3", "x", "y", "z"}
	opts := DefaultOptions()
	opts.InferenceSample = 3

	assert.Equal(t, domain.ColumnTypeNumber, InferType(values, opts))
	assert.Equal(t, TypeCounts{Number: 3}, ClassifyValues(values, 3))
}

func TestTypeCounts_ResolveOrder(t *testing.T) {
	// With a low threshold every category qualifies; bool is checked first.
	c := TypeCounts{Bool: 1, Number: 1, Date: 1, Text: 1}
	assert.Equal(t, domain.ColumnTypeBool, c.Resolve(0.25))
	assert.Equal(t, domain.ColumnTypeMixed, c.Resolve(0.85))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"10", 10, true},
		{" 7.5 ", 7.5, true},
		{"7,5", 7.5, true},
		{"1 000", 1000, true},
		{"1,234", 1.234, true},
		{"-2.5e1", -25, true},
		{"1,234.5", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"inf", 0, false},
		{"0x1F", 0, false},
		{"1e999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseNumber(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestIsNumber(t *testing.T) {
	for _, s := range []string{"0", "-1", "+2.50", ".5", "1,234,567.89", "3E10"} {
		assert.True(t, IsNumber(s), s)
	}
	for _, s := range []string{"", "-", "1.2.3", "12%", "$5", "1_000", "nan", "2024-01-01"} {
		assert.False(t, IsNumber(s), s)
	}
}
