package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Customer Name", "customer_name"},
		{"  Total  ", "total"},
		{"", "column"},
		{"   ", "column"},
		{"Unit-Price/USD", "unit_price_usd"},
		{"e.g. value", "e_g_value"},
		{"Amount ($)", "amount_"[:6]},
		{"__Leading__Trailing__", "leading_trailing"},
		{"Q1  -  Q2", "q1_q2"},
		{"%%%", "column"},
		{"Año", "ao"},
		{"Order\tDate", "order_date"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestUniqueNames(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"no collisions", []string{"a", "b"}, []string{"a", "b"}},
		{"two totals", []string{"total", "total"}, []string{"total", "total_2"}},
		{"three in a row", []string{"x", "x", "x"}, []string{"x", "x_2", "x_3"}},
		{"case-insensitive keeps first casing", []string{"Name", "name"}, []string{"Name", "name_2"}},
		{"blank becomes column", []string{"", "column"}, []string{"column", "column_2"}},
		{"generated suffix already taken", []string{"a", "a_2", "a"}, []string{"a", "a_2", "a_3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UniqueNames(tt.in))
		})
	}
}

func TestNormalizeHeader(t *testing.T) {
	got := NormalizeHeader([]string{"Total", "Total", "", "Customer Name", " "})
	assert.Equal(t, []string{"total", "total_2", "column", "customer_name", "column_2"}, got)
}

func TestMatchColumn(t *testing.T) {
	headers := []string{"Region", " Amount ", "region", "Date"}

	assert.Equal(t, 1, MatchColumn(headers, "region"), "first match wins")
	assert.Equal(t, 2, MatchColumn(headers, "AMOUNT"))
	assert.Equal(t, 4, MatchColumn(headers, " date "))
	assert.Equal(t, 0, MatchColumn(headers, "Customer"))
	assert.Equal(t, 0, MatchColumn(nil, "Region"))
}
