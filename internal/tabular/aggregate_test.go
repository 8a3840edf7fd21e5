package tabular

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sheetlens/internal/errors"
	"sheetlens/pkg/contracts/domain"
)

func salesGrid() *domain.Grid {
	return gridOf(
		[]string{"Region", "Amount"},
		[]string{"A", "10"},
		[]string{"A", "20"},
		[]string{"A", "7,5"},
	)
}

func TestAggregate_CommaDecimal(t *testing.T) {
	tests := []struct {
		agg  string
		want float64
	}{
		{"sum", 37.5},
		{"count", 3},
		{"avg", 12.5},
		{"min", 7.5},
		{"max", 20},
		{"  SUM ", 37.5},
	}

	for _, tt := range tests {
		t.Run(tt.agg, func(t *testing.T) {
			res, err := Aggregate(context.Background(), salesGrid(),
				AggregateRequest{GroupBy: "Region", Value: "Amount", Agg: tt.agg}, DefaultOptions())
			require.NoError(t, err)
			require.Len(t, res.Data, 1)
			assert.Equal(t, "A", res.Data[0].Key)
			assert.InDelta(t, tt.want, res.Data[0].Value, 1e-9)
		})
	}
}

func TestAggregate_CountIgnoresUnparseableValues(t *testing.T) {
	grid := gridOf(
		[]string{"Region", "Amount"},
		[]string{"A", "n/a"},
		[]string{"A", ""},
		[]string{"A", "5"},
	)

	res, err := Aggregate(context.Background(), grid, AggregateRequest{GroupBy: "region", Value: "amount", Agg: "count"}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []domain.AggregatePoint{{Key: "A", Value: 3}}, res.Data)

	res, err = Aggregate(context.Background(), grid, AggregateRequest{GroupBy: "region", Value: "amount", Agg: "sum"}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []domain.AggregatePoint{{Key: "A", Value: 5}}, res.Data)
}

func TestAggregate_StableDescendingOrder(t *testing.T) {
	grid := gridOf(
		[]string{"Group", "Value"},
		[]string{"A", "50"},
		[]string{"B", "90"},
		[]string{"C", "90"},
	)

	res, err := Aggregate(context.Background(), grid, AggregateRequest{GroupBy: "Group", Value: "Value", Agg: "sum"}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []domain.AggregatePoint{
		{Key: "B", Value: 90},
		{Key: "C", Value: 90},
		{Key: "A", Value: 50},
	}, res.Data)
}

func TestAggregate_KeysFoldCaseAndSkipBlank(t *testing.T) {
	grid := gridOf(
		[]string{"Region", "Amount"},
		[]string{"North", "1"},
		[]string{" north ", "2"},
		[]string{"", "100"},
		[]string{"NORTH", "3"},
	)

	res, err := Aggregate(context.Background(), grid, AggregateRequest{GroupBy: "Region", Value: "Amount", Agg: "sum"}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []domain.AggregatePoint{{Key: "North", Value: 6}}, res.Data)
	assert.Equal(t, "Sheet1", res.SheetName)
	assert.Equal(t, domain.AggregateSum, res.Agg)
}

func TestAggregate_MaxRowsCapsAcceptedRows(t *testing.T) {
	grid := gridOf(
		[]string{"Region", "Amount"},
		[]string{"A", "1"},
		[]string{"", "50"},
		[]string{"A", "bad"},
		[]string{"B", "2"},
		[]string{"C", "3"},
	)

	res, err := Aggregate(context.Background(), grid,
		AggregateRequest{GroupBy: "Region", Value: "Amount", Agg: "sum", MaxRows: 2}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []domain.AggregatePoint{{Key: "B", Value: 2}, {Key: "A", Value: 1}}, res.Data)
}

func TestAggregate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     AggregateRequest
		wantMsg string
	}{
		{"missing group-by column", AggregateRequest{GroupBy: "Country", Value: "Amount", Agg: "sum"}, "column 'Country' not found"},
		{"missing value column", AggregateRequest{GroupBy: "Region", Value: "Price", Agg: "sum"}, "column 'Price' not found"},
		{"unsupported agg", AggregateRequest{GroupBy: "Region", Value: "Amount", Agg: "median"}, InvalidAggMessage},
		{"pinned header row missing", AggregateRequest{GroupBy: "Region", Value: "Amount", Agg: "sum", HeaderRow: 40}, "header row 40 is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Aggregate(context.Background(), salesGrid(), tt.req, DefaultOptions())
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidArgumentKind)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantMsg, appErr.Message)
		})
	}
}

func TestAggregate_HeaderLocatedBelowTitle(t *testing.T) {
	grid := gridOf(
		[]string{"Sales export"},
		[]string{"Region", "Amount"},
		[]string{"A", "1"},
	)

	res, err := Aggregate(context.Background(), grid, AggregateRequest{GroupBy: "Region", Value: "Amount", Agg: "sum"}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []domain.AggregatePoint{{Key: "A", Value: 1}}, res.Data)

	res, err = Aggregate(context.Background(), grid, AggregateRequest{GroupBy: "Region", Value: "Amount", Agg: "sum", HeaderRow: 2}, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, res.Data, 1)
}

func TestAggregate_EmptyGrid(t *testing.T) {
	res, err := Aggregate(context.Background(), gridOf(), AggregateRequest{GroupBy: "x", Value: "y", Agg: "sum"}, DefaultOptions())
	require.NoError(t, err)
	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
}

func TestAggregate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Aggregate(ctx, salesGrid(), AggregateRequest{GroupBy: "Region", Value: "Amount", Agg: "sum"}, DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAggregate_ThousandsSeparatorReadAsDecimal(t *testing.T) {
	grid := gridOf(
		[]string{"Region", "Amount"},
		[]string{"A", "1,234"},
	)
	res, err := Aggregate(context.Background(), grid,
		AggregateRequest{GroupBy: "Region", Value: "Amount", Agg: "sum"}, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.InDelta(t, 1.234, res.Data[0].Value, 1e-9)
}

func TestAggState_FinalizeWithoutValues(t *testing.T) {
	var s aggState
	for _, kind := range []domain.AggregateKind{domain.AggregateAvg, domain.AggregateMin, domain.AggregateMax, domain.AggregateSum} {
		assert.Zero(t, s.finalize(kind), kind)
	}
}
