package tabular

import (
	"context"
	"fmt"
	"sort"
	"strings"

	apperrors "sheetlens/internal/errors"
	"sheetlens/pkg/contracts/domain"
)

// AggregateRequest names the columns and statistic of a grouped aggregation
type AggregateRequest struct {
	GroupBy string
	Value   string
	Agg     string
	// MaxRows > 0 caps the number of accepted rows
	MaxRows int
	// HeaderRow > 0 pins the header row instead of locating it
	HeaderRow int
}

// InvalidAggMessage is reported for an unsupported statistic
const InvalidAggMessage = "agg must be one of: sum, avg, count, min, max"

type aggState struct {
	key      string
	sum      float64
	count    int
	min, max float64
	hasRange bool
}

func (s *aggState) add(v float64) {
	s.count++
	s.sum += v
	if !s.hasRange {
		s.min, s.max = v, v
		s.hasRange = true
		return
	}
	if v < s.min {
		s.min = v
	}
	if v > s.max {
		s.max = v
	}
}

func (s *aggState) finalize(kind domain.AggregateKind) float64 {
	switch kind {
	case domain.AggregateAvg:
		if s.count == 0 {
			return 0
		}
		return s.sum / float64(s.count)
	case domain.AggregateCount:
		return float64(s.count)
	case domain.AggregateMin:
		if !s.hasRange {
			return 0
		}
		return s.min
	case domain.AggregateMax:
		if !s.hasRange {
			return 0
		}
		return s.max
	default:
		return s.sum
	}
}

// Aggregate groups the rows below the header of grid by the GroupBy column
// and reduces the Value column with the requested statistic. The result is
// ordered by value, descending, keeping encounter order between ties.
func Aggregate(ctx context.Context, grid *domain.Grid, req AggregateRequest, opts Options) (*domain.AggregateResult, error) {
	kind, kindOK := domain.ParseAggregateKind(req.Agg)

	result := &domain.AggregateResult{
		GroupBy: req.GroupBy,
		Value:   req.Value,
		Agg:     kind,
		Data:    []domain.AggregatePoint{},
	}
	if grid == nil || grid.IsEmpty() {
		if grid != nil {
			result.SheetName = grid.Sheet
		}
		return result, nil
	}
	result.SheetName = grid.Sheet

	headerIndex := req.HeaderRow
	if headerIndex <= 0 {
		headerIndex = LocateHeader(grid.Rows, opts).Row
	}
	headerRow, ok := grid.Find(headerIndex)
	if !ok {
		return nil, apperrors.NewInvalidArgumentError(fmt.Sprintf("header row %d is empty", headerIndex))
	}

	groupIdx := MatchColumn(headerRow.Cells, req.GroupBy)
	if groupIdx == 0 {
		return nil, columnNotFound(req.GroupBy)
	}
	valueIdx := MatchColumn(headerRow.Cells, req.Value)
	if valueIdx == 0 {
		return nil, columnNotFound(req.Value)
	}
	if !kindOK {
		return nil, apperrors.NewInvalidArgumentError(InvalidAggMessage)
	}

	groups := make(map[string]*aggState)
	var order []*aggState
	accepted := 0

	for _, r := range grid.RowsBelow(headerIndex) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if req.MaxRows > 0 && accepted >= req.MaxRows {
			break
		}

		key := strings.TrimSpace(r.Cell(groupIdx))
		if key == "" {
			continue
		}

		var v float64
		if kind != domain.AggregateCount {
			parsed, ok := ParseNumber(r.Cell(valueIdx))
			if !ok {
				continue
			}
			v = parsed
		}

		fold := strings.ToLower(key)
		state, ok := groups[fold]
		if !ok {
			state = &aggState{key: key}
			groups[fold] = state
			order = append(order, state)
		}
		state.add(v)
		accepted++
	}

	points := make([]domain.AggregatePoint, len(order))
	for i, s := range order {
		points[i] = domain.AggregatePoint{Key: s.key, Value: s.finalize(kind)}
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Value > points[j].Value
	})

	result.Data = points
	return result, nil
}

func columnNotFound(name string) error {
	return apperrors.NewInvalidArgumentError(fmt.Sprintf("column '%s' not found", name)).
		WithContext("column", name)
}
