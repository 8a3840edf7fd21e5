package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"sheetlens/internal/config"
	apperrors "sheetlens/internal/errors"
	"sheetlens/internal/infrastructure"
	"sheetlens/internal/spreadsheet"
	"sheetlens/internal/tabular"
	"sheetlens/pkg/contracts/domain"
)

// TracerName is the instrumentation scope of analysis spans
const TracerName = "sheetlens.analysis"

const (
	defaultAgg       = string(domain.AggregateSum)
	defaultChartTop  = 10
	defaultChartType = domain.ChartTypeBar
)

// PreviewQuery selects the sheet and size of a preview
type PreviewQuery struct {
	Sheet   string
	MaxRows int
}

// ProfileQuery selects the sheet and windows of a profile. Zero windows use
// the configured defaults.
type ProfileQuery struct {
	Sheet      string
	ScanRows   int
	SampleRows int
}

// AggregateQuery describes one grouped aggregation. An empty Agg means sum;
// Top <= 0 falls back to the configured default top.
type AggregateQuery struct {
	Sheet   string
	GroupBy string
	Value   string
	Agg     string
	Top     int
	MaxRows int
}

// AnalysisService runs previews, profiles and aggregations over stored uploads
type AnalysisService struct {
	files   FileLocator
	reader  WorkbookReader
	opts    tabular.Options
	cfg     config.AnalysisConfig
	metrics *infrastructure.AnalysisMetrics
	tracer  trace.Tracer
	logger  *slog.Logger
}

// NewAnalysisService creates an analysis service. A nil metrics value
// disables metric recording.
func NewAnalysisService(locator FileLocator, reader WorkbookReader, cfg config.AnalysisConfig, metrics *infrastructure.AnalysisMetrics, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ChartConcurrency <= 0 {
		cfg.ChartConcurrency = config.DefaultChartConcurrency
	}
	if cfg.PreviewRows <= 0 {
		cfg.PreviewRows = config.DefaultPreviewRows
	}
	return &AnalysisService{
		files:   locator,
		reader:  reader,
		opts:    AnalysisOptionsFrom(cfg),
		cfg:     cfg,
		metrics: metrics,
		tracer:  otel.Tracer(TracerName),
		logger:  logger.With(slog.String("component", "analysis_service")),
	}
}

// Sheets lists the worksheet names of an upload in workbook order
func (s *AnalysisService) Sheets(ctx context.Context, fileID string) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "analysis.sheets",
		trace.WithAttributes(attribute.String("file.id", fileID)))
	defer span.End()

	path, err := s.files.Path(fileID)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	sheets, err := s.reader.Sheets(path)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("sheet.count", len(sheets)))
	return sheets, nil
}

// Preview returns the first used row and up to q.MaxRows following rows
func (s *AnalysisService) Preview(ctx context.Context, fileID string, q PreviewQuery) (*domain.Preview, error) {
	maxRows := q.MaxRows
	if maxRows <= 0 {
		maxRows = s.cfg.PreviewRows
	}

	var preview domain.Preview
	err := s.withGrid(ctx, "preview", fileID, spreadsheet.ReadOptions{Sheet: q.Sheet, MaxRows: maxRows + 1},
		func(_ context.Context, g *domain.Grid) error {
			preview = tabular.BuildPreview(g, maxRows)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return &preview, nil
}

// Profile locates the header of the selected sheet and profiles its columns
func (s *AnalysisService) Profile(ctx context.Context, fileID string, q ProfileQuery) (*domain.FileProfile, error) {
	opts := s.opts
	if q.ScanRows > 0 {
		opts.HeaderScanRows = q.ScanRows
	}
	if q.SampleRows > 0 {
		opts.SampleRows = q.SampleRows
	}

	var profile *domain.FileProfile
	err := s.withGrid(ctx, "profile", fileID, spreadsheet.ReadOptions{Sheet: q.Sheet, MaxRows: opts.ReadRows()},
		func(ctx context.Context, g *domain.Grid) error {
			var err error
			profile, err = tabular.Profile(ctx, g, opts)
			return err
		})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// Aggregate groups the selected sheet and returns the top groups by value
func (s *AnalysisService) Aggregate(ctx context.Context, fileID string, q AggregateQuery) (*domain.AggregateResult, error) {
	result, err := s.aggregate(ctx, fileID, q)
	if err != nil {
		return nil, err
	}

	top := q.Top
	if top <= 0 {
		top = s.cfg.DefaultTop
	}
	out := result.Top(top)
	return &out, nil
}

func (s *AnalysisService) aggregate(ctx context.Context, fileID string, q AggregateQuery) (*domain.AggregateResult, error) {
	agg := q.Agg
	if strings.TrimSpace(agg) == "" {
		agg = defaultAgg
	}
	req := tabular.AggregateRequest{
		GroupBy: q.GroupBy,
		Value:   q.Value,
		Agg:     agg,
		MaxRows: q.MaxRows,
	}

	var result *domain.AggregateResult
	err := s.withGrid(ctx, "aggregate", fileID, spreadsheet.ReadOptions{Sheet: q.Sheet, MaxRows: s.cfg.AggregateMaxRows},
		func(ctx context.Context, g *domain.Grid) error {
			if g.Truncated {
				s.logger.WarnContext(ctx, "aggregate input truncated",
					slog.String("file_id", fileID),
					slog.String("sheet", g.Sheet),
					slog.Int("max_rows", s.cfg.AggregateMaxRows))
			}
			var err error
			result, err = tabular.Aggregate(ctx, g, req, s.opts)
			return err
		})
	if err != nil {
		return nil, err
	}
	result.FileID = fileID
	return result, nil
}

// Charts resolves a batch of chart specs against one upload. Specs run
// concurrently, each on its own workbook handle, and results keep the
// order of specs. A spec naming an unknown column or statistic yields a
// ChartData with Error set; any other failure aborts the batch.
func (s *AnalysisService) Charts(ctx context.Context, fileID, sheet string, specs []domain.ChartSpec) ([]domain.ChartData, error) {
	ctx, span := s.tracer.Start(ctx, "analysis.charts",
		trace.WithAttributes(
			attribute.String("file.id", fileID),
			attribute.Int("chart.count", len(specs)),
		))
	defer span.End()

	if _, err := s.files.Path(fileID); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	results := make([]domain.ChartData, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.ChartConcurrency)

	for i, spec := range specs {
		i, spec := i, withChartDefaults(spec)
		g.Go(func() error {
			res, err := s.aggregate(gctx, fileID, AggregateQuery{
				Sheet:   sheet,
				GroupBy: spec.GroupBy,
				Value:   spec.Value,
				Agg:     spec.Agg,
			})
			results[i] = domain.ChartData{Spec: spec}
			if err != nil {
				if errors.Is(err, apperrors.ErrInvalidArgumentKind) || errors.Is(err, apperrors.ErrNotFoundKind) {
					results[i].Error = chartErrorMessage(err)
					return nil
				}
				return err
			}
			top := res.Top(spec.Top)
			results[i].Result = &top
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	s.logger.InfoContext(ctx, "chart batch resolved",
		slog.String("file_id", fileID),
		slog.Int("charts", len(specs)),
		slog.Int("failed", failed))
	return results, nil
}

func withChartDefaults(spec domain.ChartSpec) domain.ChartSpec {
	if strings.TrimSpace(spec.Agg) == "" {
		spec.Agg = defaultAgg
	}
	if spec.Type == "" {
		spec.Type = defaultChartType
	}
	if spec.Top <= 0 {
		spec.Top = defaultChartTop
	}
	if strings.TrimSpace(spec.Title) == "" {
		spec.Title = fmt.Sprintf("%s of %s by %s", strings.ToLower(strings.TrimSpace(spec.Agg)), spec.Value, spec.GroupBy)
	}
	return spec
}

func chartErrorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// withGrid resolves fileID, reads the selected sheet and runs fn inside an
// analysis span. Duration, scanned rows and outcome are recorded for op.
func (s *AnalysisService) withGrid(ctx context.Context, op, fileID string, opts spreadsheet.ReadOptions, fn func(context.Context, *domain.Grid) error) error {
	ctx, span := s.tracer.Start(ctx, "analysis."+op,
		trace.WithAttributes(
			attribute.String("file.id", fileID),
			attribute.String("sheet.requested", opts.Sheet),
			attribute.Int("read.max_rows", opts.MaxRows),
		))
	defer span.End()

	start := time.Now()
	rows := 0
	sheet := ""

	path, err := s.files.Path(fileID)
	if err == nil {
		err = s.reader.WithSheet(ctx, path, opts, func(g *domain.Grid) error {
			rows, sheet = len(g.Rows), g.Sheet
			span.SetAttributes(
				attribute.String("sheet.name", g.Sheet),
				attribute.Int("sheet.rows", rows),
				attribute.Bool("sheet.truncated", g.Truncated),
			)
			return fn(ctx, g)
		})
	}

	duration := time.Since(start)
	s.metrics.RecordAnalysis(ctx, op, rows, duration, err)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.logger.WarnContext(ctx, "analysis failed",
			slog.String("operation", op),
			slog.String("file_id", fileID),
			slog.String("error", err.Error()))
		return err
	}

	s.logger.InfoContext(ctx, "analysis completed",
		slog.String("operation", op),
		slog.String("file_id", fileID),
		slog.String("sheet", sheet),
		slog.Int("rows", rows),
		slog.Int64("duration_ms", duration.Milliseconds()))
	return nil
}
