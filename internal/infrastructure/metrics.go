package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// AnalysisMetrics holds the instruments recorded by the HTTP layer and
// the analysis services.
type AnalysisMetrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	SheetRowsScanned  metric.Int64Counter
	ProfileDuration   metric.Float64Histogram
	AggregateDuration metric.Float64Histogram
	AnalysisErrors    metric.Int64Counter

	UploadsTotal metric.Int64Counter
	UploadBytes  metric.Int64Counter
}

// NewAnalysisMetrics creates the instruments on meter
func NewAnalysisMetrics(meter metric.Meter) (*AnalysisMetrics, error) {
	m := &AnalysisMetrics{}
	var err error

	if m.HTTPRequestsTotal, err = meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total number of HTTP requests")); err != nil {
		return nil, err
	}
	if m.HTTPRequestDuration, err = meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if m.HTTPActiveRequests, err = meter.Int64UpDownCounter("http_active_requests",
		metric.WithDescription("Number of in-flight HTTP requests")); err != nil {
		return nil, err
	}
	if m.SheetRowsScanned, err = meter.Int64Counter("sheet_rows_scanned_total",
		metric.WithDescription("Used worksheet rows read by analysis operations")); err != nil {
		return nil, err
	}
	if m.ProfileDuration, err = meter.Float64Histogram("profile_duration_seconds",
		metric.WithDescription("Workbook profiling duration in seconds"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if m.AggregateDuration, err = meter.Float64Histogram("aggregate_duration_seconds",
		metric.WithDescription("Grouped aggregation duration in seconds"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if m.AnalysisErrors, err = meter.Int64Counter("analysis_errors_total",
		metric.WithDescription("Analysis operations that ended in an error")); err != nil {
		return nil, err
	}
	if m.UploadsTotal, err = meter.Int64Counter("uploads_total",
		metric.WithDescription("Accepted workbook uploads")); err != nil {
		return nil, err
	}
	if m.UploadBytes, err = meter.Int64Counter("upload_bytes_total",
		metric.WithDescription("Bytes of accepted workbook uploads"),
		metric.WithUnit("By")); err != nil {
		return nil, err
	}

	return m, nil
}

// NoopAnalysisMetrics returns instruments that record nothing
func NoopAnalysisMetrics() *AnalysisMetrics {
	m, _ := NewAnalysisMetrics(noop.NewMeterProvider().Meter(MeterName))
	return m
}

// RecordAnalysis records duration, scanned rows and outcome of one
// profile/preview/aggregate operation.
func (m *AnalysisMetrics) RecordAnalysis(ctx context.Context, operation string, rows int, duration time.Duration, err error) {
	if m == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}
	opAttr := attribute.String("operation", operation)

	m.SheetRowsScanned.Add(ctx, int64(rows), metric.WithAttributes(opAttr))
	switch operation {
	case "profile":
		m.ProfileDuration.Record(ctx, duration.Seconds(),
			metric.WithAttributes(attribute.String("status", status)))
	case "aggregate":
		m.AggregateDuration.Record(ctx, duration.Seconds(),
			metric.WithAttributes(attribute.String("status", status)))
	}
	if err != nil {
		m.AnalysisErrors.Add(ctx, 1, metric.WithAttributes(opAttr))
	}
}

// RecordUpload records one accepted upload
func (m *AnalysisMetrics) RecordUpload(ctx context.Context, size int64) {
	if m == nil {
		return
	}
	m.UploadsTotal.Add(ctx, 1)
	m.UploadBytes.Add(ctx, size)
}
