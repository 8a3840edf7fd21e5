// Package services implements the sheetlens business layer between the HTTP
// handlers and the spreadsheet core.
//
// # Services
//
//	FileService      validates and stores uploads
//	AnalysisService  preview, profile, aggregate and chart batches over a stored upload
//	HealthService    liveness, readiness and version reporting
//
// Services receive their collaborators through constructors and depend on
// small interfaces (FileLocator, WorkbookReader) so tests can swap them for
// testify mocks. Every blocking method takes a context.Context which is
// propagated down to the row loops of the reader and the analysis core.
//
// # Observability
//
// Each analysis opens a span on the "sheetlens.analysis" tracer and records
// its duration and scanned rows through infrastructure.AnalysisMetrics.
// Logging goes through the injected *slog.Logger with a "component"
// attribute naming the service.
package services
