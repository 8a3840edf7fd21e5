package http

import (
	"context"
	"io"

	"sheetlens/internal/services"
	"sheetlens/pkg/contracts/domain"
)

// FileServiceInterface stores and removes uploads
type FileServiceInterface interface {
	Upload(ctx context.Context, name string, size int64, r io.Reader) (*domain.FileUpload, error)
	Delete(ctx context.Context, fileID string) error
}

// AnalysisServiceInterface analyses stored uploads
type AnalysisServiceInterface interface {
	Sheets(ctx context.Context, fileID string) ([]string, error)
	Preview(ctx context.Context, fileID string, q services.PreviewQuery) (*domain.Preview, error)
	Profile(ctx context.Context, fileID string, q services.ProfileQuery) (*domain.FileProfile, error)
	Aggregate(ctx context.Context, fileID string, q services.AggregateQuery) (*domain.AggregateResult, error)
	Charts(ctx context.Context, fileID, sheet string, specs []domain.ChartSpec) ([]domain.ChartData, error)
}

// HealthServiceInterface reports process health
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	ReadinessCheck(ctx context.Context) services.HealthStatus
	LivenessCheck(ctx context.Context) services.HealthStatus
	Version() map[string]interface{}
}

// RequestValidator validates decoded request contracts
type RequestValidator interface {
	Validate(v interface{}) error
}

var (
	_ FileServiceInterface     = (*services.FileService)(nil)
	_ AnalysisServiceInterface = (*services.AnalysisService)(nil)
	_ HealthServiceInterface   = (*services.HealthService)(nil)
)
