package http

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"sheetlens/internal/services"
	"sheetlens/pkg/contracts/domain"
)

// MockFileService is a mock implementation of FileServiceInterface
type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Upload(ctx context.Context, name string, size int64, r io.Reader) (*domain.FileUpload, error) {
	args := m.Called(name, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FileUpload), args.Error(1)
}

func (m *MockFileService) Delete(ctx context.Context, fileID string) error {
	return m.Called(fileID).Error(0)
}

// MockAnalysisService is a mock implementation of AnalysisServiceInterface
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Sheets(ctx context.Context, fileID string) ([]string, error) {
	args := m.Called(fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAnalysisService) Preview(ctx context.Context, fileID string, q services.PreviewQuery) (*domain.Preview, error) {
	args := m.Called(fileID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Preview), args.Error(1)
}

func (m *MockAnalysisService) Profile(ctx context.Context, fileID string, q services.ProfileQuery) (*domain.FileProfile, error) {
	args := m.Called(fileID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FileProfile), args.Error(1)
}

func (m *MockAnalysisService) Aggregate(ctx context.Context, fileID string, q services.AggregateQuery) (*domain.AggregateResult, error) {
	args := m.Called(fileID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AggregateResult), args.Error(1)
}

func (m *MockAnalysisService) Charts(ctx context.Context, fileID, sheet string, specs []domain.ChartSpec) ([]domain.ChartData, error) {
	args := m.Called(fileID, sheet, specs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartData), args.Error(1)
}

// MockHealthService is a mock implementation of HealthServiceInterface
type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) HealthCheck(ctx context.Context) services.HealthStatus {
	return m.Called().Get(0).(services.HealthStatus)
}

func (m *MockHealthService) ReadinessCheck(ctx context.Context) services.HealthStatus {
	return m.Called().Get(0).(services.HealthStatus)
}

func (m *MockHealthService) LivenessCheck(ctx context.Context) services.HealthStatus {
	return m.Called().Get(0).(services.HealthStatus)
}

func (m *MockHealthService) Version() map[string]interface{} {
	return m.Called().Get(0).(map[string]interface{})
}
