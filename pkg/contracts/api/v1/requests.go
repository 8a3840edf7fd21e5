// Package api contains the request contracts of the sheetlens HTTP API.
package api

import (
	"sheetlens/pkg/contracts/domain"
)

// PreviewRequest holds query parameters of GET /api/files/{fileId}/preview
type PreviewRequest struct {
	MaxRows int    `json:"maxRows" query:"maxRows" validate:"gte=0,lte=1000"`
	Sheet   string `json:"sheet" query:"sheet" validate:"max=31"`
}

// ProfileRequest holds query parameters of GET /api/files/{fileId}/profile
type ProfileRequest struct {
	ScanRows   int    `json:"scanRows" query:"scanRows" validate:"gte=0,lte=1000"`
	SampleRows int    `json:"sampleRows" query:"sampleRows" validate:"gte=0,lte=100000"`
	Sheet      string `json:"sheet" query:"sheet" validate:"max=31"`
}

// AggregateRequest holds query parameters of GET /api/files/{fileId}/aggregate.
// Agg is checked by the aggregator so its message reaches the caller verbatim.
type AggregateRequest struct {
	GroupBy string `json:"groupBy" query:"groupBy" validate:"required,max=255"`
	Value   string `json:"value" query:"value" validate:"required,max=255"`
	Agg     string `json:"agg" query:"agg"`
	Top     int    `json:"top" query:"top" validate:"gte=0,lte=1000"`
	MaxRows int    `json:"maxRows" query:"maxRows" validate:"gte=0"`
	Sheet   string `json:"sheet" query:"sheet" validate:"max=31"`
	Format  string `json:"format" query:"format" validate:"omitempty,oneof=json csv"`
}

// ChartBatchRequest is the body of POST /api/files/{fileId}/charts
type ChartBatchRequest struct {
	Sheet  string             `json:"sheet" validate:"max=31"`
	Charts []domain.ChartSpec `json:"charts" validate:"required,min=1,max=20,dive"`
}
