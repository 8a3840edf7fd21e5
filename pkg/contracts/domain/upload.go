package domain

// FileUpload describes a stored workbook
type FileUpload struct {
	FileID       string `json:"fileId"`
	OriginalName string `json:"originalName"`
	SizeBytes    int64  `json:"sizeBytes"`
}

// ChartType is the visual form suggested for a chart
type ChartType string

const (
	ChartTypeBar     ChartType = "bar"
	ChartTypePie     ChartType = "pie"
	ChartTypeLine    ChartType = "line"
	ChartTypeScatter ChartType = "scatter"
)

// ChartSpec is a suggested chart backed by one grouped aggregation
type ChartSpec struct {
	Title   string    `json:"title" validate:"max=200"`
	Type    ChartType `json:"type" validate:"omitempty,oneof=bar pie line scatter"`
	GroupBy string    `json:"groupBy" validate:"required"`
	Value   string    `json:"value" validate:"required"`
	Agg     string    `json:"agg"`
	Top     int       `json:"top" validate:"gte=0,lte=1000"`
}

// ChartData pairs a chart spec with its resolved aggregation or failure
type ChartData struct {
	Spec   ChartSpec        `json:"spec"`
	Result *AggregateResult `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}
