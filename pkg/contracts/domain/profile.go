package domain

// ColumnType is the dominant data type inferred for a column
type ColumnType string

const (
	ColumnTypeText   ColumnType = "text"
	ColumnTypeNumber ColumnType = "number"
	ColumnTypeDate   ColumnType = "date"
	ColumnTypeBool   ColumnType = "bool"
	ColumnTypeMixed  ColumnType = "mixed"
	ColumnTypeEmpty  ColumnType = "empty"
)

// HeaderCandidate is a scanned row and its header-likeness score
type HeaderCandidate struct {
	Row   int     `json:"row"`
	Score float64 `json:"score"`
}

// ColumnProfile summarizes the structure of one column
type ColumnProfile struct {
	Index          int        `json:"index"`
	OriginalName   string     `json:"originalName"`
	NormalizedName string     `json:"normalizedName"`
	InferredType   ColumnType `json:"inferredType"`
	NonEmptyCount  int        `json:"nonEmptyCount"`
	EmptyCount     int        `json:"emptyCount"`
	UniqueCount    int        `json:"uniqueCount"`
	Examples       []string   `json:"examples"`

	Summary *NumericSummary `json:"numericSummary,omitempty"`
}

// NumericSummary describes the numeric values of a number column sample
type NumericSummary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
}

// FileProfile is the structural profile of a worksheet
type FileProfile struct {
	SheetName      string          `json:"sheetName,omitempty"`
	HeaderRowIndex int             `json:"headerRowIndex"`
	Columns        []ColumnProfile `json:"columns"`
}

// Preview is a raw grid of the header row and the first data rows
type Preview struct {
	SheetName string     `json:"sheetName,omitempty"`
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
}
