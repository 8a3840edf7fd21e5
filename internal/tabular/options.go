// Package tabular infers the structure of a worksheet grid and computes
// profiles, previews and grouped aggregations over it.
//
// Every function here is a pure pass over a domain.Grid; reading the
// workbook is the job of package spreadsheet.
package tabular

// HeaderScoring weighs the per-row counts used to pick the header row
type HeaderScoring struct {
	StringyWeight  float64
	NonEmptyWeight float64
	NumericWeight  float64
}

// Options holds the windows and thresholds of the analysis. Zero fields
// fall back to the defaults of DefaultOptions.
type Options struct {
	HeaderScanRows  int
	MaxCellsPerRow  int
	SampleRows      int
	InferenceSample int
	PreviewRows     int
	TypeThreshold   float64
	Scoring         HeaderScoring
}

// DefaultOptions returns the stock analysis settings
func DefaultOptions() Options {
	return Options{
		HeaderScanRows:  25,
		MaxCellsPerRow:  50,
		SampleRows:      200,
		InferenceSample: 200,
		PreviewRows:     20,
		TypeThreshold:   0.85,
		Scoring: HeaderScoring{
			StringyWeight:  2.0,
			NonEmptyWeight: 0.5,
			NumericWeight:  -1.5,
		},
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.HeaderScanRows <= 0 {
		o.HeaderScanRows = d.HeaderScanRows
	}
	if o.MaxCellsPerRow <= 0 {
		o.MaxCellsPerRow = d.MaxCellsPerRow
	}
	if o.SampleRows <= 0 {
		o.SampleRows = d.SampleRows
	}
	if o.InferenceSample <= 0 {
		o.InferenceSample = d.InferenceSample
	}
	if o.PreviewRows <= 0 {
		o.PreviewRows = d.PreviewRows
	}
	if o.TypeThreshold <= 0 || o.TypeThreshold > 1 {
		o.TypeThreshold = d.TypeThreshold
	}
	if o.Scoring == (HeaderScoring{}) {
		o.Scoring = d.Scoring
	}
	return o
}

// ReadRows is the number of used rows a profile needs: the header scan
// window plus the sample below it.
func (o Options) ReadRows() int {
	o = o.withDefaults()
	return o.HeaderScanRows + o.SampleRows
}
