package services

import (
	"sheetlens/internal/config"
	"sheetlens/internal/tabular"
)

// AnalysisOptionsFrom converts the analysis configuration to core options
func AnalysisOptionsFrom(cfg config.AnalysisConfig) tabular.Options {
	return tabular.Options{
		HeaderScanRows:  cfg.HeaderScanRows,
		MaxCellsPerRow:  cfg.MaxCellsPerRow,
		SampleRows:      cfg.SampleRows,
		InferenceSample: cfg.InferenceSample,
		PreviewRows:     cfg.PreviewRows,
		TypeThreshold:   cfg.TypeThreshold,
		Scoring: tabular.HeaderScoring{
			StringyWeight:  cfg.StringyWeight,
			NonEmptyWeight: cfg.NonEmptyWeight,
			NumericWeight:  cfg.NumericWeight,
		},
	}
}
