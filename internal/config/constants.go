package config

import "time"

// Application constants
const (
	AppName = "sheetlens"

	EnvPrefix     = "SHEETLENS"
	EnvConfigFile = "SHEETLENS_CONFIG_FILE"
	EnvDotEnvFile = "SHEETLENS_ENV_FILE"

	// Upload limits
	DefaultMaxUploadBytes = 15 << 20 // 15 MiB
	UploadExtension       = ".xlsx"

	// Analysis windows
	DefaultHeaderScanRows   = 25
	DefaultMaxCellsPerRow   = 50
	DefaultSampleRows       = 200
	DefaultInferenceSample  = 200
	DefaultPreviewRows      = 20
	DefaultTypeThreshold    = 0.85
	DefaultAggregateTop     = 0
	DefaultChartConcurrency = 4

	DefaultRequestTimeout = 60 * time.Second
)
