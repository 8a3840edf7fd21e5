// Package config loads sheetlens configuration.
//
// Values are resolved in three layers, later layers winning:
//
//  1. Default()
//  2. an optional YAML file (config.yaml or configs/config.yaml, or the
//     path in SHEETLENS_CONFIG_FILE)
//  3. environment variables prefixed with SHEETLENS_
//
// Environment keys follow the struct layout, for example
//
//	SHEETLENS_SERVER_PORT=9090
//	SHEETLENS_STORAGE_UPLOAD_DIR=/var/lib/sheetlens/uploads
//	SHEETLENS_ANALYSIS_TYPE_THRESHOLD=0.9
//	SHEETLENS_SECURITY_RATE_LIMIT_RPS=20
package config
