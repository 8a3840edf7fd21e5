package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "sheetlens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Storage   StorageConfig   `yaml:"storage" envconfig:"STORAGE"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"HOST"`
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
}

// Address returns the listen address
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL"`
	Output      string `yaml:"output" envconfig:"OUTPUT"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// StorageConfig controls where uploads are kept
type StorageConfig struct {
	UploadDir      string `yaml:"upload_dir" envconfig:"UPLOAD_DIR"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES"`
}

// AnalysisConfig holds the windows and weights used by profiling and
// aggregation.
type AnalysisConfig struct {
	HeaderScanRows   int     `yaml:"header_scan_rows" envconfig:"HEADER_SCAN_ROWS"`
	MaxCellsPerRow   int     `yaml:"max_cells_per_row" envconfig:"MAX_CELLS_PER_ROW"`
	SampleRows       int     `yaml:"sample_rows" envconfig:"SAMPLE_ROWS"`
	InferenceSample  int     `yaml:"inference_sample" envconfig:"INFERENCE_SAMPLE"`
	PreviewRows      int     `yaml:"preview_rows" envconfig:"PREVIEW_ROWS"`
	TypeThreshold    float64 `yaml:"type_threshold" envconfig:"TYPE_THRESHOLD"`
	StringyWeight    float64 `yaml:"stringy_weight" envconfig:"STRINGY_WEIGHT"`
	NonEmptyWeight   float64 `yaml:"non_empty_weight" envconfig:"NON_EMPTY_WEIGHT"`
	NumericWeight    float64 `yaml:"numeric_weight" envconfig:"NUMERIC_WEIGHT"`
	AggregateMaxRows int     `yaml:"aggregate_max_rows" envconfig:"AGGREGATE_MAX_ROWS"`
	DefaultTop       int     `yaml:"default_top" envconfig:"DEFAULT_TOP"`
	ChartConcurrency int     `yaml:"chart_concurrency" envconfig:"CHART_CONCURRENCY"`
}

// TelemetryConfig configures tracing and metrics
type TelemetryConfig struct {
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER"`
	MetricsEnabled bool    `yaml:"metrics_enabled" envconfig:"METRICS_ENABLED"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO"`
	Environment    string  `yaml:"environment" envconfig:"ENVIRONMENT"`
}

// Load loads configuration from defaults, the config file and the environment.
// A dotenv file is read into the environment first; variables that are
// already set keep their value.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	return LoadFrom(getConfigFilePath())
}

// loadDotEnv loads SHEETLENS_ENV_FILE, or ./.env when present
func loadDotEnv() error {
	path := os.Getenv(EnvDotEnvFile)
	if path == "" {
		path = ".env"
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}
	if err := godotenv.Load(path); err != nil {
		return apperrors.NewConfigError("failed to load env file", err).WithContext("file", path)
	}
	return nil
}

// LoadFrom is Load with an explicit config file. An empty path skips the file.
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("file", configFile)
		}
	}

	// Fields without a matching variable are left untouched, so env
	// values layer over the file and defaults.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server request timeout must be positive")
	}

	if c.Security.EnableCORS && len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified when CORS is enabled")
	}
	if c.Security.RateLimit.Enabled && (c.Security.RateLimit.RPS <= 0 || c.Security.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit rps and burst must be positive")
	}

	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output %q (want console, file or both)", c.Logging.Output)
	}
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = filepath.Join("logs", "sheetlens.log")
	}

	if c.Storage.UploadDir == "" {
		return fmt.Errorf("storage upload dir must be set")
	}
	if c.Storage.MaxUploadBytes <= 0 {
		return fmt.Errorf("storage max upload bytes must be positive")
	}

	a := c.Analysis
	windows := map[string]int{
		"header_scan_rows":  a.HeaderScanRows,
		"max_cells_per_row": a.MaxCellsPerRow,
		"sample_rows":       a.SampleRows,
		"inference_sample":  a.InferenceSample,
		"preview_rows":      a.PreviewRows,
		"chart_concurrency": a.ChartConcurrency,
	}
	for name, v := range windows {
		if v <= 0 {
			return fmt.Errorf("analysis %s must be positive, got %d", name, v)
		}
	}
	if a.TypeThreshold <= 0 || a.TypeThreshold > 1 {
		return fmt.Errorf("analysis type_threshold must be in (0, 1], got %g", a.TypeThreshold)
	}
	if a.AggregateMaxRows < 0 || a.DefaultTop < 0 {
		return fmt.Errorf("analysis aggregate_max_rows and default_top must not be negative")
	}

	switch c.Telemetry.TraceExporter {
	case "stdout", "none":
	default:
		return fmt.Errorf("invalid telemetry trace exporter %q (want stdout or none)", c.Telemetry.TraceExporter)
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry sample ratio must be in [0, 1]")
	}

	return nil
}

// getConfigFilePath returns the path to the config file, or "" if none exists
func getConfigFilePath() string {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p
	}

	for _, location := range []string{"config.yaml", "configs/config.yaml"} {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    90 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  DefaultRequestTimeout,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     20,
				Burst:   40,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "console",
		},
		Storage: StorageConfig{
			UploadDir:      filepath.Join("data", "uploads"),
			MaxUploadBytes: DefaultMaxUploadBytes,
		},
		Analysis: AnalysisConfig{
			HeaderScanRows:   DefaultHeaderScanRows,
			MaxCellsPerRow:   DefaultMaxCellsPerRow,
			SampleRows:       DefaultSampleRows,
			InferenceSample:  DefaultInferenceSample,
			PreviewRows:      DefaultPreviewRows,
			TypeThreshold:    DefaultTypeThreshold,
			StringyWeight:    2.0,
			NonEmptyWeight:   0.5,
			NumericWeight:    -1.5,
			AggregateMaxRows: 0,
			DefaultTop:       DefaultAggregateTop,
			ChartConcurrency: DefaultChartConcurrency,
		},
		Telemetry: TelemetryConfig{
			TraceExporter:  "none",
			MetricsEnabled: true,
			SampleRatio:    1.0,
			Environment:    "development",
		},
	}
}

// EnsureDirectories creates the directories the configuration points at
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Storage.UploadDir}
	if c.Logging.Output != "console" {
		dirs = append(dirs, filepath.Dir(c.Logging.FilePath))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.NewConfigError("failed to create directory", err).WithContext("dir", dir)
		}
	}
	return nil
}
