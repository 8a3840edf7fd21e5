// Package main provides the sheetlens command line: offline profiling,
// previews and aggregations of local .xlsx files, and the HTTP server.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"sheetlens/internal/app"
	"sheetlens/internal/config"
	"sheetlens/internal/exporter"
	"sheetlens/internal/infrastructure"
	"sheetlens/internal/services"
	"sheetlens/internal/spreadsheet"
	"sheetlens/pkg/contracts"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// pathLocator treats file ids as local paths
type pathLocator struct{}

func (pathLocator) Path(p string) (string, error) { return p, nil }

type cliOptions struct {
	sheet  string
	pretty bool
	format string
	output string
	bom    bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:          "sheetlens",
		Short:        "Profile and aggregate Excel workbooks",
		Long:         `sheetlens detects the header row of a worksheet, infers column types and computes grouped aggregates. Results are printed as JSON.`,
		Version:      contracts.Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(contracts.GetFullVersionString() + "\n")
	root.PersistentFlags().StringVar(&opts.sheet, "sheet", "", "Worksheet name (default: first sheet)")
	root.PersistentFlags().BoolVar(&opts.pretty, "pretty", false, "Pretty-print JSON output")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "Output file path (default: stdout)")

	root.AddCommand(
		newSheetsCmd(opts),
		newPreviewCmd(opts),
		newProfileCmd(opts),
		newAggregateCmd(opts),
		newServeCmd(),
	)
	return root
}

// newAnalysis builds an analysis service over local files. Logs go to
// stderr so stdout carries only JSON.
func newAnalysis(stderr io.Writer) (*services.AnalysisService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logging := cfg.Logging
	if logging.Level == "info" {
		logging.Level = "warn"
	}
	logger := infrastructure.NewLogger(logging, stderr)
	return services.NewAnalysisService(pathLocator{}, spreadsheet.FileReader{}, cfg.Analysis,
		infrastructure.NoopAnalysisMetrics(), logger), nil
}

func writeJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return nil
}

// addTableFlags registers the flags of commands that can emit CSV
func addTableFlags(cmd *cobra.Command, opts *cliOptions) {
	cmd.Flags().StringVar(&opts.format, "format", "json", "Output format: json or csv")
	cmd.Flags().BoolVar(&opts.bom, "bom", false, "Prefix CSV output with a UTF-8 BOM")
}

// emit writes v as JSON, or headers and records as CSV when --format csv
// was given, to --output or stdout
func emit(cmd *cobra.Command, opts *cliOptions, v interface{}, headers []string, records [][]string) error {
	csvOut := false
	switch strings.ToLower(opts.format) {
	case "", "json":
	case "csv":
		csvOut = headers != nil
	default:
		return fmt.Errorf("invalid format: %s (must be json or csv)", opts.format)
	}

	if csvOut && opts.output != "" {
		return exporter.WriteFile(opts.output, headers, records, exporter.WriteOptions{BOMPrefix: opts.bom})
	}

	var buf bytes.Buffer
	if csvOut {
		if err := exporter.WriteCSV(&buf, headers, records, exporter.WriteOptions{BOMPrefix: opts.bom}); err != nil {
			return err
		}
	} else if err := writeJSON(&buf, v, opts.pretty); err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err := cmd.OutOrStdout().Write(buf.Bytes())
	return err
}

func newSheetsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sheets <file.xlsx>",
		Short: "List worksheet names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := newAnalysis(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			sheets, err := analysis.Sheets(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return emit(cmd, opts, map[string]interface{}{"sheets": sheets}, nil, nil)
		},
	}
}

func newPreviewCmd(opts *cliOptions) *cobra.Command {
	var rows int
	cmd := &cobra.Command{
		Use:   "preview <file.xlsx>",
		Short: "Print the first used rows of a worksheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := newAnalysis(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			preview, err := analysis.Preview(cmd.Context(), args[0], services.PreviewQuery{
				Sheet:   opts.sheet,
				MaxRows: rows,
			})
			if err != nil {
				return err
			}
			headers, records := exporter.PreviewRecords(preview)
			return emit(cmd, opts, preview, headers, records)
		},
	}
	addTableFlags(cmd, opts)
	cmd.Flags().IntVar(&rows, "rows", 0, "Data rows to include (default: configured preview rows)")
	return cmd
}

func newProfileCmd(opts *cliOptions) *cobra.Command {
	var scanRows, sampleRows int
	cmd := &cobra.Command{
		Use:   "profile <file.xlsx>",
		Short: "Detect the header row and profile each column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := newAnalysis(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			profile, err := analysis.Profile(cmd.Context(), args[0], services.ProfileQuery{
				Sheet:      opts.sheet,
				ScanRows:   scanRows,
				SampleRows: sampleRows,
			})
			if err != nil {
				return err
			}
			return emit(cmd, opts, profile, nil, nil)
		},
	}
	cmd.Flags().IntVar(&scanRows, "scan-rows", 0, "Used rows considered for header detection")
	cmd.Flags().IntVar(&sampleRows, "sample-rows", 0, "Data rows sampled per column")
	return cmd
}

func newAggregateCmd(opts *cliOptions) *cobra.Command {
	var q services.AggregateQuery
	cmd := &cobra.Command{
		Use:   "aggregate <file.xlsx>",
		Short: "Group rows by one column and aggregate another",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := newAnalysis(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			q.Sheet = opts.sheet
			result, err := analysis.Aggregate(cmd.Context(), args[0], q)
			if err != nil {
				return err
			}
			result.FileID = ""
			headers, records := exporter.AggregateRecords(result)
			return emit(cmd, opts, result, headers, records)
		},
	}
	addTableFlags(cmd, opts)
	cmd.Flags().StringVar(&q.GroupBy, "group-by", "", "Column to group by")
	cmd.Flags().StringVar(&q.Value, "value", "", "Column to aggregate")
	cmd.Flags().StringVar(&q.Agg, "agg", "sum", "Aggregate: sum, avg, count, min or max")
	cmd.Flags().IntVar(&q.Top, "top", 0, "Keep only the largest groups (0 keeps all)")
	cmd.Flags().IntVar(&q.MaxRows, "max-rows", 0, "Stop after this many data rows")
	_ = cmd.MarkFlagRequired("group-by")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := app.NewApplication()
			if err != nil {
				return err
			}
			if err := application.Start(cmd.Context()); err != nil {
				application.Logger.Error("Application error", slog.String("error", err.Error()))
				return err
			}
			return nil
		},
	}
}
