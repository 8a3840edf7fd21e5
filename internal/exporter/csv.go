package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"sheetlens/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// CSVWriter writes one table to an underlying writer
type CSVWriter struct {
	out     io.Writer
	writer  *csv.Writer
	opts    WriteOptions
	started bool
}

// NewCSVWriter creates a CSV writer on w
func NewCSVWriter(w io.Writer, opts WriteOptions) *CSVWriter {
	return &CSVWriter{out: w, writer: csv.NewWriter(w), opts: opts}
}

// WriteHeader writes the BOM, if requested, and the header line
func (w *CSVWriter) WriteHeader(headers []string) error {
	if err := w.start(); err != nil {
		return err
	}
	if len(headers) == 0 {
		return nil
	}
	if err := w.writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	return nil
}

// WriteRecord writes a single record
func (w *CSVWriter) WriteRecord(record []string) error {
	if err := w.start(); err != nil {
		return err
	}
	return w.writer.Write(record)
}

// Flush flushes buffered records and reports any write error
func (w *CSVWriter) Flush() error {
	w.writer.Flush()
	return w.writer.Error()
}

func (w *CSVWriter) start() error {
	if w.started {
		return nil
	}
	w.started = true
	if w.opts.BOMPrefix {
		if _, err := w.out.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}
	return nil
}

// WriteCSV writes headers and records to w
func WriteCSV(w io.Writer, headers []string, records [][]string, opts WriteOptions) error {
	cw := NewCSVWriter(w, opts)
	if err := cw.WriteHeader(headers); err != nil {
		return err
	}
	for i, record := range records {
		if err := cw.WriteRecord(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	return cw.Flush()
}

// WriteFile writes headers and records to the file at path, creating its
// directory and truncating an existing file
func WriteFile(path string, headers []string, records [][]string, opts WriteOptions) error {
	slog.Debug("Writing CSV file",
		slog.String("file_path", path),
		slog.Int("record_count", len(records)))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}

	if err := WriteCSV(file, headers, records, opts); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// PreviewRecords returns the preview columns and rows as CSV records
func PreviewRecords(p *domain.Preview) ([]string, [][]string) {
	return p.Columns, p.Rows
}

// AggregateRecords returns one record per group: the key and its value.
// The value column is named after the aggregate, for example "sum(Amount)".
func AggregateRecords(r *domain.AggregateResult) ([]string, [][]string) {
	headers := []string{r.GroupBy, fmt.Sprintf("%s(%s)", r.Agg, r.Value)}
	records := make([][]string, 0, len(r.Data))
	for _, p := range r.Data {
		records = append(records, []string{p.Key, formatFloat(p.Value)})
	}
	return headers, records
}
