// Package exporter writes previews and aggregate results as CSV.
//
// CSVWriter writes a header line followed by records to any io.Writer and
// can prefix a UTF-8 BOM so Excel opens the output with the right encoding.
// WriteFile does the same into a file, creating its directory.
//
// Example usage:
//
//	headers, records := exporter.AggregateRecords(result)
//	err := exporter.WriteFile("out/region.csv", headers, records, exporter.WriteOptions{BOMPrefix: true})
package exporter
