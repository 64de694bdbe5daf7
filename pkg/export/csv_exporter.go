package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Dataset is a tabular export payload.
type Dataset struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// CSVExporter renders datasets as CSV documents.
type CSVExporter struct{}

// NewCSVExporter returns a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// ContentType returns the MIME type for CSV output.
func (e *CSVExporter) ContentType() string {
	return "text/csv"
}

// FileExtension returns the file extension for CSV output.
func (e *CSVExporter) FileExtension() string {
	return "csv"
}

// Render writes the dataset as CSV.
func (e *CSVExporter) Render(ds Dataset) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if len(ds.Headers) > 0 {
		if err := w.Write(ds.Headers); err != nil {
			return nil, fmt.Errorf("export: write headers: %w", err)
		}
	}
	for i, row := range ds.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("export: write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flush: %w", err)
	}
	return buf.Bytes(), nil
}
