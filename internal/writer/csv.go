package writer

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

// CSVWriter writes transactions to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// Extension implements Writer.
func (w *CSVWriter) Extension() string { return ".csv" }

// Write writes transactions in CSV format to the given writer. Amounts are
// printed with exactly two fraction digits.
func (w *CSVWriter) Write(out io.Writer, txns []models.Transaction) error {
	rows := toRows(txns)
	if !w.IncludeHeader {
		if err := gocsv.MarshalWithoutHeaders(rows, out); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		return nil
	}
	if err := gocsv.Marshal(rows, out); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
