// Package writer renders extracted transactions as CSV, JSON, YAML or XLSX.
package writer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

// Writer renders a transaction list to out.
type Writer interface {
	Write(out io.Writer, txns []models.Transaction) error
	Extension() string
}

// Supported output formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXLSX = "xlsx"
)

var formats = map[string]func() Writer{
	FormatCSV:  func() Writer { return &CSVWriter{IncludeHeader: true} },
	FormatJSON: func() Writer { return &JSONWriter{Indent: "  "} },
	FormatYAML: func() Writer { return &YAMLWriter{} },
	FormatXLSX: func() Writer { return &XLSXWriter{SheetName: DefaultSheetName} },
}

// ForFormat returns the default writer for a format name such as "csv".
func ForFormat(name string) (Writer, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "yml" {
		name = FormatYAML
	}
	newWriter, ok := formats[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (supported: %s)", name, strings.Join(Formats(), ", "))
	}
	return newWriter(), nil
}

// Formats lists the supported format names.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteToFile writes transactions to the file at path using w.
func WriteToFile(path string, w Writer, txns []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	if err := w.Write(f, txns); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// row is the flat export shape shared by the tabular formats. Column
// order is fixed: date, merchant, amount, type, category, source,
// description.
type row struct {
	Date        string `csv:"date" yaml:"transaction_date"`
	Merchant    string `csv:"merchant" yaml:"merchant"`
	Amount      string `csv:"amount" yaml:"amount"`
	Type        string `csv:"type" yaml:"type"`
	Category    string `csv:"category" yaml:"category"`
	Source      string `csv:"source" yaml:"source"`
	Description string `csv:"description" yaml:"description"`
}

var columns = []string{"date", "merchant", "amount", "type", "category", "source", "description"}

func toRows(txns []models.Transaction) []row {
	rows := make([]row, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, row{
			Date:        t.TransactionDate,
			Merchant:    t.Merchant,
			Amount:      t.Amount.StringFixed(2),
			Type:        string(t.Type),
			Category:    t.Category,
			Source:      t.Source,
			Description: t.Description,
		})
	}
	return rows
}
