package writer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

// JSONWriter writes the transaction records as a JSON array.
type JSONWriter struct {
	Indent string
}

// Extension implements Writer.
func (w *JSONWriter) Extension() string { return ".json" }

func (w *JSONWriter) Write(out io.Writer, txns []models.Transaction) error {
	if txns == nil {
		txns = []models.Transaction{}
	}
	enc := json.NewEncoder(out)
	if w.Indent != "" {
		enc.SetIndent("", w.Indent)
	}
	if err := enc.Encode(txns); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// YAMLWriter writes the transaction records as a YAML sequence.
type YAMLWriter struct{}

// Extension implements Writer.
func (w *YAMLWriter) Extension() string { return ".yaml" }

func (w *YAMLWriter) Write(out io.Writer, txns []models.Transaction) error {
	data, err := yaml.Marshal(toRows(txns))
	if err != nil {
		return fmt.Errorf("failed to write YAML: %w", err)
	}
	_, err = out.Write(data)
	return err
}
