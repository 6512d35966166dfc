package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

// DefaultSheetName is the worksheet holding exported transactions.
const DefaultSheetName = "Transactions"

// XLSXWriter writes transactions to a single Excel worksheet. Amounts are
// numeric cells formatted with two decimals.
type XLSXWriter struct {
	SheetName string
}

// Extension implements Writer.
func (w *XLSXWriter) Extension() string { return ".xlsx" }

func (w *XLSXWriter) Write(out io.Writer, txns []models.Transaction) error {
	sheet := w.SheetName
	if sheet == "" {
		sheet = DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, t := range txns {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		amount, _ := t.Amount.Round(2).Float64()
		values := []interface{}{
			t.TransactionDate, t.Merchant, amount, string(t.Type),
			t.Category, t.Source, t.Description,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	// built-in number format 2 is "0.00"
	style, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}
	if len(txns) > 0 {
		last, err := excelize.CoordinatesToCellName(3, len(txns)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "C2", last, style); err != nil {
			return fmt.Errorf("failed to style amounts: %w", err)
		}
	}
	if err := f.SetColWidth(sheet, "B", "B", 48); err != nil {
		return err
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write XLSX: %w", err)
	}
	return nil
}
