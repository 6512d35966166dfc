package writer

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{
			TransactionDate: "2025-10-10",
			Merchant:        "AMAZON MKTPL NF2LF3661 Amzn.com/bill WA",
			Amount:          decimal.RequireFromString("38.4"),
			Type:            models.TypeExpense,
			Category:        "Office Supplies",
			Source:          models.SourcePDFUpload,
		},
		{
			TransactionDate: "2025-10-27",
			Merchant:        "Zelle From Adrian Hernandez, Ref 9",
			Amount:          decimal.RequireFromString("500"),
			Type:            models.TypeRevenue,
			Source:          models.SourcePDFUpload,
		},
	}
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	require.NoError(t, w.Write(&buf, sampleTransactions()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,merchant,amount,type,category,source,description", lines[0])
	assert.Equal(t, "2025-10-10,AMAZON MKTPL NF2LF3661 Amzn.com/bill WA,38.40,expense,Office Supplies,pdf_upload,", lines[1])
	// merchant contains a comma and is quoted
	assert.Equal(t, `2025-10-27,"Zelle From Adrian Hernandez, Ref 9",500.00,revenue,,pdf_upload,`, lines[2])
}

func TestCSVWriter_WriteNoHeader(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: false}
	require.NoError(t, w.Write(&buf, sampleTransactions()[:1]))

	out := buf.String()
	assert.NotContains(t, out, "date,merchant")
	assert.Contains(t, out, "38.40")
}

func TestCSVWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CSVWriter{IncludeHeader: true}).Write(&buf, nil))
	assert.Equal(t, "date,merchant,amount,type,category,source,description\n", buf.String())
}

func TestJSONWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONWriter{}).Write(&buf, sampleTransactions()))

	assert.Contains(t, buf.String(), `"amount":38.40`)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "2025-10-27", decoded[1]["transaction_date"])
	assert.Equal(t, "revenue", decoded[1]["type"])
	assert.Equal(t, "", decoded[1]["category"])
}

func TestJSONWriter_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONWriter{}).Write(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAMLWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&YAMLWriter{}).Write(&buf, sampleTransactions()))

	var decoded []map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "38.40", decoded[0]["amount"])
	assert.Equal(t, "Office Supplies", decoded[0]["category"])
	assert.Equal(t, "2025-10-27", decoded[1]["transaction_date"])
}

func TestXLSXWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&XLSXWriter{}).Write(&buf, sampleTransactions()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DefaultSheetName}, f.GetSheetList())

	merchant, err := f.GetCellValue(DefaultSheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "AMAZON MKTPL NF2LF3661 Amzn.com/bill WA", merchant)

	header, err := f.GetCellValue(DefaultSheetName, "C1")
	require.NoError(t, err)
	assert.Equal(t, "amount", header)

	raw, err := f.GetCellValue(DefaultSheetName, "C3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	amount, err := strconv.ParseFloat(raw, 64)
	require.NoError(t, err)
	assert.Equal(t, 500.0, amount)
}

func TestForFormat(t *testing.T) {
	for _, name := range []string{"csv", "JSON", "yaml", "yml", "xlsx"} {
		w, err := ForFormat(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, w.Extension())
	}

	_, err := ForFormat("pdf")
	assert.ErrorContains(t, err, "unknown output format")
	assert.Equal(t, []string{"csv", "json", "xlsx", "yaml"}, Formats())
}

func TestWriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteToFile(path, &CSVWriter{IncludeHeader: true}, sampleTransactions()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "date,merchant,amount"))

	err = WriteToFile(filepath.Join(t.TempDir(), "missing", "out.csv"), &CSVWriter{}, nil)
	assert.Error(t, err)
}
