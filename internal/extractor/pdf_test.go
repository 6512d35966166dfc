package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// placed is a string drawn at an absolute position in a test PDF.
type placed struct {
	x, y float64
	s    string
}

// buildPDF writes a minimal uncompressed PDF with one Helvetica font and
// one content stream per page.
func buildPDF(t *testing.T, pages ...[]placed) []byte {
	t.Helper()

	var objects []string
	// 1: catalog, 2: page tree, 3: font, then (page, content) pairs
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)
	for i, items := range pages {
		var content strings.Builder
		for _, it := range items {
			fmt.Fprintf(&content, "BT /F1 10 Tf 1 0 0 1 %.2f %.2f Tm (%s) Tj ET\n", it.x, it.y, it.s)
		}
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtractPages(t *testing.T) {
	data := buildPDF(t,
		[]placed{
			{50, 700, "10/27 Zelle From Adrian"},
			{300, 700, "500.00"},
			{50, 680, "10/28 STARBUCKS 4.50"},
		},
		[]placed{
			{50, 700, "10/29 SHELL OIL 40.00"},
		},
	)

	pages, err := New().ExtractPages(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Equal(t, "10/27 Zelle From Adrian 500.00\n10/28 STARBUCKS 4.50", pages[0])
	assert.Equal(t, "10/29 SHELL OIL 40.00", pages[1])
}

func TestJoinPages_KeepsPageOrder(t *testing.T) {
	data := buildPDF(t,
		[]placed{{50, 700, "first page"}},
		[]placed{{50, 700, "second page"}},
	)

	pages, err := New().ExtractPages(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "first page\nsecond page", JoinPages(pages))
	assert.Equal(t, "first page\n\nthird", JoinPages([]string{"first page", "", "third"}))
}

func TestExtractPages_MaxPages(t *testing.T) {
	data := buildPDF(t,
		[]placed{{50, 700, "one"}},
		[]placed{{50, 700, "two"}},
		[]placed{{50, 700, "three"}},
	)

	pages, err := New(WithMaxPages(2)).ExtractPages(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, pages)
}

func TestExtractPages_EmptyTextLayer(t *testing.T) {
	data := buildPDF(t, []placed{})

	pages, err := New().ExtractPages(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, pages)
	assert.True(t, LooksScanned(pages))
}

func TestExtractPages_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty buffer", nil},
		{"not a pdf", []byte("this is a plain text file, not a statement")},
		{"truncated pdf", []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, err := New().ExtractPages(context.Background(), tt.data)
			require.Error(t, err)
			assert.Nil(t, pages)
			assert.True(t, errors.Is(err, ErrPdfExtraction), "error should match ErrPdfExtraction: %v", err)

			var extractErr *ExtractionError
			assert.True(t, errors.As(err, &extractErr))
		})
	}
}

func TestExtractPages_CancelledContext(t *testing.T) {
	data := buildPDF(t, []placed{{50, 700, "page"}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().ExtractPages(ctx, data)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLooksScanned(t *testing.T) {
	assert.True(t, LooksScanned(nil))
	assert.True(t, LooksScanned([]string{"", "  \n "}))
	assert.False(t, LooksScanned([]string{"10/27 Zelle From Adrian Hernandez 500.00 9,372.34"}))
}
