package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"
)

// ErrPdfExtraction is matched by every error returned when a document
// cannot be opened or decoded.
var ErrPdfExtraction = errors.New("pdf extraction failed")

// ExtractionError wraps the underlying reason a PDF could not be read.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrPdfExtraction, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrPdfExtraction, e.Reason)
}

func (e *ExtractionError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrPdfExtraction, e.Err}
	}
	return []error{ErrPdfExtraction}
}

// Extractor turns PDF bytes into per-page reading-order text.
// It holds configuration only and is safe for concurrent use.
type Extractor struct {
	maxPages int
	logger   zerolog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxPages stops reading after n pages. Zero means no limit.
func WithMaxPages(n int) Option {
	return func(e *Extractor) {
		if n >= 0 {
			e.maxPages = n
		}
	}
}

// WithLogger sets the logger used for per-document diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Extractor) { e.logger = l }
}

// New returns an Extractor with the given options applied.
func New(opts ...Option) *Extractor {
	e := &Extractor{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// JoinPages returns the whole document as newline-joined page text.
func JoinPages(pages []string) string {
	return strings.Join(pages, "\n")
}

// ExtractPages reads every page of the PDF in data and reconstructs its
// text rows. The returned slice is indexed by page order. A document that
// has no text layer yields empty pages, not an error.
func (e *Extractor) ExtractPages(ctx context.Context, data []byte) (pages []string, err error) {
	// ledongthuc/pdf panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = &ExtractionError{Reason: "PDF library crashed", Err: fmt.Errorf("%v", r)}
		}
	}()

	if len(data) == 0 {
		return nil, &ExtractionError{Reason: "empty document"}
	}

	r, openErr := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if openErr != nil {
		return nil, &ExtractionError{Reason: "could not open PDF", Err: openErr}
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, &ExtractionError{Reason: "PDF has no pages"}
	}
	if e.maxPages > 0 && numPages > e.maxPages {
		e.logger.Warn().Int("pages", numPages).Int("max_pages", e.maxPages).Msg("truncating document")
		numPages = e.maxPages
	}

	pages = make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		runs, runErr := pageRuns(r.Page(i))
		if runErr != nil {
			return nil, &ExtractionError{Reason: fmt.Sprintf("could not read page %d", i), Err: runErr}
		}
		pages = append(pages, Reconstruct(runs))
	}

	e.logger.Debug().Int("pages", len(pages)).Int("chars", totalTextLen(pages)).Msg("extracted PDF text")
	return pages, nil
}

// pageRuns flattens the library's row view of a page back into positioned
// runs, keeping the float Y so that grouping can be redone with rounding.
// GetTextByRow has already ordered each row's words by X, so that is the
// order Reconstruct sees.
func pageRuns(page pdf.Page) ([]TextRun, error) {
	if page.V.IsNull() {
		return nil, nil
	}
	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, err
	}
	var runs []TextRun
	for _, row := range rows {
		for _, t := range row.Content {
			runs = append(runs, TextRun{X: t.X, Y: t.Y, S: t.S})
		}
	}
	return runs, nil
}

// minCharsPerPage is the threshold below which a document is assumed to be
// an image scan without a text layer.
const minCharsPerPage = 20

// LooksScanned reports whether the extracted pages carry so little text that
// the PDF is probably a scanned image.
func LooksScanned(pages []string) bool {
	if len(pages) == 0 {
		return true
	}
	printable := 0
	for _, page := range pages {
		for _, r := range page {
			if !unicode.IsSpace(r) && unicode.IsPrint(r) {
				printable++
			}
		}
	}
	return printable/len(pages) < minCharsPerPage
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}
