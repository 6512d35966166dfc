// Package pipeline composes page reconstruction, line parsing,
// classification and normalization into one call per statement.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/insightdelivered/statement-extractor/internal/classifier"
	"github.com/insightdelivered/statement-extractor/internal/extractor"
	"github.com/insightdelivered/statement-extractor/internal/models"
	"github.com/insightdelivered/statement-extractor/internal/normalizer"
	"github.com/insightdelivered/statement-extractor/internal/parser"
)

const tracerName = "github.com/insightdelivered/statement-extractor/internal/pipeline"

// PageExtractor turns PDF bytes into per-page text.
type PageExtractor interface {
	ExtractPages(ctx context.Context, data []byte) ([]string, error)
}

// Pipeline holds the stage implementations. It keeps no per-call state.
type Pipeline struct {
	extractor  PageExtractor
	parser     *parser.Parser
	classifier *classifier.Classifier
	now        func() time.Time
	logger     zerolog.Logger
	tracer     trace.Tracer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithExtractor replaces the PDF page extractor.
func WithExtractor(e PageExtractor) Option {
	return func(p *Pipeline) { p.extractor = e }
}

// WithParser replaces the line parser. Its clock is overridden by the
// pipeline clock.
func WithParser(ps *parser.Parser) Option {
	return func(p *Pipeline) { p.parser = ps }
}

// WithClassifier replaces the keyword classifier.
func WithClassifier(c *classifier.Classifier) Option {
	return func(p *Pipeline) { p.classifier = c }
}

// WithClock sets the time source for undated lines and date fallbacks.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New returns a Pipeline using the default stages.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		now:    time.Now,
		logger: zerolog.Nop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.extractor == nil {
		p.extractor = extractor.New(extractor.WithLogger(p.logger))
	}
	if p.classifier == nil {
		p.classifier = classifier.New()
	}
	var rules []parser.Rule
	if p.parser != nil {
		rules = p.parser.Rules()
	}
	p.parser = newParser(rules, p.now)
	return p
}

func newParser(rules []parser.Rule, now func() time.Time) *parser.Parser {
	opts := []parser.Option{parser.WithClock(now)}
	if rules != nil {
		opts = append(opts, parser.WithRules(rules))
	}
	return parser.New(opts...)
}

// Extract returns the candidate transactions found in a PDF statement.
// A document with no text layer yields an empty slice and no error; only a
// document that cannot be decoded is an error.
func (p *Pipeline) Extract(ctx context.Context, pdfBytes []byte) ([]models.Transaction, error) {
	res, err := p.Run(ctx, pdfBytes)
	if err != nil {
		return nil, err
	}
	return res.Transactions, nil
}

// Run is Extract plus the skipped-line report and document counts.
func (p *Pipeline) Run(ctx context.Context, pdfBytes []byte) (*models.Result, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.Run",
		trace.WithAttributes(attribute.Int("pdf.bytes", len(pdfBytes))))
	defer span.End()

	_, pageSpan := p.tracer.Start(ctx, "pipeline.extractPages")
	pages, err := p.extractor.ExtractPages(ctx, pdfBytes)
	if err != nil {
		pageSpan.RecordError(err)
		pageSpan.SetStatus(codes.Error, "extract pages")
		pageSpan.End()
		span.RecordError(err)
		span.SetStatus(codes.Error, "extract pages")
		p.logger.Warn().Err(err).Int("bytes", len(pdfBytes)).Msg("PDF extraction failed")
		return nil, err
	}
	pageSpan.SetAttributes(attribute.Int("pdf.pages", len(pages)))
	pageSpan.End()

	res := p.fromText(ctx, extractor.JoinPages(pages))
	res.PageCount = len(pages)
	res.PossiblyScanned = extractor.LooksScanned(pages)

	span.SetAttributes(
		attribute.Int("pdf.pages", res.PageCount),
		attribute.Int("transactions", len(res.Transactions)),
		attribute.Int("skipped_lines", len(res.Skipped)),
	)
	p.logger.Info().
		Int("pages", res.PageCount).
		Int("lines", res.LineCount).
		Int("transactions", len(res.Transactions)).
		Int("skipped", len(res.Skipped)).
		Bool("possibly_scanned", res.PossiblyScanned).
		Msg("statement parsed")
	return res, nil
}

// FromText runs parsing, classification and normalization over already
// reconstructed statement text.
func (p *Pipeline) FromText(text string) *models.Result {
	return p.fromText(context.Background(), text)
}

func (p *Pipeline) fromText(ctx context.Context, text string) *models.Result {
	_, span := p.tracer.Start(ctx, "pipeline.parse")
	defer span.End()

	now := p.now()
	matches, skipped := p.parser.Parse(text)

	txns := make([]models.Transaction, 0, len(matches))
	for _, m := range matches {
		amount, err := parser.ParseAmount(m.AmountText)
		if err != nil {
			// the amount token regex makes this unreachable for default rules
			skipped = append(skipped, models.SkippedLine{Line: m.Line, Text: m.Description, Reason: models.SkipNoMatch, Rule: m.Rule})
			continue
		}
		c := p.classifier.Classify(m.Description, m.IsCredit)
		txns = append(txns, models.Transaction{
			TransactionDate: normalizer.NormalizeDate(m.DateText, now),
			Merchant:        m.Description,
			Amount:          amount,
			Type:            c.Type,
			Category:        c.Category,
			Source:          models.SourcePDFUpload,
			Description:     "",
		})
	}

	before := len(txns)
	txns = normalizer.Dedupe(txns)
	if dropped := before - len(txns); dropped > 0 {
		p.logger.Debug().Int("duplicates", dropped).Msg("removed duplicate transactions")
	}

	span.SetAttributes(attribute.Int("matches", len(matches)), attribute.Int("transactions", len(txns)))
	return &models.Result{
		Transactions: txns,
		Skipped:      skipped,
		LineCount:    countLines(text),
	}
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
