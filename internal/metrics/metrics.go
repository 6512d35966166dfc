// Package metrics exposes Prometheus instruments for statement extraction.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

const namespace = "statement_extractor"

// Extraction outcomes recorded on ExtractionsTotal.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
	OutcomeDecode  = "decode_error"
)

// Metrics groups the collectors recorded by the API and CLI.
type Metrics struct {
	ExtractionsTotal  *prometheus.CounterVec
	TransactionsTotal *prometheus.CounterVec
	SkippedLinesTotal *prometheus.CounterVec
	ExtractDuration   prometheus.Histogram
	PagesPerDocument  prometheus.Histogram
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ExtractionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Statements processed, by outcome.",
		}, []string{"outcome"}),
		TransactionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Candidate transactions extracted, by type.",
		}, []string{"type"}),
		SkippedLinesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_lines_total",
			Help:      "Statement lines not turned into transactions, by reason.",
		}, []string{"reason"}),
		ExtractDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extract_duration_seconds",
			Help:      "Wall time of one statement extraction.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		PagesPerDocument: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pages_per_document",
			Help:      "Pages read per statement.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
	}

	for _, c := range []prometheus.Collector{
		m.ExtractionsTotal, m.TransactionsTotal, m.SkippedLinesTotal,
		m.ExtractDuration, m.PagesPerDocument,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveExtraction records one statement run. A nil receiver is a no-op
// so callers can run without metrics.
func (m *Metrics) ObserveExtraction(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ExtractionsTotal.WithLabelValues(outcome).Inc()
	m.ExtractDuration.Observe(elapsed.Seconds())
}

// ObserveResult records page, transaction and skipped-line counts of a
// successful run.
func (m *Metrics) ObserveResult(res *models.Result) {
	if m == nil || res == nil {
		return
	}
	m.PagesPerDocument.Observe(float64(res.PageCount))
	for _, t := range res.Transactions {
		m.TransactionsTotal.WithLabelValues(string(t.Type)).Inc()
	}
	for _, s := range res.Skipped {
		m.SkippedLinesTotal.WithLabelValues(s.Reason).Inc()
	}
}
