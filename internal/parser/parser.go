package parser

import (
	"strings"
	"time"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

// minLineLen is the shortest trimmed line that can carry a transaction.
const minLineLen = 5

// Parser runs the rule cascade over reconstructed statement text.
type Parser struct {
	rules []Rule
	now   func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithRules replaces the default cascade. Order is preserved.
func WithRules(rules []Rule) Option {
	return func(p *Parser) { p.rules = rules }
}

// WithClock sets the time source used to date undated lines.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// New returns a Parser using DefaultRules and the wall clock.
func New(opts ...Option) *Parser {
	p := &Parser{rules: DefaultRules(), now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Rules returns the cascade in evaluation order.
func (p *Parser) Rules() []Rule {
	return p.rules
}

// Parse matches every line of text against the cascade and returns the
// accepted lines in document order, plus a report of the lines it skipped.
func (p *Parser) Parse(text string) ([]models.RawMatch, []models.SkippedLine) {
	var matches []models.RawMatch
	var skipped []models.SkippedLine

	for i, raw := range strings.Split(text, "\n") {
		lineNum := i + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if len([]rune(line)) < minLineLen {
			skipped = append(skipped, skip(lineNum, line, models.SkipTooShort, ""))
			continue
		}

		m, rule, ok := p.MatchLine(line)
		if !ok {
			skipped = append(skipped, skip(lineNum, line, models.SkipNoMatch, ""))
			continue
		}

		m.Description = CleanMerchant(m.Description)
		if len([]rune(m.Description)) < minMerchantLen {
			skipped = append(skipped, skip(lineNum, line, models.SkipShortMerchant, rule.Name))
			continue
		}
		if rejectHeader(m) {
			skipped = append(skipped, skip(lineNum, line, models.SkipHeader, rule.Name))
			continue
		}

		m.Line = lineNum
		matches = append(matches, m)
	}

	return matches, skipped
}

// MatchLine returns the raw fields of the first rule matching line.
// The description is returned uncleaned.
func (p *Parser) MatchLine(line string) (models.RawMatch, Rule, bool) {
	for _, rule := range p.rules {
		sub := rule.Pattern.FindStringSubmatch(line)
		if sub == nil {
			continue
		}
		m := rule.Extract(sub)
		m.Rule = rule.Name
		m.IsCredit = rule.Credit
		if !rule.Dated {
			m.DateText = p.now().Format("01/02")
		}
		return m, rule, true
	}
	return models.RawMatch{}, Rule{}, false
}

// rejectHeader applies the header-word filter. Signed credit lines such as
// "PAYMENT RECEIVED -500.00" are only dropped when the text is nothing but
// a header word; every other line is dropped when it starts with one.
func rejectHeader(m models.RawMatch) bool {
	if m.IsCredit {
		return isHeaderWord(m.Description)
	}
	return IsHeaderLike(m.Description)
}

func skip(lineNum int, line, reason, rule string) models.SkippedLine {
	return models.SkippedLine{
		Line:   lineNum,
		Text:   truncate(line, 120),
		Reason: reason,
		Rule:   rule,
	}
}
