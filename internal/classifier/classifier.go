// Package classifier decides whether a parsed statement line is revenue or
// expense and assigns expense lines a best-guess category.
package classifier

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"
	"github.com/goccy/go-yaml"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

// ErrInvalidTables is returned when keyword tables cannot be used.
var ErrInvalidTables = errors.New("invalid classification tables")

// Classification is the outcome for one transaction.
type Classification struct {
	Type     models.TransactionType
	Category string
}

// Classifier matches merchant text against the revenue keywords and the
// ordered category table. All keywords are compiled into Aho-Corasick
// automata so each merchant is scanned once per table.
type Classifier struct {
	revenue    *ahocorasick.Matcher
	categories *ahocorasick.Matcher
	// ruleIndex maps a flattened keyword index to its table position
	ruleIndex []int
	rules     []CategoryRule

	// Matcher.Match updates internal counters and is not safe for
	// concurrent calls.
	mu sync.Mutex
}

// New returns a Classifier built from the default tables.
func New() *Classifier {
	c, err := NewWithTables(DefaultRevenueKeywords(), DefaultCategoryRules())
	if err != nil {
		panic(err)
	}
	return c
}

// NewWithTables builds a Classifier from custom tables. Category order is
// kept: the first rule in the slice wins when several match.
func NewWithTables(revenue []string, rules []CategoryRule) (*Classifier, error) {
	revenuePatterns := make([]string, 0, len(revenue))
	for _, kw := range revenue {
		if kw = normalizeKeyword(kw); kw != "" {
			revenuePatterns = append(revenuePatterns, kw)
		}
	}
	if len(revenuePatterns) == 0 {
		return nil, fmt.Errorf("%w: no revenue keywords", ErrInvalidTables)
	}

	var categoryPatterns []string
	var ruleIndex []int
	for i, rule := range rules {
		if strings.TrimSpace(rule.Category) == "" {
			return nil, fmt.Errorf("%w: rule %d has no category", ErrInvalidTables, i)
		}
		for _, kw := range rule.Keywords {
			if kw = normalizeKeyword(kw); kw != "" {
				categoryPatterns = append(categoryPatterns, kw)
				ruleIndex = append(ruleIndex, i)
			}
		}
	}

	c := &Classifier{
		revenue:   ahocorasick.NewStringMatcher(revenuePatterns),
		ruleIndex: ruleIndex,
		rules:     rules,
	}
	if len(categoryPatterns) > 0 {
		c.categories = ahocorasick.NewStringMatcher(categoryPatterns)
	}
	return c, nil
}

// Classify returns revenue when the line was a signed credit or the
// merchant mentions incoming funds; otherwise expense with the category
// of the first matching rule. Revenue never carries a category.
func (c *Classifier) Classify(merchant string, isCredit bool) Classification {
	upper := []byte(strings.ToUpper(merchant))

	c.mu.Lock()
	defer c.mu.Unlock()

	if isCredit || len(c.revenue.Match(upper)) > 0 {
		return Classification{Type: models.TypeRevenue}
	}
	return Classification{Type: models.TypeExpense, Category: c.categoryLocked(upper)}
}

// Category returns the expense category for merchant, or "" if no rule
// matches.
func (c *Classifier) Category(merchant string) string {
	upper := []byte(strings.ToUpper(merchant))
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.categoryLocked(upper)
}

func (c *Classifier) categoryLocked(upper []byte) string {
	if c.categories == nil {
		return ""
	}
	best := -1
	for _, hit := range c.categories.Match(upper) {
		if hit < 0 || hit >= len(c.ruleIndex) {
			continue
		}
		if idx := c.ruleIndex[hit]; best < 0 || idx < best {
			best = idx
		}
	}
	if best < 0 {
		return ""
	}
	return c.rules[best].Category
}

// Rules returns the category table in priority order.
func (c *Classifier) Rules() []CategoryRule {
	return c.rules
}

// Tables is the on-disk shape of a keyword table override.
type Tables struct {
	RevenueKeywords []string       `yaml:"revenue_keywords"`
	Categories      []CategoryRule `yaml:"categories"`
}

// LoadTables reads a YAML override file. Omitted sections fall back to the
// defaults.
func LoadTables(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables %q: %w", path, err)
	}
	return ParseTables(data)
}

// ParseTables builds a Classifier from YAML table content.
func ParseTables(data []byte) (*Classifier, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTables, err)
	}
	if len(t.RevenueKeywords) == 0 {
		t.RevenueKeywords = DefaultRevenueKeywords()
	}
	if len(t.Categories) == 0 {
		t.Categories = DefaultCategoryRules()
	}
	return NewWithTables(t.RevenueKeywords, t.Categories)
}

func normalizeKeyword(kw string) string {
	return strings.ToUpper(strings.TrimSpace(kw))
}
