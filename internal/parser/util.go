package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Token patterns shared by the rules.
const (
	// M/D with an optional 2- or 4-digit year
	dateToken = `\d{1,2}/\d{1,2}(?:/(?:\d{4}|\d{2}))?`
	// M/D only, as printed on credit card line items
	shortDateToken = `\d{1,2}/\d{1,2}`
	// 1,234.56 or 1234.56, exactly two fraction digits
	amountToken = `\$?(\d[\d,]*\.\d{2})`
)

// maxMerchantLen caps cleaned merchant text.
const maxMerchantLen = 100

// minMerchantLen is the shortest merchant text kept after cleaning.
const minMerchantLen = 3

// headerWords start lines that label statement columns or summaries
// rather than describe a purchase.
var headerWords = []string{
	"date", "transaction", "amount", "description", "merchant",
	"total", "balance", "payment", "fee",
}

var multiSpace = regexp.MustCompile(`\s+`)

// ParseAmount converts "1,234.56" or "$38.40" to a non-negative decimal.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00A0", "") // non-breaking space
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d.Abs(), nil
}

// CleanMerchant strips masking asterisks, collapses whitespace and caps
// the length of raw description text.
func CleanMerchant(s string) string {
	s = strings.ReplaceAll(s, "*", " ")
	s = multiSpace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > maxMerchantLen {
		s = strings.TrimSpace(string(r[:maxMerchantLen]))
	}
	return s
}

// IsHeaderLike reports whether merchant text case-insensitively starts
// with a column or summary word such as "Total" or "Balance". Plurals and
// longer forms ("Totals", "Fees Charged") match too.
func IsHeaderLike(merchant string) bool {
	lower := strings.ToLower(strings.TrimSpace(merchant))
	for _, word := range headerWords {
		if strings.HasPrefix(lower, word) {
			return true
		}
	}
	return false
}

// isHeaderWord reports whether merchant text is nothing but a header word.
func isHeaderWord(merchant string) bool {
	lower := strings.ToLower(strings.TrimSpace(merchant))
	for _, word := range headerWords {
		if lower == word || lower == word+"s" {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n]) + "..."
	}
	return s
}
