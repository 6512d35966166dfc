// Package normalizer canonicalizes statement dates and removes duplicate
// transactions produced by repeated page content.
package normalizer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

// NormalizeDate converts M/D, M/D/YY or M/D/YYYY into YYYY-MM-DD. A
// missing year is taken from now, a two-digit year is read as 20YY. Text
// that is not one of those shapes, or that names an impossible day such as
// 02/30, falls back to now's date.
func NormalizeDate(s string, now time.Time) string {
	fallback := now.Format("2006-01-02")

	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 && len(parts) != 3 {
		return fallback
	}

	month, err := atoiRange(parts[0], 1, 2)
	if err != nil {
		return fallback
	}
	day, err := atoiRange(parts[1], 1, 2)
	if err != nil {
		return fallback
	}

	year := now.Year()
	if len(parts) == 3 {
		switch y := parts[2]; len(y) {
		case 2:
			n, err := atoiRange(y, 2, 2)
			if err != nil {
				return fallback
			}
			year = 2000 + n
		case 4:
			n, err := atoiRange(y, 4, 4)
			if err != nil {
				return fallback
			}
			year = n
		default:
			return fallback
		}
	}

	if !validDate(year, month, day) {
		return fallback
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// atoiRange parses an all-digit string whose length is within [minLen, maxLen].
func atoiRange(s string, minLen, maxLen int) (int, error) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, fmt.Errorf("length %d out of range", len(s))
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit %q", r)
		}
	}
	return strconv.Atoi(s)
}

func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

// Dedupe drops every transaction whose date, merchant and amount equal an
// earlier one. Order of the survivors is preserved.
func Dedupe(txns []models.Transaction) []models.Transaction {
	seen := make(map[string]struct{}, len(txns))
	out := make([]models.Transaction, 0, len(txns))
	for _, t := range txns {
		key := t.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
