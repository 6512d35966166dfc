package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// TransactionType is either revenue or expense. There is no transfer variant.
type TransactionType string

const (
	TypeRevenue TransactionType = "revenue"
	TypeExpense TransactionType = "expense"
)

// SourcePDFUpload tags records extracted from an uploaded statement,
// as opposed to manually entered ones.
const SourcePDFUpload = "pdf_upload"

// Transaction is a candidate transaction extracted from a statement,
// awaiting human review before it is stored.
type Transaction struct {
	TransactionDate string          `json:"transaction_date"`
	Merchant        string          `json:"merchant"`
	Amount          decimal.Decimal `json:"amount"`
	Type            TransactionType `json:"type"`
	Category        string          `json:"category"`
	Source          string          `json:"source"`
	Description     string          `json:"description"`
}

// MarshalJSON renders the amount as a bare number with two fraction digits
// (38.40, not "38.4").
func (t Transaction) MarshalJSON() ([]byte, error) {
	type alias Transaction
	return json.Marshal(struct {
		alias
		Amount json.Number `json:"amount"`
	}{
		alias:  alias(t),
		Amount: json.Number(t.Amount.StringFixed(2)),
	})
}

// DedupKey identifies a transaction for duplicate removal.
func (t Transaction) DedupKey() string {
	return t.TransactionDate + "\x00" + t.Merchant + "\x00" + t.Amount.StringFixed(2)
}

// RawMatch is one statement line accepted by the line parser, before
// classification and normalization.
type RawMatch struct {
	DateText    string
	Description string
	AmountText  string
	IsCredit    bool
	Rule        string // name of the rule that matched
	Line        int    // 1-based line number in the document text
}

// Skip reasons reported in SkippedLine.Reason.
const (
	SkipTooShort      = "too_short"
	SkipNoMatch       = "no_match"
	SkipHeader        = "header"
	SkipShortMerchant = "short_merchant"
)

// SkippedLine captures a line the parser did not turn into a transaction.
type SkippedLine struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
	Rule   string `json:"rule,omitempty"`
}

// Result is the full output of one pipeline run.
type Result struct {
	Transactions []Transaction `json:"transactions"`
	Skipped      []SkippedLine `json:"skipped,omitempty"`
	PageCount    int           `json:"pageCount"`
	LineCount    int           `json:"lineCount"`

	// PossiblyScanned is set when the pages carry almost no text
	PossiblyScanned bool `json:"possiblyScanned"`
}

// FileInfo describes an upload before it is parsed.
type FileInfo struct {
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// ValidationResult is the outcome of a pre-flight upload check.
type ValidationResult struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error"`
}

// MarshalJSON writes an empty Error as null.
func (v ValidationResult) MarshalJSON() ([]byte, error) {
	var msg *string
	if v.Error != "" {
		msg = &v.Error
	}
	return json.Marshal(struct {
		IsValid bool    `json:"isValid"`
		Error   *string `json:"error"`
	}{v.IsValid, msg})
}
