package pipeline

import (
	"strings"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

// MaxFileSize is the largest statement accepted for parsing (10 MiB).
const MaxFileSize = 10 * 1024 * 1024

// PDFMimeType is the only accepted upload type.
const PDFMimeType = "application/pdf"

// Validation messages shown to the uploader.
const (
	ErrMsgNotPDF   = "File must be a PDF"
	ErrMsgTooLarge = "File size must be less than 10MB"
)

// ValidateFile checks an upload before it is parsed. Problems are returned
// as data, never as an error.
func ValidateFile(f models.FileInfo) models.ValidationResult {
	mime := strings.ToLower(strings.TrimSpace(f.Type))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if mime != PDFMimeType {
		return models.ValidationResult{IsValid: false, Error: ErrMsgNotPDF}
	}
	if f.Size > MaxFileSize {
		return models.ValidationResult{IsValid: false, Error: ErrMsgTooLarge}
	}
	return models.ValidationResult{IsValid: true}
}
