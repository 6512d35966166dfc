package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name     string
		info     models.FileInfo
		expected models.ValidationResult
	}{
		{"pdf", models.FileInfo{Type: "application/pdf", Size: 1000}, models.ValidationResult{IsValid: true}},
		{"pdf upper case", models.FileInfo{Type: "Application/PDF", Size: 1000}, models.ValidationResult{IsValid: true}},
		{"pdf with params", models.FileInfo{Type: "application/pdf; charset=binary", Size: 1}, models.ValidationResult{IsValid: true}},
		{"exactly max", models.FileInfo{Type: "application/pdf", Size: MaxFileSize}, models.ValidationResult{IsValid: true}},
		{"png", models.FileInfo{Type: "image/png", Size: 1000}, models.ValidationResult{Error: ErrMsgNotPDF}},
		{"empty type", models.FileInfo{Size: 1000}, models.ValidationResult{Error: ErrMsgNotPDF}},
		{"too large", models.FileInfo{Type: "application/pdf", Size: MaxFileSize + 1}, models.ValidationResult{Error: ErrMsgTooLarge}},
		{"wrong type and too large", models.FileInfo{Type: "text/plain", Size: MaxFileSize * 2}, models.ValidationResult{Error: ErrMsgNotPDF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateFile(tt.info))
		})
	}
}

func TestValidateFile_Message(t *testing.T) {
	res := ValidateFile(models.FileInfo{Type: "image/png", Size: 1000})
	assert.False(t, res.IsValid)
	assert.Equal(t, "File must be a PDF", res.Error)

	res = ValidateFile(models.FileInfo{Type: "application/pdf", Size: 11 * 1024 * 1024})
	assert.Equal(t, "File size must be less than 10MB", res.Error)
}
