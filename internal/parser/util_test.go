package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"25.99", "25.99", false},
		{"1,234.56", "1234.56", false},
		{"$38.40", "38.40", false},
		{"-500.00", "500.00", false},
		{"$1,234,567.89", "1234567.89", false},
		{"0.00", "0.00", false},
		{" 25.99 ", "25.99", false},
		{"", "", true},
		{"abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.StringFixed(2))
		})
	}
}

func TestCleanMerchant(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"AMAZON MKTPL*NF2LF3661 Amzn.com/bill WA", "AMAZON MKTPL NF2LF3661 Amzn.com/bill WA"},
		{"  SQ *BLUE   BOTTLE  ", "SQ BLUE BOTTLE"},
		{"UBER\t*TRIP", "UBER TRIP"},
		{"***", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanMerchant(tt.input))
		})
	}
}

func TestCleanMerchant_CapsLength(t *testing.T) {
	long := strings.Repeat("ABCDEFGHIJ", 15)
	got := CleanMerchant(long)
	assert.Len(t, got, 100)
	assert.True(t, strings.HasPrefix(long, got))
}

func TestIsHeaderLike(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"Total", true},
		{"TOTAL FEES FOR THIS PERIOD", true},
		{"balance forward", true},
		{"Balance:", true},
		{"Date Description Amount", true},
		{"Transactions", true},
		{"Totals", true},
		{"Balances", true},
		{"Fees Charged", true},
		{"Payments and Credits", true},
		{"Payment - Thank You", true},
		{"Fee", true},
		{"Datadog Inc", false},
		{"Zelle From Adrian Hernandez", false},
		{"AMAZON PRIME", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsHeaderLike(tt.input))
		})
	}
}
