package parser

import (
	"regexp"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

// Rule is one line shape of the matcher cascade. Extract receives the
// submatches of Pattern and returns the raw fields; DateText is left empty
// by undated rules and filled in from the parser's clock.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Credit  bool
	Dated   bool
	Extract func(m []string) models.RawMatch
}

// Rule names, in cascade order.
const (
	RuleDatedBalance       = "dated_balance"
	RuleDatedCreditBalance = "dated_credit_balance"
	RuleDatedCredit        = "dated_credit"
	RuleShortDate          = "short_date"
	RuleFlexibleDate       = "flexible_date"
	RuleUndated            = "undated"
)

// Bank statement line with a running balance:
// 10/27 Zelle From Adrian Hernandez 500.00 9,372.34
var datedBalancePattern = regexp.MustCompile(
	`^(` + dateToken + `)\s+(.+?)\s+` + amountToken + `\s+-?` + amountToken + `$`,
)

// Payment or credit with a running balance:
// 10/10 PAYMENT RECEIVED -500.00 9,372.34
var datedCreditBalancePattern = regexp.MustCompile(
	`^(` + dateToken + `)\s+(.+?)\s+-` + amountToken + `\s+-?` + amountToken + `$`,
)

// Payment or credit without a balance column:
// 10/10 ONLINE PAYMENT THANK YOU -1,250.00
var datedCreditPattern = regexp.MustCompile(
	`^(` + dateToken + `)\s+(.+?)\s+-` + amountToken + `$`,
)

// Credit card line item, no year:
// 10/10 AMAZON MKTPL*NF2LF3661 Amzn.com/bill WA 38.40
var shortDatePattern = regexp.MustCompile(
	`^(` + shortDateToken + `)\s+(.+?)\s+` + amountToken + `$`,
)

// Any date form, no balance:
// 10/10/2025 GODADDY.COM 19.99
var flexibleDatePattern = regexp.MustCompile(
	`^(` + dateToken + `)\s+(.+?)\s+` + amountToken + `$`,
)

// Merchant words followed by an amount, no date at all:
// AMAZON PRIME 14.99
var undatedPattern = regexp.MustCompile(
	`^([A-Za-z].*?)\s+` + amountToken + `$`,
)

func datedExtract(m []string) models.RawMatch {
	return models.RawMatch{DateText: m[1], Description: m[2], AmountText: m[3]}
}

// DefaultRules returns the cascade ordered from the most to the least
// constrained shape. The first rule that matches a line wins, so a line
// with two trailing amounts is never read as description+amount.
func DefaultRules() []Rule {
	return []Rule{
		{Name: RuleDatedBalance, Pattern: datedBalancePattern, Dated: true, Extract: datedExtract},
		{Name: RuleDatedCreditBalance, Pattern: datedCreditBalancePattern, Dated: true, Credit: true, Extract: datedExtract},
		{Name: RuleDatedCredit, Pattern: datedCreditPattern, Dated: true, Credit: true, Extract: datedExtract},
		{Name: RuleShortDate, Pattern: shortDatePattern, Dated: true, Extract: datedExtract},
		{Name: RuleFlexibleDate, Pattern: flexibleDatePattern, Dated: true, Extract: datedExtract},
		{
			Name:    RuleUndated,
			Pattern: undatedPattern,
			Extract: func(m []string) models.RawMatch {
				return models.RawMatch{Description: m[1], AmountText: m[2]}
			},
		},
	}
}
