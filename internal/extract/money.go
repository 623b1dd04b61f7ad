package extract

import (
	"regexp"

	"github.com/shopspring/decimal"

	"fjacquet/ccris-extract/internal/models"
)

// moneyRe matches an integer part, comma grouped in threes or ungrouped,
// with an optional two digit fraction.
var moneyRe = regexp.MustCompile(`\b` + moneyPattern + `\b`)

// MoneyTokens returns every monetary token in s, in order.
func MoneyTokens(s string) []string {
	return moneyRe.FindAllString(s, -1)
}

// MoneyBeforeDate returns the monetary token closest to the first date on
// line, searching only the span before it.
func MoneyBeforeDate(line string) *decimal.Decimal {
	before, _, _, ok := SplitAtDate(line)
	if !ok {
		return nil
	}
	tokens := MoneyTokens(before)
	if len(tokens) == 0 {
		return nil
	}
	return models.ParseAmountPtr(tokens[len(tokens)-1])
}

// MoneyAfterDate returns every monetary token after the first date on line.
// Later dates in that span are blanked first so their digits are not read
// as amounts. Tokens that fail to parse are skipped.
func MoneyAfterDate(line string) []decimal.Decimal {
	_, _, after, ok := SplitAtDate(line)
	if !ok {
		return nil
	}
	after = dateRe.ReplaceAllString(after, " ")

	var values []decimal.Decimal
	for _, token := range MoneyTokens(after) {
		if d, ok := models.ParseAmount(token); ok {
			values = append(values, d)
		}
	}
	return values
}
