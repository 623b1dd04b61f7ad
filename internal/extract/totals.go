package extract

import (
	"regexp"

	"fjacquet/ccris-extract/internal/models"
)

const moneyPattern = `(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d{2})?`

var (
	limitRe       = regexp.MustCompile(`LIMIT:\s*(` + moneyPattern + `)`)
	outstandingRe = regexp.MustCompile(`\bOUTSTANDING\b\s*[:\-]?\s*(` + moneyPattern + `)`)
)

// ExtractTotals searches the whole document text for the first total limit
// and total outstanding amounts. Anchors are matched case-sensitively so
// that prose such as "Outstanding" in other sections is ignored.
func ExtractTotals(text string) models.LedgerTotals {
	var totals models.LedgerTotals
	if m := limitRe.FindStringSubmatch(text); m != nil {
		totals.TotalLimit = models.ParseAmountPtr(m[1])
	}
	if m := outstandingRe.FindStringSubmatch(text); m != nil {
		totals.TotalOutstanding = models.ParseAmountPtr(m[1])
	}
	return totals
}
