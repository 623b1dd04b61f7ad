// Package extract holds the field extractors that pull typed values out of
// ledger lines and normalised report text. Every extractor treats a missing
// value as a normal result: it returns nil or ok=false and never an error.
package extract

import "regexp"

var (
	dateRe      = regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`)
	dateTokenRe = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
)

// FindDate returns the first DD/MM/YYYY date on line.
func FindDate(line string) (string, bool) {
	loc := dateRe.FindStringIndex(line)
	if loc == nil {
		return "", false
	}
	return line[loc[0]:loc[1]], true
}

// SplitAtDate splits line around its first date. ok is false when the line
// carries no date, in which case before and after are empty.
func SplitAtDate(line string) (before, date, after string, ok bool) {
	loc := dateRe.FindStringIndex(line)
	if loc == nil {
		return "", "", "", false
	}
	return line[:loc[0]], line[loc[0]:loc[1]], line[loc[1]:], true
}

// IsDate reports whether token is exactly a DD/MM/YYYY date.
func IsDate(token string) bool {
	return dateTokenRe.MatchString(token)
}
