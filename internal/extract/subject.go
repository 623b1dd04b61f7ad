package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/ccris-extract/internal/models"
	"fjacquet/ccris-extract/internal/section"
)

// Extractors for the per-subject fields of the report summary. Each returns
// one value per subject block found, in document order, and an empty slice
// when the document has none.

const (
	subjectHeader   = "PARTICULARS OF THE SUBJECT PROVIDED BY YOU"
	nameLabel       = "Name Of Subject"
	tradeStart      = "TRADE / CREDIT REFERENCE (CR)"
	tradeEnd        = "legend"
	liabilitiesHead = "SUMMARY OF POTENTIAL & CURRENT LIABILITIES"
	litigationHead  = "SECTION 3: LITIGATION INFORMATION"
	// TradeCreditThreshold is the Amount Due above which a trade reference
	// counts.
	TradeCreditThreshold = 10000
)

// Litigation sub-block labels.
const (
	LabelCaseWithdrawnSettled = "CASE WITHDRAWN / SETTLED"
	LabelOtherKnownSuits      = "OTHER KNOWN LEGAL SUITS WITH LIMITED DETAILS - SUBJECT AS DEFENDANT"
	LabelSuitsAsDefendant     = "LEGAL SUITS - SUBJECT AS DEFENDANT"
)

var (
	subjectHeaderRe   = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(subjectHeader))
	iScoreRe          = regexp.MustCompile(`(?i)\bi-SCORE\b\s*([0-9]{3})\b`)
	legalSuitsTotalRe = regexp.MustCompile(`(?is)LEGAL\s+SUITS.*?Total\s*:\s*([0-9]+)`)
	searchCountRe     = regexp.MustCompile(`(?is)FINANCIAL\s+RELATED\s+SEARCH\s+COUNT\s*:?\s*(.*?)COMMERCIAL\s+RELATED\s+SEARCH\s+COUNT`)
	yearRowRe         = regexp.MustCompile(`(?m)^\s*(20\d{2})\b.*$`)
	digitsRe          = regexp.MustCompile(`\d+`)
	amountDueRe       = regexp.MustCompile(`(?i)amount\s+due\s*:?\s*([0-9,]+(?:\.\d{2})?)`)
	liabilitiesRe     = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(liabilitiesHead))
	headingLineRe     = regexp.MustCompile(`\n[A-Z][A-Z &/\-]{5,}\n`)
	borrowerRe        = regexp.MustCompile(`(?i)\bBorrower\b`)
	litigationRe      = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(litigationHead))
	litigationEndRe   = regexp.MustCompile(`(?i)SECTION|PARTICULARS OF THE SUBJECT`)
	defendantNameRe   = regexp.MustCompile(`(?i)\bDefendant Name\b`)
	incorporationRe   = labelPattern("Incorporation Date", dateValue)
	orderDateRes      = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Order Date: \s*[:\-]?\s*([0-9]{1,2}\s+[A-Za-z]{3}\s+[0-9]{4})`),
		regexp.MustCompile(`(?i)Order Date: \s*[:\-]?\s*([0-9]{4}-[0-9]{1,2}-[0-9]{1,2})`),
	}
)

// SubjectNames returns the first "Name Of Subject" of every subject block.
// When the document has no subject block header, every name in the
// document is returned.
func SubjectNames(text string) []string {
	blocks := section.BlocksBetweenStarts(text, subjectHeaderRe)
	if len(blocks) == 0 {
		return LineAfterLabelAll(nameLabel, text)
	}
	var names []string
	for _, block := range blocks {
		if found := LineAfterLabelAll(nameLabel, block); len(found) > 0 {
			names = append(names, found[0])
		}
	}
	return names
}

// IScores returns every three digit i-SCORE.
func IScores(text string) []*int {
	var scores []*int
	for _, m := range iScoreRe.FindAllStringSubmatch(text, -1) {
		scores = append(scores, models.ParseCountPtr(m[1]))
	}
	return scores
}

// LegalSuits returns the summary "Legal Suits" counts, falling back to the
// litigation section totals when the summary label is absent.
func LegalSuits(text string) []*int {
	if values := IntAfterLabelAll("Legal Suits", text); len(values) > 0 {
		return values
	}
	var values []*int
	for _, m := range legalSuitsTotalRe.FindAllStringSubmatch(text, -1) {
		values = append(values, models.ParseCountPtr(m[1]))
	}
	return values
}

// FinancialSearchCounts returns, for every FINANCIAL RELATED SEARCH COUNT
// table, the highest monthly count of its latest year row. Rows read
// "Year Total Jan .. Dec".
func FinancialSearchCounts(text string) []*int {
	var values []*int
	for _, block := range searchCountRe.FindAllStringSubmatch(text, -1) {
		latestYear := -1
		var latest *int
		for _, row := range yearRowRe.FindAllStringSubmatch(block[1], -1) {
			year, _ := strconv.Atoi(row[1])
			var nums []int
			for _, tok := range digitsRe.FindAllString(row[0], -1) {
				n, _ := strconv.Atoi(tok)
				nums = append(nums, n)
			}
			var highest *int
			if len(nums) > 2 {
				months := nums[2:]
				if len(months) > 12 {
					months = months[:12]
				}
				h := months[0]
				for _, n := range months[1:] {
					if n > h {
						h = n
					}
				}
				highest = &h
			}
			if year > latestYear {
				latestYear = year
				latest = highest
			}
		}
		values = append(values, latest)
	}
	return values
}

// TradeCreditCounts returns, for every trade/credit reference section, the
// number of Amount Due values above TradeCreditThreshold, or nil when
// there are none.
func TradeCreditCounts(lines models.LineStream) []*int {
	threshold := decimal.NewFromInt(TradeCreditThreshold)
	var values []*int
	for _, sec := range section.LocateAll(lines, tradeStart, tradeEnd) {
		count := 0
		for _, amount := range AmountsDue(sec.Lines) {
			if amount.GreaterThan(threshold) {
				count++
			}
		}
		if count == 0 {
			values = append(values, nil)
			continue
		}
		values = append(values, &count)
	}
	return values
}

// AmountsDue returns every Amount Due value in lines. When the label has no
// value on its own line, the label line and the two lines after it are
// searched and the last amount of the first line carrying one is taken.
func AmountsDue(lines []string) []decimal.Decimal {
	var amounts []decimal.Decimal
	for i, line := range lines {
		if m := amountDueRe.FindStringSubmatch(line); m != nil {
			if d, ok := models.ParseAmount(m[1]); ok {
				amounts = append(amounts, d)
			}
			continue
		}
		if !strings.Contains(strings.ToLower(line), "amount due") {
			continue
		}
		for offset := 0; offset < 3 && i+offset < len(lines); offset++ {
			tokens := MoneyTokens(lines[i+offset])
			if len(tokens) == 0 {
				continue
			}
			if d, ok := models.ParseAmount(tokens[len(tokens)-1]); ok {
				amounts = append(amounts, d)
				break
			}
		}
	}
	return amounts
}

// Liability is the borrower row of a liabilities summary.
type Liability struct {
	Outstanding *decimal.Decimal
	TotalLimit  *decimal.Decimal
}

// BorrowerLiabilities returns the first Borrower row of every liabilities
// summary block. Without such a block, each "Outstanding ... Total Limit"
// header is followed for up to 50 lines instead.
func BorrowerLiabilities(text string) []Liability {
	var out []Liability
	blocks := section.Blocks(text, liabilitiesRe, headingLineRe)
	if len(blocks) > 0 {
		for _, block := range blocks {
			lines := nonEmptyLines(block)
			search := lines
			if idx := liabilityHeader(lines); idx >= 0 {
				search = lines[idx+1:]
			}
			if l, ok := firstBorrower(search); ok {
				out = append(out, l)
			}
		}
		return out
	}

	lines := nonEmptyLines(text)
	for i, line := range lines {
		if !isLiabilityHeader(line) {
			continue
		}
		end := i + 50
		if end > len(lines) {
			end = len(lines)
		}
		if l, ok := firstBorrower(lines[i+1 : end]); ok {
			out = append(out, l)
		}
	}
	return out
}

func isLiabilityHeader(line string) bool {
	return strings.Contains(line, "Outstanding") && strings.Contains(line, "Total Limit")
}

func liabilityHeader(lines []string) int {
	for i, line := range lines {
		if isLiabilityHeader(line) {
			return i
		}
	}
	return -1
}

// firstBorrower reads the first two amounts of the first Borrower row that
// has them. The row may wrap onto the following line.
func firstBorrower(lines []string) (Liability, bool) {
	for i, line := range lines {
		if !borrowerRe.MatchString(line) {
			continue
		}
		combined := line
		if i+1 < len(lines) {
			combined += " " + lines[i+1]
		}
		amounts := MoneyTokens(combined)
		if len(amounts) >= 2 {
			return Liability{
				Outstanding: models.ParseAmountPtr(amounts[0]),
				TotalLimit:  models.ParseAmountPtr(amounts[1]),
			}, true
		}
	}
	return Liability{}, false
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// LitigationFlags records whether each litigation sub-block names a
// defendant. Values are "Yes" or "No".
type LitigationFlags struct {
	CaseWithdrawnSettled string
	OtherKnownLegalSuits string
	LegalSuitsDefendant  string
}

// NoLitigation is the flag set of a subject without litigation records.
var NoLitigation = LitigationFlags{"No", "No", "No"}

// Litigation returns the defendant flags of every litigation section.
func Litigation(text string) []LitigationFlags {
	var out []LitigationFlags
	for _, block := range section.Blocks(text, litigationRe, litigationEndRe) {
		out = append(out, LitigationFlags{
			CaseWithdrawnSettled: yesNo(namesDefendant(block, LabelCaseWithdrawnSettled)),
			OtherKnownLegalSuits: yesNo(namesDefendant(block, LabelOtherKnownSuits)),
			LegalSuitsDefendant:  yesNo(namesDefendant(block, LabelSuitsAsDefendant)),
		})
	}
	return out
}

var litigationLabelRes = map[string]*regexp.Regexp{
	LabelCaseWithdrawnSettled: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(LabelCaseWithdrawnSettled)),
	LabelOtherKnownSuits:      regexp.MustCompile(`(?i)` + regexp.QuoteMeta(LabelOtherKnownSuits)),
	LabelSuitsAsDefendant:     regexp.MustCompile(`(?i)` + regexp.QuoteMeta(LabelSuitsAsDefendant)),
}

// namesDefendant reports whether the sub-block after label, up to the next
// other litigation label, mentions a defendant name.
func namesDefendant(block, label string) bool {
	loc := litigationLabelRes[label].FindStringIndex(block)
	if loc == nil {
		return false
	}
	body := block[loc[1]:]
	end := len(body)
	for other, re := range litigationLabelRes {
		if other == label {
			continue
		}
		if l := re.FindStringIndex(body); l != nil && l[0] < end {
			end = l[0]
		}
	}
	return defendantNameRe.MatchString(body[:end])
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// IncorporationYear returns the year of the incorporation date.
func IncorporationYear(text string) *int {
	m := incorporationRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	date := strings.TrimSpace(m[1])
	return models.ParseCountPtr(date[len(date)-4:])
}

// OrderDate returns the report order date, written either "DD Mon YYYY" or
// "YYYY-MM-DD".
func OrderDate(text string) *string {
	for _, re := range orderDateRes {
		if m := re.FindStringSubmatch(text); m != nil {
			v := strings.TrimSpace(m[1])
			return &v
		}
	}
	return nil
}
