// Package knockout maps a report onto the human-readable row labels of the
// underwriting knock-out matrix. Labels must match the template exactly;
// the spreadsheet collaborator looks rows up by normalised label.
package knockout

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/ccris-extract/internal/models"
)

// Row labels. Per-subject and per-section rows append " 2", " 3", ... for
// every column after the first.
const (
	LabelAgencyScore          = "Scoring by CRA Agency (Issuer's Credit Agency Score)"
	LabelScoreEquivalent      = "Scoring by CRA Agency (Credit Score Equivalent)"
	LabelYearsInOperation     = "Business has been in operations for at least THREE (3) years (Including upgrade from Sole Proprietorship and Partnership under similar business activity)"
	LabelCompanyStatus        = "Company Status (Existing Only)"
	LabelExemptPrivate        = "Exempt Private Company"
	LabelWindingUp            = "Winding Up / Bankruptcy Proceedings Record"
	LabelCreditAppsApproved   = "Credit Applications Approved for Last 12 months (per primary CRA report)"
	LabelCreditAppsPending    = "Credit Applications Pending (per primary CRA report)"
	LabelLegalActionBanking   = "Legal Action taken (from Banking) (per primary CRA report)"
	LabelExistingFacilities   = "Existing No. of Facility (from Banking) (per primary CRA report)"
	LabelLegalSuits           = "Legal Suits (per primary CRA report) (either as Plaintiff or Defendant)"
	LabelTradeCredit          = "Trade / Credit Reference (per primary CRA report)"
	LabelLegalCaseStatus      = "Legal Case - Status (per primary CRA report)"
	LabelTotalEnquiries       = "Total Enquiries for Last 12 months (per primary CRA report) (Financial Related Search Count)"
	LabelSpecialAttention     = "Special Attention Account (per primary CRA report)"
	LabelLiabilityOutstanding = "Summary of Total Liabilities (Outstanding) (per primary CRA report)"
	LabelLiabilityLimit       = "Summary of Total Liabilities (Total Limit) (per primary CRA report)"
	LabelOverdraftCompliance  = "Overdraft facility outstanding amount does not exceed the approved overdraft limit as per CCRIS (based on the primary CRA report)"
	LabelBankingWithinLimit   = "Issuer's Total Banking Outstanding Facilities does not exceed the Total Banking Limit (per primary CRA report)"
	LabelNonBankWithinLimit   = "Issuer's Total Non- Bank Lender Outstanding Facilities does not exceed the Total Non-Bank Lender Limit (per primary CRA report)"
	LabelCCRISConduct         = "CCRIS Loan Account - Conduct Count (per primary CRA report)"
	LabelCCRISLegalStatus     = "CCRIS Loan Account - Legal Status (per primary CRA report)"
	LabelNLCIConduct          = "Non-Bank Lender Credit Information (NLCI)- Conduct Count (per primary CRA report)"
	LabelNLCILegalStatus      = "Non-Bank Lender Credit Information (NLCI) - Legal Status (per primary CRA report)"
	LabelTotalLimit           = "Total Limit"
	LabelTotalOutstanding     = "Total Outstanding Balance"
)

// Item is one labelled matrix value. Value is a string or nil.
type Item struct {
	Label string `csv:"label" json:"label"`
	Value any    `csv:"value" json:"value"`
}

// Matrix is the ordered knock-out view of a report.
type Matrix []Item

// Get returns the value for an exact label.
func (m Matrix) Get(label string) (any, bool) {
	for _, item := range m {
		if item.Label == label {
			return item.Value, true
		}
	}
	return nil, false
}

// Column returns label with the column suffix for index i.
func Column(label string, i int) string {
	if i == 0 {
		return label
	}
	return fmt.Sprintf("%s %d", label, i+1)
}

type grade struct {
	lower, upper int
	grade        string
}

var scoreGrades = []grade{
	{742, math.MaxInt, "A"}, {701, 740, "A"}, {661, 700, "B"},
	{621, 660, "B"}, {581, 620, "C"}, {541, 580, "C"},
	{501, 540, "D"}, {461, 500, "E"}, {421, 460, "F"}, {0, 420, "F"},
}

// ScoreEquivalent converts an i-SCORE to its letter grade. Scores that fall
// in no range (741, negatives) have no grade.
func ScoreEquivalent(score *int) (string, bool) {
	if score == nil {
		return "", false
	}
	for _, g := range scoreGrades {
		if *score >= g.lower && *score <= g.upper {
			return g.grade, true
		}
	}
	return "", false
}

// Build maps r onto the knock-out rows.
func Build(r *models.Report) Matrix {
	b := &builder{}
	subjects := r.Summary.Subjects
	if len(subjects) == 0 {
		subjects = []models.Subject{{}}
	}

	for i := range subjects {
		score := subjects[i].IScore
		b.add(Column(LabelAgencyScore, i), intText(score))
		if g, ok := ScoreEquivalent(score); ok {
			b.add(Column(LabelScoreEquivalent, i), g)
		} else {
			b.add(Column(LabelScoreEquivalent, i), nil)
		}
	}

	b.add(LabelYearsInOperation, intText(r.Summary.IncorporationYear))
	b.add(LabelCompanyStatus, stringOrNil(r.Summary.Status))
	b.add(LabelExemptPrivate, stringOrNil(r.Summary.PrivateExemptCompany))

	perSubject := func(label string, value func(*models.Subject) any) {
		for i := range subjects {
			b.add(Column(label, i), value(&subjects[i]))
		}
	}
	perSubject(LabelWindingUp, func(s *models.Subject) any { return intText(s.WindingUpRecord) })
	perSubject(LabelCreditAppsApproved, func(s *models.Subject) any { return intText(s.CreditAppsApproved) })
	perSubject(LabelCreditAppsPending, func(s *models.Subject) any { return intText(s.CreditAppsPending) })
	perSubject(LabelLegalActionBanking, func(s *models.Subject) any { return intText(s.LegalActionBanking) })
	perSubject(LabelExistingFacilities, func(s *models.Subject) any { return intText(s.ExistingFacilities) })
	perSubject(LabelLegalSuits, func(s *models.Subject) any { return intText(s.LegalSuits) })
	perSubject(LabelTradeCredit, func(s *models.Subject) any { return intText(s.TradeCreditReference) })
	perSubject(LabelLegalCaseStatus, func(s *models.Subject) any {
		return strings.Join([]string{
			orNo(s.LegalSuitsDefendant),
			orNo(s.OtherKnownLegalSuits),
			orNo(s.CaseWithdrawnSettled),
		}, ", ")
	})
	perSubject(LabelTotalEnquiries, func(s *models.Subject) any { return intText(s.TotalEnquiries) })
	perSubject(LabelSpecialAttention, func(s *models.Subject) any { return intText(s.SpecialAttention) })
	perSubject(LabelLiabilityOutstanding, func(s *models.Subject) any { return amountText(s.BorrowerOutstanding) })
	perSubject(LabelLiabilityLimit, func(s *models.Subject) any { return amountText(s.BorrowerTotalLimit) })

	limit := r.Banking.Totals.TotalLimit
	if limit == nil {
		limit = subjects[0].BorrowerTotalLimit
	}
	outstanding := r.Banking.Totals.TotalOutstanding
	if outstanding == nil {
		outstanding = subjects[0].BorrowerOutstanding
	}

	overdraft := OverdraftCompliance(r.Banking)
	bankingStatus := fmt.Sprintf("%s, outstanding: %s, limit: %s",
		WithinLimit(outstanding, limit), displayAmount(outstanding), displayAmount(limit))
	var nonBankOutstanding, nonBankLimit *decimal.Decimal
	if t := r.NonBank.Totals; t != nil {
		nonBankOutstanding, nonBankLimit = &t.TotalOutstanding, &t.TotalLimit
	}
	nonBankWithin := WithinLimit(nonBankOutstanding, nonBankLimit)
	ccrisLegal := BankingLegalStatus(r.Banking)
	nlciConduct := NonBankConduct(r.NonBank)
	nlciLegal := NonBankLegalStatus(r.NonBank)

	for i := range subjects {
		b.add(Column(LabelOverdraftCompliance, i), overdraft)
		b.add(Column(LabelBankingWithinLimit, i), bankingStatus)
		b.add(Column(LabelNonBankWithinLimit, i), nonBankWithin)
		b.add(Column(LabelCCRISLegalStatus, i), ccrisLegal)
		b.add(Column(LabelNLCIConduct, i), nlciConduct)
		b.add(Column(LabelNLCILegalStatus, i), nlciLegal)
	}

	for i, sec := range r.Banking.Sections {
		b.add(Column(LabelCCRISConduct, i), BankingConduct(sec))
	}

	b.add(LabelTotalLimit, amountText(limit))
	b.add(LabelTotalOutstanding, amountText(outstanding))
	return b.items
}

type builder struct {
	items Matrix
}

func (b *builder) add(label string, value any) {
	b.items = append(b.items, Item{Label: label, Value: value})
}

// WithinLimit returns "YES" when both figures are known and outstanding
// does not exceed limit.
func WithinLimit(outstanding, limit *decimal.Decimal) string {
	if outstanding != nil && limit != nil && outstanding.LessThanOrEqual(*limit) {
		return "YES"
	}
	return "NO"
}

// OverdraftCompliance checks the first banking section: "No" when some
// record total exceeds the first amount after its date, "N/A" without
// records.
func OverdraftCompliance(banking models.BankingReport) string {
	if len(banking.Sections) == 0 || len(banking.Sections[0].Records) == 0 {
		return "N/A"
	}
	for _, rec := range banking.Sections[0].Records {
		if rec.TotalExceedsFirst != nil && *rec.TotalExceedsFirst {
			return "No"
		}
	}
	return "Yes"
}

// BankingLegalStatus lists the legal markers of the first banking section,
// or "No".
func BankingLegalStatus(banking models.BankingReport) string {
	if len(banking.Sections) == 0 || len(banking.Sections[0].LegalMarkers) == 0 {
		return "No"
	}
	return strings.Join(banking.Sections[0].LegalMarkers, ", ")
}

// NonBankLegalStatus lists the distinct legal markers of the NLCI records
// in sorted order, or "No".
func NonBankLegalStatus(nonBank models.NonBankReport) string {
	seen := map[string]bool{}
	var markers []string
	for _, rec := range nonBank.Records {
		if rec.LegalMarker != "" && !seen[rec.LegalMarker] {
			seen[rec.LegalMarker] = true
			markers = append(markers, rec.LegalMarker)
		}
	}
	if len(markers) == 0 {
		return "No"
	}
	sort.Strings(markers)
	return strings.Join(markers, ", ")
}

// BankingConduct renders the conduct histograms of one banking section.
func BankingConduct(sec models.BankingSection) string {
	return MIA(sec.Current, sec.Window)
}

// NonBankConduct renders the NLCI conduct totals, or nil when the ledger
// was not extracted.
func NonBankConduct(nonBank models.NonBankReport) any {
	if nonBank.Error != "" {
		return nil
	}
	return MIA(nonBank.StatsTotals.LastMonth, nonBank.StatsTotals.LastWindow)
}

// MIA formats a current-period and a window histogram as months-in-arrears
// counts.
func MIA(current, window models.Histogram) string {
	return "current 1 month " + miaCounts(current) + " and /or past 6 months " + miaCounts(window)
}

func miaCounts(h models.Histogram) string {
	scheme := h.Scheme
	if scheme == "" {
		scheme = models.FourPlus
	}
	return fmt.Sprintf("MIA1: %d, MIA2: %d, MIA3: %d, MIA4+: %d",
		h.Count("1"), h.Count("2"), h.Count("3"), h.Count(scheme.PlusLabel()))
}

func intText(p *int) any {
	if p == nil {
		return nil
	}
	return strconv.Itoa(*p)
}

func amountText(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return displayAmount(d)
}

// displayAmount prints whole amounts without decimals.
func displayAmount(d *decimal.Decimal) string {
	if d == nil {
		return "N/A"
	}
	if d.IsInteger() {
		return d.StringFixed(0)
	}
	return d.String()
}

func stringOrNil(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func orNo(s string) string {
	if s == "" {
		return "No"
	}
	return s
}
