// Package nonbank analyses the non-bank lender (NLCI) ledger. Its month
// header is printed as single initials, so the conduct columns are aligned
// with calendar months by the months reconciler before they are reported.
package nonbank

import (
	"regexp"
	"strings"

	"fjacquet/ccris-extract/internal/aggregate"
	"fjacquet/ccris-extract/internal/extract"
	"fjacquet/ccris-extract/internal/logging"
	"fjacquet/ccris-extract/internal/models"
	"fjacquet/ccris-extract/internal/months"
	"fjacquet/ccris-extract/internal/parsererror"
	"fjacquet/ccris-extract/internal/record"
	"fjacquet/ccris-extract/internal/section"
)

// Default section markers of the NLCI ledger.
const (
	DefaultStartMarker = "NON-BANK LENDER CREDIT INFORMATION (NLCI)"
	DefaultEndMarker   = "WRITTEN-OFF ACCOUNT"
	headerLabel        = "OUTSTANDING CREDIT"
)

var (
	headerRe    = regexp.MustCompile(`(?i)\bOUTSTANDING\s+CREDIT\b`)
	totalLineRe = regexp.MustCompile(`(?i)^\s*TOTAL\s+([\d,]+\.\d{2})\s+TOTAL\s+([\d,]+\.\d{2})\s*$`)
)

// Analyzer runs the NLCI pipeline. It holds no per-document state.
type Analyzer struct {
	logger      logging.Logger
	markers     extract.MarkerSet
	window      int
	startMarker string
	endMarker   string
}

// NewAnalyzer creates an NLCI analyzer. window is the number of recent
// periods summarised per record; empty markers fall back to the defaults.
func NewAnalyzer(logger logging.Logger, legalMarkers []string, window int, startMarker, endMarker string) *Analyzer {
	if len(legalMarkers) == 0 {
		legalMarkers = extract.DefaultLegalMarkers
	}
	if window <= 0 {
		window = extract.DefaultHistoryWindow
	}
	if startMarker == "" {
		startMarker = DefaultStartMarker
	}
	if endMarker == "" {
		endMarker = DefaultEndMarker
	}
	return &Analyzer{
		logger:      logger,
		markers:     extract.NewMarkerSet(legalMarkers),
		window:      window,
		startMarker: startMarker,
		endMarker:   endMarker,
	}
}

// HeaderInitials returns the single-letter month initials printed after
// "OUTSTANDING CREDIT" on the header line.
func HeaderInitials(header string) []string {
	parts := headerRe.Split(header, -1)
	after := parts[len(parts)-1]

	initials := []string{}
	for _, tok := range strings.Fields(after) {
		if len(tok) == 1 && isLetter(tok[0]) {
			initials = append(initials, strings.ToUpper(tok))
		}
	}
	return initials
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// Analyze extracts the NLCI group of doc. Structural misses are reported
// through the result's Error field.
func (a *Analyzer) Analyze(doc models.Document) models.NonBankReport {
	report := models.NonBankReport{
		StartMarker:    a.startMarker,
		EndMarker:      a.endMarker,
		HeaderInitials: []string{},
		Records:        []models.NonBankRecord{},
		StatsTotals:    aggregate.SumPeriods(nil, models.FourPlus),
	}

	sec, ok := section.Locate(doc.Lines, a.startMarker, a.endMarker)
	if !ok || len(sec.Lines) == 0 {
		a.fail(&report, doc.Source, &parsererror.SectionNotFoundError{
			Section:     "non-bank lender",
			StartMarker: a.startMarker,
			EndMarker:   a.endMarker,
		})
		return report
	}

	headerIdx := -1
	for i, line := range sec.Lines {
		if headerRe.MatchString(line) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		a.fail(&report, doc.Source, &parsererror.HeaderNotFoundError{
			Section: "non-bank lender",
			Header:  headerLabel,
		})
		return report
	}

	report.HeaderInitials = HeaderInitials(sec.Lines[headerIdx])
	report.MonthMapping = months.Reconcile(report.HeaderInitials)
	a.logger.Debug("Reconciled NLCI month header",
		logging.Field{Key: logging.FieldScore, Value: report.MonthMapping.Score},
		logging.Field{Key: logging.FieldConfident, Value: report.MonthMapping.Confident})

	body := sec.Lines[headerIdx+1:]
	for i, line := range body {
		if m := totalLineRe.FindStringSubmatch(line); m != nil {
			limit, okLimit := models.ParseAmount(m[1])
			outstanding, okOut := models.ParseAmount(m[2])
			if okLimit && okOut {
				report.Totals = &models.NonBankTotals{TotalLimit: limit, TotalOutstanding: outstanding}
			}
			body = body[:i]
			break
		}
	}

	var stats []models.PeriodStats
	for _, rec := range record.Segment(body) {
		nr := a.analyzeRecord(rec, report.MonthMapping)
		stats = append(stats, nr.Stats)
		report.Records = append(report.Records, nr)
	}
	report.StatsTotals = aggregate.SumPeriods(stats, models.FourPlus)

	a.logger.Info("Non-bank lender ledger extracted",
		logging.Field{Key: logging.FieldFile, Value: doc.Source},
		logging.Field{Key: logging.FieldRecords, Value: len(report.Records)},
		logging.Field{Key: logging.FieldConfident, Value: report.MonthMapping.Confident})
	return report
}

func (a *Analyzer) fail(report *models.NonBankReport, source string, err error) {
	a.logger.Warn("Non-bank lender ledger not extracted",
		logging.Field{Key: logging.FieldFile, Value: source},
		logging.Field{Key: logging.FieldReason, Value: err.Error()})
	report.Error = err.Error()
}

// analyzeRecord parses the first line of an NLCI record:
// "<no> <approval date> ... <conduct values> <legal marker> <status date> ...".
func (a *Analyzer) analyzeRecord(rec models.Record, mapping models.MonthMapping) models.NonBankRecord {
	tokens := strings.Fields(rec.FirstLine())
	rest := tokens
	if len(rest) > 0 {
		rest = rest[1:]
	}

	nr := models.NonBankRecord{
		Ordinal:   rec.Ordinal,
		Confident: mapping.Confident,
		Raw:       rec.Text,
	}
	if len(rest) > 0 && extract.IsDate(rest[0]) {
		nr.ApprovalDate = rest[0]
		rest = rest[1:]
	}

	conduct := extract.ConductBeforeMarker(rest, a.markers)
	nr.LegalMarker = conduct.LegalMarker
	nr.StatusDate = conduct.StatusDate
	nr.Remarks = strings.Join(conduct.Remarks, " ")
	nr.MonthMap = monthMap(mapping, conduct.Values)
	nr.Stats = aggregate.Periods(conduct.Values, a.window, models.FourPlus)
	return nr
}

// monthMap labels values with month names when the mapping is confident.
// A confident map has one entry per header month, null where the line has
// no value; otherwise entries are labelled M01, M02, ... per value.
func monthMap(mapping models.MonthMapping, values []int) []models.MonthValue {
	labels := months.Labels(mapping, len(values))
	out := make([]models.MonthValue, 0, len(labels))
	for i, label := range labels {
		mv := models.MonthValue{Month: label}
		if i < len(values) {
			v := values[i]
			mv.Value = &v
		}
		out = append(out, mv)
	}
	return out
}
