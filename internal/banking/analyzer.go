// Package banking analyses the detailed banking ledger: every occurrence of
// the section is segmented into facility records whose lines are classified,
// priced and folded into totals and conduct histograms.
package banking

import (
	"sort"

	"fjacquet/ccris-extract/internal/aggregate"
	"fjacquet/ccris-extract/internal/extract"
	"fjacquet/ccris-extract/internal/logging"
	"fjacquet/ccris-extract/internal/models"
	"fjacquet/ccris-extract/internal/parsererror"
	"fjacquet/ccris-extract/internal/record"
	"fjacquet/ccris-extract/internal/section"
)

// Default section markers of the banking ledger.
const (
	DefaultStartMarker = "DETAILED CREDIT REPORT (BANKING ACCOUNTS)"
	DefaultEndMarker   = "CREDIT APPLICATION"
)

// Analyzer runs the banking ledger pipeline. It holds no per-document state
// and may be shared between goroutines.
type Analyzer struct {
	logger      logging.Logger
	classifier  *extract.Classifier
	terms       *extract.TermExtractor
	startMarker string
	endMarker   string
}

// NewAnalyzer creates a banking analyzer. Empty markers fall back to the
// defaults.
func NewAnalyzer(logger logging.Logger, classifier *extract.Classifier, terms *extract.TermExtractor, startMarker, endMarker string) *Analyzer {
	if startMarker == "" {
		startMarker = DefaultStartMarker
	}
	if endMarker == "" {
		endMarker = DefaultEndMarker
	}
	return &Analyzer{
		logger:      logger,
		classifier:  classifier,
		terms:       terms,
		startMarker: startMarker,
		endMarker:   endMarker,
	}
}

// Analyze extracts the banking group of doc. A missing section is reported
// through the result's Error field; the document-level totals are still
// filled in.
func (a *Analyzer) Analyze(doc models.Document) models.BankingReport {
	report := models.BankingReport{
		StartMarker: a.startMarker,
		EndMarker:   a.endMarker,
		Sections:    []models.BankingSection{},
		Totals:      extract.ExtractTotals(doc.Text),
	}

	sections := section.LocateAll(doc.Lines, a.startMarker, a.endMarker)
	lines := 0
	for _, sec := range sections {
		lines += len(sec.Lines)
	}
	if lines == 0 {
		err := &parsererror.SectionNotFoundError{
			Section:     "banking",
			StartMarker: a.startMarker,
			EndMarker:   a.endMarker,
		}
		a.logger.Warn("Banking ledger section not found",
			logging.Field{Key: logging.FieldFile, Value: doc.Source},
			logging.Field{Key: logging.FieldReason, Value: err.Error()})
		report.Error = err.Error()
		return report
	}

	for i, sec := range sections {
		analysed := a.analyzeSection(sec)
		a.logger.Debug("Analysed banking section",
			logging.Field{Key: logging.FieldSection, Value: i + 1},
			logging.Field{Key: logging.FieldLines, Value: len(sec.Lines)},
			logging.Field{Key: logging.FieldRecords, Value: len(analysed.Records)})
		report.Sections = append(report.Sections, analysed)
	}

	a.logger.Info("Banking ledger extracted",
		logging.Field{Key: logging.FieldFile, Value: doc.Source},
		logging.Field{Key: logging.FieldCount, Value: len(report.Sections)},
		logging.Field{Key: logging.FieldRecords, Value: report.TotalRecords()})
	return report
}

func (a *Analyzer) analyzeSection(sec models.Section) models.BankingSection {
	records := record.Segment(sec.Lines)

	var extracted []models.ExtractedLine
	perRecord := make([][]models.ExtractedLine, len(records))
	for i, rec := range records {
		for _, line := range rec.Lines {
			el := a.extractLine(i, rec.Ordinal, line)
			perRecord[i] = append(perRecord[i], el)
			extracted = append(extracted, el)
		}
	}

	totals := aggregate.Aggregate(records, extracted, a.terms.Scheme())

	out := models.BankingSection{
		Records:        make([]models.BankingRecord, 0, len(records)),
		CategoryTotals: totals.ByCategory,
		RecordTotals:   totals.ByOrdinal,
		Overall:        totals.Overall,
		Current:        totals.Current,
		Window:         totals.Window,
		LegalMarkers:   []string{},
	}

	seen := map[string]bool{}
	for i, rec := range records {
		br := models.BankingRecord{
			Record:         rec,
			Extracted:      perRecord[i],
			Total:          totals.ByRecord[i],
			FirstAfterDate: extract.MoneyAfterDate(rec.FirstLine()),
		}
		br.TotalExceedsFirst = aggregate.CrossCheck(br.Total, br.FirstAfterDate)

		for _, el := range perRecord[i] {
			if el.Term != nil && el.Term.LegalMarker != "" {
				br.LegalMarker = el.Term.LegalMarker
				br.StatusDate = el.Term.StatusDate
				break
			}
		}
		if br.LegalMarker != "" && !seen[br.LegalMarker] {
			seen[br.LegalMarker] = true
			out.LegalMarkers = append(out.LegalMarkers, br.LegalMarker)
		}
		out.Records = append(out.Records, br)
	}
	sort.Strings(out.LegalMarkers)
	return out
}

func (a *Analyzer) extractLine(index, ordinal int, line string) models.ExtractedLine {
	el := models.ExtractedLine{
		RecordIndex:      index,
		RecordOrdinal:    ordinal,
		Line:             line,
		AmountBeforeDate: extract.MoneyBeforeDate(line),
		Term:             a.terms.Extract(line),
	}
	if category, ok := a.classifier.Classify(line); ok {
		el.Category = category
	}
	return el
}
