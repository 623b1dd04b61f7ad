package summary

import (
	"fjacquet/ccris-extract/internal/extract"
	"fjacquet/ccris-extract/internal/logging"
	"fjacquet/ccris-extract/internal/models"
)

// Extractor builds the summary group of a document.
type Extractor struct {
	logger logging.Logger
}

// NewExtractor creates a summary extractor.
func NewExtractor(logger logging.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract reads every summary field from doc. The subject count is the
// number of subject names, at least one; every other per-subject list is
// padded or trimmed to it, so a label printed twice never adds a subject.
func (e *Extractor) Extract(doc models.Document) models.Summary {
	text := doc.Text
	s := models.Summary{
		IncorporationYear:    extract.IncorporationYear(text),
		Status:               extract.WordAfterLabel(mustLabel(KeyStatus), text),
		PrivateExemptCompany: extract.WordAfterLabel(mustLabel(KeyPrivateExemptCompany), text),
		LastUpdated:          extract.OrderDate(text),
	}

	names := extract.SubjectNames(text)
	scores := extract.IScores(text)
	enquiries := extract.FinancialSearchCounts(text)
	suits := extract.LegalSuits(text)
	trade := extract.TradeCreditCounts(doc.Lines)
	liabilities := extract.BorrowerLiabilities(text)
	litigation := extract.Litigation(text)

	counts := make(map[string][]*int)
	for _, f := range Registry {
		if f.SetCount != nil {
			counts[f.Key] = extract.IntAfterLabelAll(f.Label, text)
		}
	}

	n := max(1, len(names))
	scores = fitLength(scores, n)
	enquiries = fitLength(enquiries, n)
	suits = fitLength(suits, n)
	trade = fitLength(trade, n)
	for key, values := range counts {
		counts[key] = fitLength(values, n)
	}

	s.Subjects = make([]models.Subject, n)
	for i := range s.Subjects {
		subj := &s.Subjects[i]
		if i < len(names) {
			name := names[i]
			subj.Name = &name
		}
		subj.IScore = at(scores, i)
		subj.TotalEnquiries = at(enquiries, i)
		subj.LegalSuits = at(suits, i)
		subj.TradeCreditReference = at(trade, i)
		if i < len(liabilities) {
			subj.BorrowerOutstanding = liabilities[i].Outstanding
			subj.BorrowerTotalLimit = liabilities[i].TotalLimit
		}
		flags := extract.NoLitigation
		if i < len(litigation) {
			flags = litigation[i]
		}
		subj.CaseWithdrawnSettled = flags.CaseWithdrawnSettled
		subj.OtherKnownLegalSuits = flags.OtherKnownLegalSuits
		subj.LegalSuitsDefendant = flags.LegalSuitsDefendant
		for _, f := range Registry {
			if f.SetCount != nil {
				f.SetCount(subj, at(counts[f.Key], i))
			}
		}
	}

	s.Fields = Flatten(&s)
	e.logger.Debug("Summary extracted",
		logging.Field{Key: logging.FieldFile, Value: doc.Source},
		logging.Field{Key: logging.FieldSubjects, Value: n},
		logging.Field{Key: logging.FieldCount, Value: len(s.Fields)})
	return s
}

func mustLabel(key string) string {
	f, ok := Lookup(key)
	if !ok {
		panic("summary: unknown field " + key)
	}
	return f.Label
}

func at(values []*int, i int) *int {
	if i < len(values) {
		return values[i]
	}
	return nil
}

// fitLength pads values with nil or trims it to n entries. A zero n leaves
// values unchanged.
func fitLength(values []*int, n int) []*int {
	if n == 0 {
		return values
	}
	out := make([]*int, n)
	copy(out, values)
	return out
}
