package banking

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/ccris-extract/internal/extract"
	"fjacquet/ccris-extract/internal/logging"
	"fjacquet/ccris-extract/internal/models"
)

func newTestAnalyzer(logger logging.Logger) *Analyzer {
	return NewAnalyzer(logger,
		extract.NewClassifier(extract.DefaultFacilityCodes),
		extract.NewTermExtractor(extract.TermConfig{}),
		"", "")
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var twoRecordDocument = models.LineStream{
	"EXPERIAN CREDIT REPORT",
	"DETAILED CREDIT REPORT (BANKING ACCOUNTS)",
	"No Facility Balance Date Term Conduct",
	"1 OVRDRAFT 5,000.00 01/01/2024 MTH 1 0 0 LOD 15/02/2024",
	"2 CRDTCARD 2,500.00 01/01/2024 MTH 0 0 0",
	"CREDIT APPLICATION",
	"LIMIT: 10,000.00 ... OUTSTANDING 7,500.00",
}

func TestAnalyze_TwoRecords(t *testing.T) {
	logger := logging.NewMockLogger()
	report := newTestAnalyzer(logger).Analyze(models.NewDocument("test.txt", twoRecordDocument))

	assert.Empty(t, report.Error)
	assert.Equal(t, DefaultStartMarker, report.StartMarker)
	require.Len(t, report.Sections, 1)
	sec := report.Sections[0]

	require.Len(t, sec.Records, 2)
	assert.True(t, dec("5000").Equal(sec.CategoryTotals["OVRDRAFT"]))
	assert.True(t, dec("2500").Equal(sec.CategoryTotals["CRDTCARD"]))
	assert.True(t, dec("7500").Equal(sec.Overall))
	assert.True(t, dec("5000").Equal(sec.RecordTotals[1]))
	assert.True(t, dec("2500").Equal(sec.RecordTotals[2]))

	first := sec.Records[0]
	assert.Equal(t, 1, first.Ordinal)
	assert.Equal(t, "LOD", first.LegalMarker)
	assert.Equal(t, "15/02/2024", first.StatusDate)
	require.NotNil(t, first.Total)
	assert.True(t, dec("5000").Equal(*first.Total))
	require.Len(t, first.FirstAfterDate, 3)
	require.NotNil(t, first.TotalExceedsFirst)
	assert.True(t, *first.TotalExceedsFirst)

	second := sec.Records[1]
	assert.Empty(t, second.LegalMarker)
	require.Len(t, second.Extracted, 1)
	assert.Equal(t, "CRDTCARD", second.Extracted[0].Category)
	require.NotNil(t, second.Extracted[0].Term)
	assert.Equal(t, []string{"0", "0", "0"}, second.Extracted[0].Term.History)

	assert.Equal(t, []string{"LOD"}, sec.LegalMarkers)
	assert.Equal(t, 1, sec.Current.Count("0"))
	assert.Equal(t, 1, sec.Current.Count("1"))
	assert.Equal(t, 2, sec.Current.Total)
	assert.Equal(t, 5, sec.Window.Count("0"))
	assert.Equal(t, 6, sec.Window.Total)

	require.NotNil(t, report.Totals.TotalLimit)
	require.NotNil(t, report.Totals.TotalOutstanding)
	assert.True(t, dec("10000").Equal(*report.Totals.TotalLimit))
	assert.True(t, dec("7500").Equal(*report.Totals.TotalOutstanding))

	assert.True(t, logger.HasEntry("INFO", "Banking ledger extracted"))
}

func TestAnalyze_MissingSection(t *testing.T) {
	logger := logging.NewMockLogger()
	doc := models.NewDocument("empty.txt", models.LineStream{"SUMMARY", "LIMIT: 1,000.00"})

	report := newTestAnalyzer(logger).Analyze(doc)

	assert.Contains(t, report.Error, "banking section not found")
	assert.Empty(t, report.Sections)
	require.NotNil(t, report.Totals.TotalLimit)
	assert.True(t, dec("1000").Equal(*report.Totals.TotalLimit))

	warnings := logger.GetEntriesByLevel("WARN")
	require.Len(t, warnings, 1)
	v, ok := warnings[0].FieldValue(logging.FieldFile)
	assert.True(t, ok)
	assert.Equal(t, "empty.txt", v)
}

func TestAnalyze_RepeatedSectionsPerSubject(t *testing.T) {
	lines := models.LineStream{
		"DETAILED CREDIT REPORT (BANKING ACCOUNTS)",
		"1 TRMLOANS 100,000.00 01/01/2020 MTH 0 0 0 0 0 0",
		"CREDIT APPLICATION",
		"DETAILED CREDIT REPORT (BANKING ACCOUNTS)",
		"1 HSLNFNCE 300,000.00 01/01/2019 MTH 2 1 0 0 0 0 SUE 01/03/2024",
		"2 BNKGUARN 50,000.00 01/06/2022 REV 0",
	}

	report := newTestAnalyzer(logging.NewMockLogger()).Analyze(models.NewDocument("multi", lines))

	require.Len(t, report.Sections, 2)
	assert.Equal(t, 3, report.TotalRecords())
	assert.True(t, dec("100000").Equal(report.Sections[0].Overall))
	assert.True(t, dec("350000").Equal(report.Sections[1].Overall))
	assert.Equal(t, []string{"SUE"}, report.Sections[1].LegalMarkers)
	assert.Empty(t, report.Sections[0].LegalMarkers)
	assert.Nil(t, report.Totals.TotalLimit)
}

func TestAnalyze_ContinuationLinesBelongToTheirRecord(t *testing.T) {
	lines := models.LineStream{
		"DETAILED CREDIT REPORT (BANKING ACCOUNTS)",
		"1 OVRDRAFT 5,000.00 01/01/2024 MTH 0",
		"OVRDRAFT 1,000.00 01/02/2024 MTH 3",
		"REMARK ONLY",
		"CREDIT APPLICATION",
	}

	report := newTestAnalyzer(logging.NewMockLogger()).Analyze(models.NewDocument("wrap", lines))

	require.Len(t, report.Sections, 1)
	sec := report.Sections[0]
	require.Len(t, sec.Records, 1)
	assert.Len(t, sec.Records[0].Extracted, 3)
	assert.True(t, dec("6000").Equal(*sec.Records[0].Total))
	assert.True(t, dec("6000").Equal(sec.CategoryTotals["OVRDRAFT"]))
	assert.Equal(t, 1, sec.Current.Count("3"))
}

func TestAnalyze_HistoryWindowIsConfigurable(t *testing.T) {
	a := NewAnalyzer(logging.NewMockLogger(),
		extract.NewClassifier(extract.DefaultFacilityCodes),
		extract.NewTermExtractor(extract.TermConfig{Window: 5}),
		"", "")
	lines := models.LineStream{
		"DETAILED CREDIT REPORT (BANKING ACCOUNTS)",
		"1 OVRDRAFT 5,000.00 01/01/2024 MTH 0 0 0 0 0 1",
	}

	report := a.Analyze(models.NewDocument("window", lines))
	require.Len(t, report.Sections, 1)
	assert.Equal(t, 5, report.Sections[0].Window.Total)
	assert.Equal(t, 0, report.Sections[0].Window.Count("1"))
}

func TestAnalyze_RemarkAfterLegalMarkerKeepsMarker(t *testing.T) {
	lines := models.LineStream{
		"DETAILED CREDIT REPORT (BANKING ACCOUNTS)",
		"1 OVRDRAFT 5,000.00 01/01/2024 MTH 0 1 2 0 0 0 LOD 31/01/2025 RM 500",
		"CREDIT APPLICATION",
	}

	report := newTestAnalyzer(logging.NewMockLogger()).Analyze(models.NewDocument("remark", lines))
	require.Len(t, report.Sections, 1)
	sec := report.Sections[0]
	require.Len(t, sec.Records, 1)
	assert.Equal(t, "LOD", sec.Records[0].LegalMarker)
	assert.Equal(t, "31/01/2025", sec.Records[0].StatusDate)
	assert.Equal(t, []string{"LOD"}, sec.LegalMarkers)
	assert.Equal(t, 6, sec.Window.Total)
}
