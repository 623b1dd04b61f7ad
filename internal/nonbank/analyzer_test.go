package nonbank

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/ccris-extract/internal/logging"
	"fjacquet/ccris-extract/internal/models"
)

func newTestAnalyzer() (*Analyzer, *logging.MockLogger) {
	logger := logging.NewMockLogger()
	return NewAnalyzer(logger, nil, 6, "", ""), logger
}

func docOf(lines ...string) models.Document {
	return models.NewDocument("test.pdf", models.LineStream(lines))
}

func TestHeaderInitials(t *testing.T) {
	assert.Equal(t, []string{"J", "F", "M"}, HeaderInitials("NO DATE LENDER OUTSTANDING CREDIT J F M"))
	assert.Equal(t, []string{"D", "N", "O"}, HeaderInitials("outstanding credit d n o REMARKS"))
	assert.Empty(t, HeaderInitials("OUTSTANDING CREDIT BALANCE"))
}

func TestAnalyze_ConfidentMonthMap(t *testing.T) {
	a, logger := newTestAnalyzer()
	doc := docOf(
		"HEADER",
		"NON-BANK LENDER CREDIT INFORMATION (NLCI)",
		"NO APPROVAL LENDER OUTSTANDING CREDIT J F M A",
		"1 01/01/2023 ACME LEASING 12,000.00 0 1 2 LOD 15/03/2024 PAID IN FULL",
		"continued remark",
		"2 02/02/2023 OTHER CREDIT 3,000.00 5 0 0 0",
		"TOTAL 20,000.00 TOTAL 15,000.00",
		"WRITTEN-OFF ACCOUNT",
	)

	report := a.Analyze(doc)

	require.Empty(t, report.Error)
	assert.Equal(t, []string{"J", "F", "M", "A"}, report.HeaderInitials)
	assert.True(t, report.MonthMapping.Confident)
	assert.Equal(t, []string{"January", "February", "March", "April"}, report.MonthMapping.Months)
	require.Len(t, report.Records, 2)

	first := report.Records[0]
	assert.Equal(t, 1, first.Ordinal)
	assert.Equal(t, "01/01/2023", first.ApprovalDate)
	assert.Equal(t, "LOD", first.LegalMarker)
	assert.Equal(t, "15/03/2024", first.StatusDate)
	assert.Equal(t, "PAID IN FULL", first.Remarks)
	assert.Contains(t, first.Raw, "continued remark")
	require.Len(t, first.MonthMap, 4)
	assert.Equal(t, "January", first.MonthMap[0].Month)
	require.NotNil(t, first.MonthMap[0].Value)
	assert.Equal(t, 0, *first.MonthMap[0].Value)
	assert.Equal(t, 2, *first.MonthMap[2].Value)
	assert.Nil(t, first.MonthMap[3].Value, "no value printed for April")
	assert.Equal(t, 1, first.Stats.LastMonth.Count("0"))
	assert.Equal(t, 3, first.Stats.LastWindow.Total)

	second := report.Records[1]
	assert.Empty(t, second.LegalMarker)
	assert.Equal(t, 1, second.Stats.LastMonth.Count("4+"))

	assert.Equal(t, 2, report.StatsTotals.LastMonth.Total)
	assert.Equal(t, 7, report.StatsTotals.LastWindow.Total)
	assert.Equal(t, 1, report.StatsTotals.LastWindow.Count("4+"))

	require.NotNil(t, report.Totals)
	assert.True(t, decimal.NewFromInt(20000).Equal(report.Totals.TotalLimit))
	assert.True(t, decimal.NewFromInt(15000).Equal(report.Totals.TotalOutstanding))

	assert.True(t, logger.HasEntry("INFO", "Non-bank lender ledger extracted"))
}

func TestAnalyze_UnconfidentUsesPositionalLabels(t *testing.T) {
	a, _ := newTestAnalyzer()
	doc := docOf(
		"NON-BANK LENDER CREDIT INFORMATION (NLCI)",
		"OUTSTANDING CREDIT X Y Z",
		"1 01/01/2023 LENDER 1 2",
		"WRITTEN-OFF ACCOUNT",
	)

	report := a.Analyze(doc)

	require.Len(t, report.Records, 1)
	assert.False(t, report.MonthMapping.Confident)
	rec := report.Records[0]
	assert.False(t, rec.Confident)
	require.Len(t, rec.MonthMap, 2)
	assert.Equal(t, "M01", rec.MonthMap[0].Month)
	assert.Equal(t, "M02", rec.MonthMap[1].Month)
	assert.Equal(t, 2, *rec.MonthMap[1].Value)
	assert.Nil(t, report.Totals)
}

func TestAnalyze_MissingSection(t *testing.T) {
	a, logger := newTestAnalyzer()

	report := a.Analyze(docOf("NOTHING HERE"))

	assert.Contains(t, report.Error, "non-bank lender section not found")
	assert.Empty(t, report.Records)
	assert.NotNil(t, report.Records)
	assert.True(t, logger.HasEntry("WARN", "Non-bank lender ledger not extracted"))
}

func TestAnalyze_MissingHeader(t *testing.T) {
	a, _ := newTestAnalyzer()
	doc := docOf(
		"NON-BANK LENDER CREDIT INFORMATION (NLCI)",
		"1 01/01/2023 LENDER 1 2",
		"WRITTEN-OFF ACCOUNT",
	)

	report := a.Analyze(doc)

	assert.Equal(t, "OUTSTANDING CREDIT header not found in non-bank lender section", report.Error)
	assert.Empty(t, report.Records)
}

func TestAnalyze_WindowCapsStats(t *testing.T) {
	a := NewAnalyzer(logging.NewMockLogger(), nil, 2, "", "")
	doc := docOf(
		"NON-BANK LENDER CREDIT INFORMATION (NLCI)",
		"OUTSTANDING CREDIT J F M",
		"1 01/01/2023 LENDER 0 1 2",
	)

	report := a.Analyze(doc)

	require.Len(t, report.Records, 1)
	assert.Equal(t, []int{0, 1}, report.Records[0].Stats.WindowValues)
}
