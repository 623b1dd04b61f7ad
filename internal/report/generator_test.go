package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/ccris-extract/internal/banking"
	"fjacquet/ccris-extract/internal/extract"
	"fjacquet/ccris-extract/internal/knockout"
	"fjacquet/ccris-extract/internal/logging"
	"fjacquet/ccris-extract/internal/models"
	"fjacquet/ccris-extract/internal/nonbank"
	"fjacquet/ccris-extract/internal/parsererror"
	"fjacquet/ccris-extract/internal/summary"
)

func newTestGenerator(logger logging.Logger) *Generator {
	classifier := extract.NewClassifier(extract.DefaultFacilityCodes)
	terms := extract.NewTermExtractor(extract.TermConfig{})
	return NewGenerator(logger,
		summary.NewExtractor(logger),
		banking.NewAnalyzer(logger, classifier, terms, "", ""),
		nonbank.NewAnalyzer(logger, nil, 6, "", ""),
	)
}

func scenarioDoc() models.Document {
	return models.NewDocument("scenario.pdf", models.LineStream{
		"Name Of Subject : ACME SDN BHD",
		"i-SCORE 720",
		"LIMIT: 10,000.00 TOTAL OUTSTANDING 7,500.00",
		"DETAILED CREDIT REPORT (BANKING ACCOUNTS)",
		"1 OVRDRAFT 5,000.00 01/01/2024 MTH 1 0 0 LOD 15/02/2024",
		"2 CRDTCARD 2,500.00 01/01/2024 MTH 0 0 0",
		"CREDIT APPLICATION",
		"NON-BANK LENDER CREDIT INFORMATION (NLCI)",
		"NO DATE LENDER OUTSTANDING CREDIT J F M",
		"1 01/06/2023 LEASECO 0 1 0 SUE 01/04/2024",
		"TOTAL 4,000.00 TOTAL 3,000.00",
		"WRITTEN-OFF ACCOUNT",
	})
}

func TestGenerate_Scenario(t *testing.T) {
	logger := logging.NewMockLogger()
	r, err := newTestGenerator(logger).Generate(context.Background(), scenarioDoc())
	require.NoError(t, err)

	require.Empty(t, r.Banking.Error)
	require.Len(t, r.Banking.Sections, 1)
	sec := r.Banking.Sections[0]
	assert.True(t, decimal.NewFromInt(5000).Equal(sec.CategoryTotals["OVRDRAFT"]))
	assert.True(t, decimal.NewFromInt(2500).Equal(sec.CategoryTotals["CRDTCARD"]))
	assert.True(t, decimal.NewFromInt(7500).Equal(sec.Overall))
	require.NotNil(t, r.Banking.Totals.TotalLimit)
	assert.True(t, decimal.NewFromInt(10000).Equal(*r.Banking.Totals.TotalLimit))
	require.NotNil(t, r.Banking.Totals.TotalOutstanding)
	assert.True(t, decimal.NewFromInt(7500).Equal(*r.Banking.Totals.TotalOutstanding))
	assert.Equal(t, "LOD", sec.Records[0].LegalMarker)

	require.Empty(t, r.NonBank.Error)
	require.Len(t, r.NonBank.Records, 1)
	assert.Equal(t, "SUE", r.NonBank.Records[0].LegalMarker)
	assert.True(t, r.NonBank.MonthMapping.Confident)

	assert.Equal(t, []string{"ACME SDN BHD"}, r.Summary.SubjectNames())
	assert.Empty(t, Missing(r))
	assert.True(t, logger.HasEntry("INFO", "Report generated"))
}

func TestGenerate_Idempotent(t *testing.T) {
	g := newTestGenerator(logging.NewMockLogger())
	doc := scenarioDoc()

	first, err := g.Generate(context.Background(), doc)
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), doc)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestGenerate_EmptyInput(t *testing.T) {
	_, err := newTestGenerator(logging.NewMockLogger()).Generate(context.Background(), models.NewDocument("blank.pdf", nil))

	var empty *parsererror.EmptyInputError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, "blank.pdf", empty.Source)
}

func TestGenerate_MissingSectionsDoNotAbort(t *testing.T) {
	doc := models.NewDocument("partial.pdf", models.LineStream{
		"Name Of Subject : SOLO TRADER",
		"LIMIT: 1,000.00",
	})

	r, err := newTestGenerator(logging.NewMockLogger()).Generate(context.Background(), doc)
	require.NoError(t, err)

	assert.NotEmpty(t, r.Banking.Error)
	assert.NotEmpty(t, r.NonBank.Error)
	assert.Len(t, Missing(r), 2)
	require.NotNil(t, r.Banking.Totals.TotalLimit)
	assert.Equal(t, []string{"SOLO TRADER"}, r.Summary.SubjectNames())
}

func TestGenerate_RepeatedLabelKeepsOneKnockoutColumn(t *testing.T) {
	doc := models.NewDocument("one.pdf", models.LineStream{
		"PARTICULARS OF THE SUBJECT PROVIDED BY YOU",
		"Name Of Subject : ACME SDN BHD",
		"i-SCORE 720",
		"Special Attention Account 0",
		"Special Attention Account 0",
	})

	r, err := newTestGenerator(logging.NewMockLogger()).Generate(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, r.Summary.Subjects, 1)

	m := knockout.Build(r)
	_, ok := m.Get(knockout.Column(knockout.LabelAgencyScore, 0))
	assert.True(t, ok)
	_, ok = m.Get(knockout.Column(knockout.LabelAgencyScore, 1))
	assert.False(t, ok)
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestGenerator(logging.NewMockLogger()).Generate(ctx, scenarioDoc())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
