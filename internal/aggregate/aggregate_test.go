package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/ccris-extract/internal/models"
)

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func termWith(scheme models.BucketScheme, values ...int) *models.TermInfo {
	info := &models.TermInfo{Current: models.NewHistogram(scheme), Window: models.NewHistogram(scheme)}
	for i, v := range values {
		if i == 0 {
			info.Current.Add(v)
		}
		info.Window.Add(v)
	}
	return info
}

func TestAggregate(t *testing.T) {
	records := []models.Record{
		models.NewRecord(1, []string{"1 OVRDRAFT 5,000.00 01/01/2024"}),
		models.NewRecord(2, []string{"2 CRDTCARD 2,500.00 01/01/2024", "CRDTCARD 100.00 01/02/2024"}),
		models.NewRecord(1, []string{"1 OVRDRAFT 0.10 01/01/2024"}),
	}
	lines := []models.ExtractedLine{
		{RecordIndex: 0, RecordOrdinal: 1, Category: "OVRDRAFT", AmountBeforeDate: amount("5000.00"), Term: termWith(models.FivePlus, 1, 0, 0)},
		{RecordIndex: 1, RecordOrdinal: 2, Category: "CRDTCARD", AmountBeforeDate: amount("2500.00"), Term: termWith(models.FivePlus, 0, 0, 0)},
		{RecordIndex: 1, RecordOrdinal: 2, Category: "CRDTCARD", AmountBeforeDate: amount("100.00")},
		{RecordIndex: 1, RecordOrdinal: 2, AmountBeforeDate: amount("999.00")},
		{RecordIndex: 2, RecordOrdinal: 1, Category: "OVRDRAFT", AmountBeforeDate: amount("0.10")},
	}

	got := Aggregate(records, lines, models.FivePlus)

	assert.True(t, decimal.RequireFromString("5000.10").Equal(got.ByCategory["OVRDRAFT"]))
	assert.True(t, decimal.RequireFromString("2600").Equal(got.ByCategory["CRDTCARD"]))
	assert.True(t, decimal.RequireFromString("7600.10").Equal(got.Overall))

	require.Len(t, got.ByRecord, 3)
	assert.True(t, decimal.RequireFromString("5000").Equal(*got.ByRecord[0]))
	assert.True(t, decimal.RequireFromString("2600").Equal(*got.ByRecord[1]))
	assert.True(t, decimal.RequireFromString("0.10").Equal(*got.ByRecord[2]))

	assert.True(t, decimal.RequireFromString("5000.10").Equal(got.ByOrdinal[1]))
	assert.True(t, decimal.RequireFromString("2600").Equal(got.ByOrdinal[2]))

	assert.Equal(t, 1, got.Current.Count("0"))
	assert.Equal(t, 1, got.Current.Count("1"))
	assert.Equal(t, 2, got.Current.Total)
	assert.Equal(t, 5, got.Window.Count("0"))
	assert.Equal(t, 6, got.Window.Total)
}

func TestAggregate_OverallIsSumOfCategories(t *testing.T) {
	lines := []models.ExtractedLine{
		{RecordIndex: 0, RecordOrdinal: 1, Category: "TRMLOANS", AmountBeforeDate: amount("0.10")},
		{RecordIndex: 0, RecordOrdinal: 1, Category: "TRMLOANS", AmountBeforeDate: amount("0.20")},
		{RecordIndex: 0, RecordOrdinal: 1, Category: "HSLNFNCE", AmountBeforeDate: amount("0.30")},
		{RecordIndex: 0, RecordOrdinal: 1, Category: "HSLNFNCE"},
	}
	got := Aggregate([]models.Record{models.NewRecord(1, []string{"1 x"})}, lines, models.FivePlus)

	sum := decimal.Zero
	for _, v := range got.ByCategory {
		sum = sum.Add(v)
	}
	assert.True(t, sum.Equal(got.Overall))
	assert.True(t, decimal.RequireFromString("0.6").Equal(got.Overall))
}

func TestAggregate_RecordWithoutAmounts(t *testing.T) {
	records := []models.Record{models.NewRecord(1, []string{"1 REMARK"})}
	got := Aggregate(records, []models.ExtractedLine{{RecordIndex: 0, RecordOrdinal: 1}}, models.FivePlus)

	assert.Nil(t, got.ByRecord[0])
	assert.Empty(t, got.ByCategory)
	assert.True(t, got.Overall.IsZero())
	assert.Len(t, got.Window.Counts, 5)
}

func TestCrossCheck(t *testing.T) {
	after := []decimal.Decimal{decimal.NewFromInt(4000), decimal.NewFromInt(10)}

	greater := CrossCheck(amount("5000"), after)
	require.NotNil(t, greater)
	assert.True(t, *greater)

	notGreater := CrossCheck(amount("4000"), after)
	require.NotNil(t, notGreater)
	assert.False(t, *notGreater)

	assert.Nil(t, CrossCheck(nil, after))
	assert.Nil(t, CrossCheck(amount("1"), nil))
}

func TestPeriods(t *testing.T) {
	stats := Periods([]int{2, 0, 1, 0, 0, 4, 5, 0}, 6, models.FourPlus)

	assert.Equal(t, []int{2}, stats.MonthValues)
	assert.Equal(t, []int{2, 0, 1, 0, 0, 4}, stats.WindowValues)
	assert.Equal(t, 1, stats.LastMonth.Count("2"))
	assert.Equal(t, 1, stats.LastMonth.Total)
	assert.Equal(t, 3, stats.LastWindow.Count("0"))
	assert.Equal(t, 1, stats.LastWindow.Count("4+"))
	assert.Equal(t, 6, stats.LastWindow.Total)
}

func TestPeriods_Empty(t *testing.T) {
	stats := Periods(nil, 6, models.FourPlus)
	assert.Equal(t, 0, stats.LastMonth.Total)
	assert.Equal(t, 0, stats.LastWindow.Total)
	assert.Empty(t, stats.MonthValues)
}

func TestSumPeriods(t *testing.T) {
	total := SumPeriods([]models.PeriodStats{
		Periods([]int{1, 0}, 6, models.FourPlus),
		Periods([]int{1, 5}, 6, models.FourPlus),
	}, models.FourPlus)

	assert.Equal(t, 2, total.LastMonth.Count("1"))
	assert.Equal(t, 2, total.LastMonth.Total)
	assert.Equal(t, 1, total.LastWindow.Count("4+"))
	assert.Equal(t, 4, total.LastWindow.Total)
}

func TestBucketize(t *testing.T) {
	h := Bucketize([]int{0, 3, 4, 5}, models.FivePlus)
	assert.Equal(t, 3, h.Total)
	assert.Equal(t, 1, h.Unclassified)
}
