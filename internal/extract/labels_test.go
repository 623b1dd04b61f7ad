package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const summaryText = `Incorporation Date 04 Feb 2021
Status EXISTING
Private Exempt Company YES
Winding Up Record: 0
Credit Applications Approved for Last 12 months 4
Credit Applications Pending - 3
Legal Action taken (from Banking) 2
Credit Applications Pending 1`

func TestIntAfterLabel(t *testing.T) {
	got := IntAfterLabel("Winding Up Record", summaryText)
	require.NotNil(t, got)
	assert.Equal(t, 0, *got)

	got = IntAfterLabel("legal action taken (from banking)", summaryText)
	require.NotNil(t, got)
	assert.Equal(t, 2, *got)

	assert.Nil(t, IntAfterLabel("Special Attention Account", summaryText))
}

func TestIntAfterLabelAll(t *testing.T) {
	values := IntAfterLabelAll("Credit Applications Pending", summaryText)
	require.Len(t, values, 2)
	assert.Equal(t, 3, *values[0])
	assert.Equal(t, 1, *values[1])

	assert.Empty(t, IntAfterLabelAll("Special Attention Account", summaryText))
}

func TestDateAfterLabel(t *testing.T) {
	got := DateAfterLabel("Incorporation Date", summaryText)
	require.NotNil(t, got)
	assert.Equal(t, "04 Feb 2021", *got)

	assert.Nil(t, DateAfterLabel("Status", summaryText))
}

func TestWordAfterLabel(t *testing.T) {
	got := WordAfterLabel("Status", summaryText)
	require.NotNil(t, got)
	assert.Equal(t, "EXISTING", *got)

	got = WordAfterLabel("Private Exempt Company", summaryText)
	require.NotNil(t, got)
	assert.Equal(t, "YES", *got)

	assert.Nil(t, WordAfterLabel("Registration No", summaryText))
}

func TestExtractTotals(t *testing.T) {
	totals := ExtractTotals("HEADER\nLIMIT: 10,000.00 ... OUTSTANDING 7,500.00\nOUTSTANDING 1.00")
	require.NotNil(t, totals.TotalLimit)
	require.NotNil(t, totals.TotalOutstanding)
	assert.True(t, decimal.NewFromInt(10000).Equal(*totals.TotalLimit))
	assert.True(t, decimal.NewFromInt(7500).Equal(*totals.TotalOutstanding))
}

func TestExtractTotals_Misses(t *testing.T) {
	totals := ExtractTotals("limit: 5\nOUTSTANDING CREDIT J F M\nTotal Outstanding 3")
	assert.Nil(t, totals.TotalLimit)
	assert.Nil(t, totals.TotalOutstanding)
}

func TestLabelPatternIsCompiledOnce(t *testing.T) {
	first := labelPattern("Special Attention Account", intValue)
	second := labelPattern("Special Attention Account", intValue)
	assert.Same(t, first, second)
	assert.NotSame(t, first, labelPattern("Special Attention Account", wordValue))

	values := IntAfterLabelAll("Special Attention Account", "Special Attention Account 2\nSpecial Attention Account 5")
	require.Len(t, values, 2)
	assert.Equal(t, 5, *values[1])
}
