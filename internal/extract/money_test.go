package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDate(t *testing.T) {
	date, ok := FindDate("1 OVRDRAFT 5,000.00 01/01/2024 MTH 1 0 0 LOD 15/02/2024")
	require.True(t, ok)
	assert.Equal(t, "01/01/2024", date)

	_, ok = FindDate("OVRDRAFT 5,000.00 2024-01-01")
	assert.False(t, ok)
}

func TestSplitAtDate(t *testing.T) {
	before, date, after, ok := SplitAtDate("OVRDRAFT 1,234.56 31/01/2024 other text")
	require.True(t, ok)
	assert.Equal(t, "OVRDRAFT 1,234.56 ", before)
	assert.Equal(t, "31/01/2024", date)
	assert.Equal(t, " other text", after)
}

func TestIsDate(t *testing.T) {
	assert.True(t, IsDate("31/01/2025"))
	assert.False(t, IsDate("31/01/2025,"))
	assert.False(t, IsDate("1/1/2025"))
}

func TestMoneyBeforeDate(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{name: "grouped amount", line: "OVRDRAFT 1,234.56 31/01/2024 other text", expected: "1234.56"},
		{name: "closest to the date wins", line: "1 OVRDRAFT 10,000.00 5,000.00 01/01/2024 MTH 1 0 0", expected: "5000"},
		{name: "ungrouped amount", line: "2 CRDTCARD 2500.00 01/01/2024", expected: "2500"},
		{name: "integer amount", line: "3 TRMLOANS 750 01/01/2024", expected: "750"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoneyBeforeDate(tt.line)
			require.NotNil(t, got)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(*got), "got %s", got)
		})
	}
}

func TestMoneyBeforeDate_Misses(t *testing.T) {
	assert.Nil(t, MoneyBeforeDate("OVRDRAFT 1,234.56 no date here"))
	assert.Nil(t, MoneyBeforeDate("OVRDRAFT 01/01/2024 1,234.56"))
	assert.Nil(t, MoneyBeforeDate(""))
}

func TestMoneyAfterDate(t *testing.T) {
	values := MoneyAfterDate("1 OVRDRAFT 5,000.00 01/01/2024 4,800.00 200.00 MTH 1 0 LOD 15/02/2024")
	require.Len(t, values, 4)
	expected := []string{"4800", "200", "1", "0"}
	for i, want := range expected {
		assert.True(t, decimal.RequireFromString(want).Equal(values[i]), "index %d: got %s", i, values[i])
	}

	assert.Nil(t, MoneyAfterDate("no date 1,000.00"))
	assert.Empty(t, MoneyAfterDate("1,000.00 01/01/2024 REMARK"))
}

func TestMoneyTokens(t *testing.T) {
	assert.Equal(t, []string{"1,234,567.89", "12", "0.50"}, MoneyTokens("a 1,234,567.89 b 12 c 0.50"))
	assert.Empty(t, MoneyTokens("no amounts"))
}
