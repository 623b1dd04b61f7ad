package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		ok       bool
	}{
		{name: "grouped", raw: "1,234.56", expected: "1234.56", ok: true},
		{name: "millions", raw: "12,345,678.00", expected: "12345678", ok: true},
		{name: "plain", raw: "500", expected: "500", ok: true},
		{name: "padded", raw: "  7,500.00 ", expected: "7500", ok: true},
		{name: "empty", raw: "", ok: false},
		{name: "only separators", raw: ",,", ok: false},
		{name: "stray punctuation", raw: "1,2a4.00", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "got %s", got)
			}
		})
	}
}

func TestParseAmountPtr(t *testing.T) {
	got := ParseAmountPtr("2,500.00")
	require.NotNil(t, got)
	assert.Equal(t, "2500.00", got.StringFixed(2))
	assert.Nil(t, ParseAmountPtr("n/a"))
}

func TestParseCount(t *testing.T) {
	n, ok := ParseCount("1,024")
	assert.True(t, ok)
	assert.Equal(t, 1024, n)

	_, ok = ParseCount("1.5")
	assert.False(t, ok)

	assert.Nil(t, ParseCountPtr("x"))
	require.NotNil(t, ParseCountPtr("0"))
	assert.Equal(t, 0, *ParseCountPtr("0"))
}

func TestFormatAmount(t *testing.T) {
	d := decimal.RequireFromString("7500")
	assert.Equal(t, "7500.00", FormatAmount(&d))
	assert.Equal(t, "", FormatAmount(nil))
}

func TestDecimalSumsDoNotDrift(t *testing.T) {
	sum := decimal.Zero
	for i := 0; i < 1000; i++ {
		d, ok := ParseAmount("0.10")
		require.True(t, ok)
		sum = sum.Add(d)
	}
	assert.True(t, decimal.NewFromInt(100).Equal(sum))
	assert.Equal(t, 100.0, AmountFloat(sum))
}
