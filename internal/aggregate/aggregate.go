// Package aggregate folds extracted ledger values into totals and conduct
// histograms. All money arithmetic is exact decimal arithmetic.
package aggregate

import (
	"github.com/shopspring/decimal"

	"fjacquet/ccris-extract/internal/models"
)

// Totals is the fold of one ledger section.
type Totals struct {
	ByCategory map[string]decimal.Decimal
	// ByRecord is indexed like the records passed to Aggregate. An entry is
	// nil when the record has no classified amount.
	ByRecord []*decimal.Decimal
	// ByOrdinal merges records that share an ordinal.
	ByOrdinal map[int]decimal.Decimal
	Overall   decimal.Decimal
	Current   models.Histogram
	Window    models.Histogram
}

// Aggregate sums the amount of every classified line with an amount into
// its category and its record, and folds every line's conduct histograms.
func Aggregate(records []models.Record, lines []models.ExtractedLine, scheme models.BucketScheme) Totals {
	t := Totals{
		ByCategory: map[string]decimal.Decimal{},
		ByRecord:   make([]*decimal.Decimal, len(records)),
		ByOrdinal:  map[int]decimal.Decimal{},
		Overall:    decimal.Zero,
		Current:    models.NewHistogram(scheme),
		Window:     models.NewHistogram(scheme),
	}

	for _, line := range lines {
		if line.Term != nil {
			t.Current.Merge(line.Term.Current)
			t.Window.Merge(line.Term.Window)
		}
		if !line.Classified() || line.AmountBeforeDate == nil {
			continue
		}
		amount := *line.AmountBeforeDate

		t.ByCategory[line.Category] = t.ByCategory[line.Category].Add(amount)
		t.ByOrdinal[line.RecordOrdinal] = t.ByOrdinal[line.RecordOrdinal].Add(amount)
		t.Overall = t.Overall.Add(amount)

		if line.RecordIndex >= 0 && line.RecordIndex < len(t.ByRecord) {
			sum := amount
			if prev := t.ByRecord[line.RecordIndex]; prev != nil {
				sum = prev.Add(amount)
			}
			t.ByRecord[line.RecordIndex] = &sum
		}
	}
	return t
}

// CrossCheck reports whether a record total exceeds the first amount after
// the date on the record's first line. It returns nil when either side is
// missing.
func CrossCheck(total *decimal.Decimal, firstAfterDate []decimal.Decimal) *bool {
	if total == nil || len(firstAfterDate) == 0 {
		return nil
	}
	greater := total.GreaterThan(firstAfterDate[0])
	return &greater
}

// Bucketize counts values into a histogram of the given scheme.
func Bucketize(values []int, scheme models.BucketScheme) models.Histogram {
	h := models.NewHistogram(scheme)
	for _, v := range values {
		h.Add(v)
	}
	return h
}

// Periods splits a conduct run, most recent first, into the latest period
// and the latest window of periods.
func Periods(values []int, window int, scheme models.BucketScheme) models.PeriodStats {
	last := values
	if len(last) > 1 {
		last = last[:1]
	}
	recent := values
	if window > 0 && len(recent) > window {
		recent = recent[:window]
	}
	return models.PeriodStats{
		LastMonth:    Bucketize(last, scheme),
		LastWindow:   Bucketize(recent, scheme),
		MonthValues:  append([]int{}, last...),
		WindowValues: append([]int{}, recent...),
	}
}

// SumPeriods adds up the period histograms of several records.
func SumPeriods(stats []models.PeriodStats, scheme models.BucketScheme) models.PeriodStats {
	total := models.PeriodStats{
		LastMonth:  models.NewHistogram(scheme),
		LastWindow: models.NewHistogram(scheme),
	}
	for _, s := range stats {
		total.LastMonth.Merge(s.LastMonth)
		total.LastWindow.Merge(s.LastWindow)
	}
	return total
}
