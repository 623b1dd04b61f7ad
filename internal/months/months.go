// Package months aligns the single-letter month header of a non-bank
// ledger with calendar months.
package months

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/ccris-extract/internal/models"
)

// Reconcile scores the initials against the 24 cyclic month sequences
// (12 start months, forward and backward) and returns the best one. The
// first candidate with the highest score wins: starts are tried January
// to December, forward before backward.
//
// The mapping is confident when score >= max(n-1, floor(0.9n)), which
// tolerates one misread letter. Empty input yields an empty, unconfident
// mapping.
func Reconcile(initials []string) models.MonthMapping {
	n := len(initials)
	mapping := models.MonthMapping{
		Initials: append([]string{}, initials...),
		Months:   []string{},
	}
	if n == 0 {
		return mapping
	}

	best := -1
	for start := 0; start < 12; start++ {
		for _, dir := range []models.Direction{models.Forward, models.Backward} {
			seq := sequence(start, dir, n)
			score := 0
			for i, name := range seq {
				if strings.EqualFold(name[:1], strings.TrimSpace(initials[i])) {
					score++
				}
			}
			if score > best {
				best = score
				mapping.Months = seq
				mapping.StartMonth = seq[0]
				mapping.Direction = dir
				mapping.Score = score
			}
		}
	}

	mapping.Confident = mapping.Score >= threshold(n)
	return mapping
}

func threshold(n int) int {
	t := n - 1
	if f := n * 9 / 10; f > t {
		t = f
	}
	return t
}

// sequence returns n month names starting at start (0 = January) and
// stepping in dir, wrapping around the year.
func sequence(start int, dir models.Direction, n int) []string {
	step := 1
	if dir == models.Backward {
		step = -1
	}
	names := make([]string, n)
	idx := start
	for i := range names {
		names[i] = time.Month((idx%12+12)%12 + 1).String()
		idx += step
	}
	return names
}

// PositionalLabels returns M01, M02, ... for callers that cannot trust a
// mapping.
func PositionalLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("M%02d", i+1)
	}
	return labels
}

// Labels returns the month names of m when it is confident, and positional
// labels for n values otherwise.
func Labels(m models.MonthMapping, n int) []string {
	if m.Confident {
		return m.Months
	}
	return PositionalLabels(n)
}
