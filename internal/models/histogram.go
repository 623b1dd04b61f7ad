package models

import "strconv"

// BucketScheme selects how conduct values are bucketed.
type BucketScheme string

const (
	// FourPlus buckets 0, 1, 2, 3 and everything from 4 upwards.
	FourPlus BucketScheme = "0_1_2_3_4+"
	// FivePlus buckets 0, 1, 2, 3 and everything from 5 upwards. A 4 falls
	// in no bucket and is counted as unclassified.
	FivePlus BucketScheme = "0_1_2_3_5_plus"
)

// Labels returns the bucket labels in display order.
func (s BucketScheme) Labels() []string {
	if s == FivePlus {
		return []string{"0", "1", "2", "3", "5_plus"}
	}
	return []string{"0", "1", "2", "3", "4+"}
}

// PlusLabel returns the label of the open-ended bucket.
func (s BucketScheme) PlusLabel() string {
	labels := s.Labels()
	return labels[len(labels)-1]
}

// Bucket returns the bucket label for v, or false when v is not classified
// by this scheme.
func (s BucketScheme) Bucket(v int) (string, bool) {
	switch {
	case v < 0:
		return "", false
	case v <= 3:
		return strconv.Itoa(v), true
	case s == FivePlus && v == 4:
		return "", false
	default:
		return s.PlusLabel(), true
	}
}

// Histogram counts classified values per bucket. Total always equals the
// sum of Counts.
type Histogram struct {
	Scheme       BucketScheme   `json:"scheme"`
	Counts       map[string]int `json:"freq"`
	Total        int            `json:"freq_total"`
	Unclassified int            `json:"unclassified,omitempty"`
}

// NewHistogram returns an empty histogram with every bucket present.
func NewHistogram(scheme BucketScheme) Histogram {
	counts := make(map[string]int, 5)
	for _, label := range scheme.Labels() {
		counts[label] = 0
	}
	return Histogram{Scheme: scheme, Counts: counts}
}

// Add classifies one value.
func (h *Histogram) Add(v int) {
	if h.Counts == nil {
		*h = NewHistogram(h.Scheme)
	}
	label, ok := h.Scheme.Bucket(v)
	if !ok {
		h.Unclassified++
		return
	}
	h.Counts[label]++
	h.Total++
}

// Merge folds other into h. Both must share a scheme.
func (h *Histogram) Merge(other Histogram) {
	if h.Scheme == "" {
		h.Scheme = other.Scheme
	}
	if h.Counts == nil {
		*h = NewHistogram(h.Scheme)
	}
	for label, n := range other.Counts {
		h.Counts[label] += n
	}
	h.Total += other.Total
	h.Unclassified += other.Unclassified
}

// Count returns the count for a bucket label.
func (h Histogram) Count(label string) int {
	return h.Counts[label]
}
