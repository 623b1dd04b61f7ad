package models

import "github.com/shopspring/decimal"

// TermInfo is the parsed "repayment term + conduct history" tail of a
// banking ledger line.
type TermInfo struct {
	TermCode string `json:"term_code"`
	// History is the trailing run of numeric tokens, capped at the
	// configured window, most recent period first.
	History       []string `json:"numeric_sequence"`
	TrailingWords string   `json:"trailing_words,omitempty"`
	LegalMarker   string   `json:"legal_marker,omitempty"`
	StatusDate    string   `json:"status_date,omitempty"`
	// Current counts the first history token only; Window counts the whole
	// capped run. They answer different underwriting questions and are kept
	// apart on purpose.
	Current Histogram `json:"current_digit_counts"`
	Window  Histogram `json:"window_digit_counts"`
}

// ExtractedLine is the per-line extraction result of a banking record.
type ExtractedLine struct {
	RecordIndex      int              `json:"-"`
	RecordOrdinal    int              `json:"record_no"`
	Line             string           `json:"line"`
	Category         string           `json:"category,omitempty"`
	AmountBeforeDate *decimal.Decimal `json:"amount_before_date"`
	Term             *TermInfo        `json:"term_info,omitempty"`
}

// Classified reports whether the line matched a facility keyword.
func (l ExtractedLine) Classified() bool {
	return l.Category != ""
}

// Direction is the calendar direction of a month header.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// MonthMapping aligns the single-letter month header of a non-bank ledger
// to calendar month names. Months always has the same length as Initials
// when a mapping was produced.
type MonthMapping struct {
	Initials   []string  `json:"initials"`
	Months     []string  `json:"months"`
	StartMonth string    `json:"start_month,omitempty"`
	Direction  Direction `json:"direction,omitempty"`
	Score      int       `json:"score"`
	Confident  bool      `json:"confident"`
}
