package models

import "github.com/shopspring/decimal"

// Report is the structured result for one document. Exporters and the
// spreadsheet collaborator consume it; nothing in the pipeline reads it back.
type Report struct {
	SourceFile string        `json:"pdf_file,omitempty"`
	Summary    Summary       `json:"summary_report"`
	Banking    BankingReport `json:"detailed_credit_report"`
	NonBank    NonBankReport `json:"non_bank_lender_credit_information"`
}

// LedgerTotals holds the document-level limit and outstanding figures.
type LedgerTotals struct {
	TotalLimit       *decimal.Decimal `json:"total_limit"`
	TotalOutstanding *decimal.Decimal `json:"total_outstanding_balance"`
}

// PeriodStats splits conduct counts into the most recent period and the
// most recent window of periods.
type PeriodStats struct {
	LastMonth    Histogram `json:"last_1_month"`
	LastWindow   Histogram `json:"last_6_months"`
	MonthValues  []int     `json:"last_1_month_values,omitempty"`
	WindowValues []int     `json:"last_6_months_values,omitempty"`
}

// BankingReport is the detailed-ledger group of the result.
type BankingReport struct {
	StartMarker string           `json:"start_marker"`
	EndMarker   string           `json:"end_marker"`
	Sections    []BankingSection `json:"sections"`
	Totals      LedgerTotals     `json:"totals"`
	Error       string           `json:"error,omitempty"`
}

// TotalRecords counts records across every banking section.
func (b BankingReport) TotalRecords() int {
	n := 0
	for _, s := range b.Sections {
		n += len(s.Records)
	}
	return n
}

// BankingSection is the analysis of one occurrence of the banking ledger.
type BankingSection struct {
	Records        []BankingRecord            `json:"records"`
	CategoryTotals map[string]decimal.Decimal `json:"amount_totals_by_category"`
	RecordTotals   map[int]decimal.Decimal    `json:"amount_totals_by_record_no"`
	Overall        decimal.Decimal            `json:"amount_total_overall"`
	// Current and Window are the conduct-history digit counts of the first
	// history value and of the full window, summed over every record.
	Current      Histogram `json:"next_first_numbers_digit_counts_0_1_2_3_5_plus"`
	Window       Histogram `json:"next_six_numbers_digit_counts_0_1_2_3_5_plus"`
	LegalMarkers []string  `json:"bank_legal_markers"`
}

// BankingRecord is one banking facility record with its derived values.
type BankingRecord struct {
	Record
	Extracted         []ExtractedLine   `json:"lines"`
	Total             *decimal.Decimal  `json:"amount_total"`
	FirstAfterDate    []decimal.Decimal `json:"first_line_numbers_after_date"`
	TotalExceedsFirst *bool             `json:"total_greater_than_first_after_date"`
	LegalMarker       string            `json:"legal_marker,omitempty"`
	StatusDate        string            `json:"status_date,omitempty"`
}

// NonBankReport is the non-bank-lender (NLCI) group of the result.
type NonBankReport struct {
	StartMarker    string          `json:"start_marker"`
	EndMarker      string          `json:"end_marker"`
	HeaderInitials []string        `json:"month_header_initials"`
	MonthMapping   MonthMapping    `json:"month_mapping"`
	Records        []NonBankRecord `json:"records"`
	StatsTotals    PeriodStats     `json:"stats_totals"`
	Totals         *NonBankTotals  `json:"totals"`
	Error          string          `json:"error,omitempty"`
}

// NonBankTotals is the TOTAL/TOTAL line closing the NLCI block.
type NonBankTotals struct {
	TotalLimit       decimal.Decimal `json:"total_limit"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
}

// MonthValue is one entry of a record's month map.
type MonthValue struct {
	Month string `json:"month"`
	Value *int   `json:"value"`
}

// NonBankRecord is one NLCI ledger record.
type NonBankRecord struct {
	Ordinal       int          `json:"no"`
	ApprovalDate  string       `json:"approval_date,omitempty"`
	MonthMap      []MonthValue `json:"month_map"`
	Confident     bool         `json:"month_mapping_confident"`
	// Remarks are the words after the legal marker and its status date.
	Remarks       string       `json:"remarks,omitempty"`
	LegalMarker   string       `json:"legal_marker,omitempty"`
	StatusDate    string       `json:"status_date,omitempty"`
	Stats         PeriodStats  `json:"stats"`
	Raw           string       `json:"raw"`
}
