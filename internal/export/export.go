// Package export writes reports as JSON, CSV or XLSX.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/ccris-extract/internal/knockout"
	"fjacquet/ccris-extract/internal/models"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Formats lists the supported output formats.
var Formats = []string{FormatJSON, FormatCSV, FormatXLSX}

// Writer serialises one report.
type Writer interface {
	Write(w io.Writer, r *models.Report) error
	// Extension is the file extension, without the dot.
	Extension() string
}

// Options tunes the writers.
type Options struct {
	Pretty    bool
	Delimiter rune
}

// NewWriter returns the writer for format.
func NewWriter(format string, opts Options) (Writer, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return &JSONWriter{Pretty: opts.Pretty}, nil
	case FormatCSV:
		return &CSVWriter{Delimiter: opts.Delimiter}, nil
	case FormatXLSX:
		return &XLSXWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteFile writes r to path, creating parent directories.
func WriteFile(path string, w Writer, r *models.Report) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	file, err := os.Create(path) // #nosec G304 -- output path chosen by the user
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing output file: %w", cerr)
		}
	}()
	return w.Write(file, r)
}

// OutputPath derives the output file for input inside dir.
func OutputPath(dir, input string, w Writer) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, base+"."+w.Extension())
}

// Row is one flattened report value.
type Row struct {
	Group string `csv:"group"`
	Key   string `csv:"key"`
	Value string `csv:"value"`
}

// Rows flattens r into group/key/value rows: summary fields, knock-out
// labels, then the banking and non-bank ledgers.
func Rows(r *models.Report) []Row {
	var rows []Row
	add := func(group, key string, value any) {
		rows = append(rows, Row{Group: group, Key: key, Value: Text(value)})
	}

	for _, f := range r.Summary.Fields {
		add("summary", f.Key, f.Value)
	}
	for _, item := range knockout.Build(r) {
		add("knockout", item.Label, item.Value)
	}

	add("banking", "total_limit", r.Banking.Totals.TotalLimit)
	add("banking", "total_outstanding_balance", r.Banking.Totals.TotalOutstanding)
	if r.Banking.Error != "" {
		add("banking", "error", r.Banking.Error)
	}
	for i, sec := range r.Banking.Sections {
		prefix := fmt.Sprintf("section_%d.", i+1)
		for _, code := range sortedKeys(sec.CategoryTotals) {
			add("banking", prefix+"category."+code, sec.CategoryTotals[code])
		}
		add("banking", prefix+"overall", sec.Overall)
		for j, rec := range sec.Records {
			rp := fmt.Sprintf("%srecord_%d.", prefix, j+1)
			add("banking", rp+"no", rec.Ordinal)
			add("banking", rp+"total", rec.Total)
			add("banking", rp+"legal_marker", rec.LegalMarker)
			add("banking", rp+"status_date", rec.StatusDate)
		}
		add("banking", prefix+"legal_markers", sec.LegalMarkers)
	}

	if r.NonBank.Error != "" {
		add("non_bank", "error", r.NonBank.Error)
	}
	if t := r.NonBank.Totals; t != nil {
		add("non_bank", "total_limit", t.TotalLimit)
		add("non_bank", "total_outstanding", t.TotalOutstanding)
	}
	for j, rec := range r.NonBank.Records {
		rp := fmt.Sprintf("record_%d.", j+1)
		add("non_bank", rp+"no", rec.Ordinal)
		add("non_bank", rp+"approval_date", rec.ApprovalDate)
		for _, mv := range rec.MonthMap {
			add("non_bank", rp+"month."+mv.Month, mv.Value)
		}
		add("non_bank", rp+"legal_marker", rec.LegalMarker)
		add("non_bank", rp+"status_date", rec.StatusDate)
	}
	return rows
}

// Text renders a report value as cell text. Absent values are empty.
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case *int:
		if x == nil {
			return ""
		}
		return strconv.Itoa(*x)
	case decimal.Decimal:
		return x.StringFixed(2)
	case *decimal.Decimal:
		return models.FormatAmount(x)
	case []string:
		return strings.Join(x, "; ")
	default:
		return fmt.Sprint(x)
	}
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
