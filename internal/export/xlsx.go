package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"fjacquet/ccris-extract/internal/knockout"
	"fjacquet/ccris-extract/internal/models"
)

// Sheet names of the workbook.
const (
	SheetSummary  = "Summary"
	SheetKnockout = "Knock-Out"
	SheetBanking  = "Banking"
	SheetNonBank  = "NonBank"
)

// XLSXWriter writes a workbook with one sheet per report group. It is a
// plain field/value dump; filling the underwriting template is left to the
// spreadsheet collaborator.
type XLSXWriter struct{}

func (w *XLSXWriter) Extension() string { return FormatXLSX }

func (w *XLSXWriter) Write(out io.Writer, r *models.Report) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}
	for _, name := range []string{SheetKnockout, SheetBanking, SheetNonBank} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	summaryRows := [][]any{{"Field", "Value"}}
	for _, field := range r.Summary.Fields {
		summaryRows = append(summaryRows, []any{field.Key, cellValue(field.Value)})
	}

	knockoutRows := [][]any{{"Label", "Value"}}
	for _, item := range knockout.Build(r) {
		knockoutRows = append(knockoutRows, []any{item.Label, cellValue(item.Value)})
	}

	bankingRows := [][]any{{"Section", "No", "Category", "Amount", "Record Total", "Exceeds First", "Legal Marker", "Status Date"}}
	for i, sec := range r.Banking.Sections {
		for _, rec := range sec.Records {
			for _, line := range rec.Extracted {
				if !line.Classified() {
					continue
				}
				bankingRows = append(bankingRows, []any{
					i + 1, rec.Ordinal, line.Category, cellValue(line.AmountBeforeDate),
					cellValue(rec.Total), boolCell(rec.TotalExceedsFirst), rec.LegalMarker, rec.StatusDate,
				})
			}
		}
		bankingRows = append(bankingRows, []any{i + 1, nil, "OVERALL", cellValue(sec.Overall)})
	}
	if r.Banking.Error != "" {
		bankingRows = append(bankingRows, []any{"error", r.Banking.Error})
	}

	nonBankRows := [][]any{{"No", "Approval Date", "Month", "Value", "Legal Marker", "Status Date"}}
	for _, rec := range r.NonBank.Records {
		for _, mv := range rec.MonthMap {
			nonBankRows = append(nonBankRows, []any{
				rec.Ordinal, rec.ApprovalDate, mv.Month, cellValue(mv.Value), rec.LegalMarker, rec.StatusDate,
			})
		}
	}
	if t := r.NonBank.Totals; t != nil {
		nonBankRows = append(nonBankRows, []any{"TOTAL LIMIT", nil, nil, cellValue(t.TotalLimit)})
		nonBankRows = append(nonBankRows, []any{"TOTAL OUTSTANDING", nil, nil, cellValue(t.TotalOutstanding)})
	}
	if r.NonBank.Error != "" {
		nonBankRows = append(nonBankRows, []any{"error", r.NonBank.Error})
	}

	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetSummary, summaryRows},
		{SheetKnockout, knockoutRows},
		{SheetBanking, bankingRows},
		{SheetNonBank, nonBankRows},
	}
	for _, sheet := range sheets {
		if err := writeRows(f, sheet.name, sheet.rows); err != nil {
			return err
		}
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("invalid cell for row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	if err := f.SetColWidth(sheet, "A", "B", 40); err != nil {
		return fmt.Errorf("failed to size %s columns: %w", sheet, err)
	}
	return nil
}

// cellValue converts report values to types excelize stores natively.
// Amounts become floats here and nowhere else.
func cellValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case decimal.Decimal:
		return models.AmountFloat(x)
	case *decimal.Decimal:
		if x == nil {
			return nil
		}
		return models.AmountFloat(*x)
	case *int:
		if x == nil {
			return nil
		}
		return *x
	case []string:
		return Text(x)
	default:
		return x
	}
}

func boolCell(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}
