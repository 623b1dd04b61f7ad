package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"fjacquet/ccris-extract/internal/models"
)

// CSVWriter writes the flattened group/key/value rows.
type CSVWriter struct {
	Delimiter rune
}

func (w *CSVWriter) Extension() string { return FormatCSV }

func (w *CSVWriter) Write(out io.Writer, r *models.Report) error {
	csvWriter := csv.NewWriter(out)
	if w.Delimiter != 0 {
		csvWriter.Comma = w.Delimiter
	}
	rows := Rows(r)
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
