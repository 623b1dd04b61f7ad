package export

import (
	"encoding/json"
	"fmt"
	"io"

	"fjacquet/ccris-extract/internal/models"
)

// JSONWriter writes the nested result object.
type JSONWriter struct {
	Pretty bool
}

func (w *JSONWriter) Extension() string { return FormatJSON }

func (w *JSONWriter) Write(out io.Writer, r *models.Report) error {
	enc := json.NewEncoder(out)
	if w.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return nil
}
